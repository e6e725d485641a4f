// wfcmigrate copies catalogs and attempt history from a SQLite catalog
// store into a PostgreSQL one.
//
// Usage:
//
//	go run ./cmd/wfcmigrate \
//	    -sqlite data/wfc.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user overwave \
//	    -pg-password overwave \
//	    -pg-database overwave
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/overwave-systems/overwave/internal/wfcstore"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/wfc.db", "Path to the source SQLite catalog store")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "overwave", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "overwave", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "overwave", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL catalog store migration")
	log.Println("=============================================")

	src, err := wfcstore.Open(wfcstore.DefaultConfig(*sqlitePath))
	if err != nil {
		log.Fatalf("opening source SQLite store: %v", err)
	}
	defer src.Close()

	dstCfg := wfcstore.Config{
		Driver: "postgres",
		Postgres: wfcstore.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			Database: *pgDatabase,
			SSLMode:  *pgSSLMode,
		},
	}
	dst, err := wfcstore.Open(dstCfg)
	if err != nil {
		log.Fatalf("opening destination PostgreSQL store: %v", err)
	}
	defer dst.Close()

	if *dryRun {
		log.Println("DRY RUN MODE - no changes will be made")
	}

	names, err := src.ListCatalogNames()
	if err != nil {
		log.Fatalf("listing source catalogs: %v", err)
	}

	var migratedCatalogs, migratedAttempts int
	for _, name := range names {
		catalog, meta, err := src.LoadCatalog(name)
		if err != nil {
			log.Fatalf("loading catalog %q: %v", name, err)
		}

		log.Printf("migrating catalog %q (%d patterns)", name, catalog.Len())
		if *dryRun {
			migratedCatalogs++
			continue
		}

		dstID, err := dst.SaveCatalog(name, meta.PatternSize, meta.UseCenterFilter, catalog)
		if err == wfcstore.ErrCatalogExists {
			log.Printf("  catalog %q already present on destination, skipping patterns", name)
			continue
		}
		if err != nil {
			log.Fatalf("saving catalog %q: %v", name, err)
		}

		n, err := migrateAttempts(src, dst, meta.ID, dstID, *dryRun)
		if err != nil {
			log.Fatalf("migrating attempts for %q: %v", name, err)
		}
		migratedAttempts += n
		migratedCatalogs++
	}

	log.Println("=============================================")
	log.Printf("Migration complete: %d catalog(s), %d attempt record(s)", migratedCatalogs, migratedAttempts)
	if *dryRun {
		log.Println("(DRY RUN - no actual changes were made)")
	}
}

// migrateAttempts copies every wfc_attempts row recorded against
// srcCatalogID into the destination store under dstCatalogID. It operates
// on the raw connections since wfcstore's typed API only exposes
// aggregated attempt stats, not individual rows.
func migrateAttempts(src, dst *wfcstore.Store, srcCatalogID, dstCatalogID int64, dryRun bool) (int, error) {
	rows, err := src.DB().Query(`SELECT seed, output_width, output_height, max_attempts, attempts_used, succeeded, contradiction_x, contradiction_y
		FROM wfc_attempts WHERE catalog_id = ?`, srcCatalogID)
	if err != nil {
		return 0, fmt.Errorf("querying source attempts: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var r wfcstore.AttemptRecord
		var succeededFlag int
		if err := rows.Scan(&r.Seed, &r.OutputWidth, &r.OutputHeight, &r.MaxAttempts, &r.AttemptsUsed,
			&succeededFlag, &r.ContradictionX, &r.ContradictionY); err != nil {
			return count, err
		}
		r.Succeeded = succeededFlag != 0
		r.CatalogID = dstCatalogID

		if dryRun {
			count++
			continue
		}
		if err := dst.RecordAttempt(r); err != nil {
			return count, fmt.Errorf("recording attempt on destination: %w", err)
		}
		count++
	}
	return count, rows.Err()
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Migrates catalogs and attempt history from a SQLite catalog store to PostgreSQL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}

package wfcstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store persists catalogs, their patterns, and attempt history across one
// of the two supported dialects.
type Store struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens a Store per cfg.Driver ("sqlite" or "postgres", defaulting
// to sqlite) and ensures its schema exists.
func Open(cfg Config) (*Store, error) {
	dialectType := DialectSQLite
	if cfg.Driver == "postgres" {
		dialectType = DialectPostgres
	}
	dialect := NewDialect(dialectType)

	var db *sql.DB
	var err error
	switch dialectType {
	case DialectPostgres:
		db, err = openPostgres(cfg.Postgres)
	default:
		db, err = openSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("wfcstore: init statement failed: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("wfcstore: migration failed: %w", err)
	}
	return s, nil
}

func openSQLite(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("wfcstore: create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("wfcstore: open sqlite: %w", err)
	}
	return db, nil
}

func openPostgres(cfg PostgresConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("wfcstore: open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// DB returns the underlying *sql.DB for advanced use (e.g. a migration tool).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) migrate() error {
	var idColumn, nameType string
	if s.dialect.DriverName() == "postgres" {
		idColumn = "id SERIAL PRIMARY KEY"
		nameType = "CITEXT"
	} else {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
		nameType = "TEXT"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS wfc_catalogs (
			%s,
			name %s UNIQUE NOT NULL %s,
			pattern_size INTEGER NOT NULL,
			use_center_filter INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, idColumn, nameType, s.dialect.CaseInsensitiveCollation()),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS wfc_patterns (
			%s,
			catalog_id INTEGER NOT NULL REFERENCES wfc_catalogs(id) ON DELETE CASCADE,
			pattern_index INTEGER NOT NULL,
			size INTEGER NOT NULL,
			cells TEXT NOT NULL,
			weight INTEGER NOT NULL,
			UNIQUE(catalog_id, pattern_index)
		)`, idColumn),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS wfc_attempts (
			%s,
			catalog_id INTEGER NOT NULL REFERENCES wfc_catalogs(id) ON DELETE CASCADE,
			seed INTEGER NOT NULL,
			output_width INTEGER NOT NULL,
			output_height INTEGER NOT NULL,
			max_attempts INTEGER NOT NULL,
			attempts_used INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			contradiction_x INTEGER NOT NULL DEFAULT -1,
			contradiction_y INTEGER NOT NULL DEFAULT -1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, idColumn),

		`CREATE INDEX IF NOT EXISTS idx_wfc_patterns_catalog_id ON wfc_patterns(catalog_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wfc_attempts_catalog_id ON wfc_attempts(catalog_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

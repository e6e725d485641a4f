// wfcgen runs a single overlapping Wave Function Collapse solve from a
// text exemplar and prints the rendered output.
//
// Usage:
//
//	go run ./cmd/wfcgen \
//	    -exemplar data/dungeon.txt \
//	    -pattern-size 3 \
//	    -width 40 -height 24 \
//	    -seed-phrase "dungeon-floor-1"
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/overwave-systems/overwave/internal/config"
	"github.com/overwave-systems/overwave/internal/logger"
	"github.com/overwave-systems/overwave/internal/wfc"
	"github.com/overwave-systems/overwave/internal/wfcstore"
	"github.com/overwave-systems/overwave/internal/wfcstream"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (flags override its values)")
	exemplarPath := flag.String("exemplar", "", "Path to a text exemplar file (one row per line)")
	patternSize := flag.Int("pattern-size", 0, "Overlapping pattern window size (N >= 2)")
	width := flag.Int("width", 0, "Output width in cells")
	height := flag.Int("height", 0, "Output height in cells")
	seed := flag.Int64("seed", 0, "RNG seed")
	seedPhrase := flag.String("seed-phrase", "", "Derive the seed from a human-readable phrase instead of -seed")
	maxAttempts := flag.Int("max-attempts", 0, "Maximum restart-on-contradiction attempts")
	noCenterFilter := flag.Bool("no-center-filter", false, "Disable the center-tile adjacency filter")
	augment := flag.Bool("augment", false, "Expand the exemplar into its eight rotation/reflection variants before extraction")
	outputPath := flag.String("output", "", "Output file for the rendered grid (empty for stdout)")

	catalogStorePath := flag.String("catalog-store", "", "SQLite path to persist the built catalog and attempt record")
	catalogName := flag.String("catalog-name", "", "Name to save the catalog under (required with -catalog-store)")

	streamAddr := flag.String("stream-addr", "", "If set, serve a /stream WebSocket endpoint and broadcast solve progress while it runs")

	flag.Parse()

	if err := logger.Initialize(loggerConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Errorf("loading config %s: %v", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlagOverrides(cfg, *patternSize, *width, *height, *seed, *seedPhrase, *maxAttempts, *noCenterFilter)

	if *exemplarPath == "" {
		fmt.Fprintln(os.Stderr, "-exemplar is required")
		flag.Usage()
		os.Exit(1)
	}

	exemplar, err := loadExemplar(*exemplarPath)
	if err != nil {
		logger.Errorf("loading exemplar: %v", err)
		os.Exit(1)
	}

	exemplars := []wfc.Grid{exemplar}
	if *augment || cfg.Generation.Augment {
		exemplars = wfc.Augment(exemplar)
		logger.Infof("augmented exemplar into %d variants", len(exemplars))
	}

	wfcCfg := cfg.Generation.ToWFCConfig()

	patterns, err := wfc.ExtractPatterns(exemplars, wfcCfg.PatternSize)
	if err != nil {
		logger.Errorf("extracting patterns: %v", err)
		os.Exit(1)
	}
	catalog, err := wfc.BuildCatalog(patterns)
	if err != nil {
		logger.Errorf("building catalog: %v", err)
		os.Exit(1)
	}
	tileAdj := wfc.BuildTileAdjacency(exemplars)
	rules := wfc.CompileAdjacency(catalog, tileAdj, wfcCfg.UseCenterTileFilter)

	logger.Infof("catalog built: %d distinct patterns from %d exemplar variant(s)", catalog.Len(), len(exemplars))

	solver, err := wfc.NewSolver(wfcCfg, catalog, rules)
	if err != nil {
		logger.Errorf("preparing solver: %v", err)
		os.Exit(1)
	}

	addr := *streamAddr
	if addr == "" {
		addr = cfg.Stream.ListenAddr
	}
	grid, solveErr := runSolve(solver, catalog, cfg.Stream.WebSocket, addr)

	if *catalogStorePath != "" {
		persistResult(*catalogStorePath, *catalogName, wfcCfg, catalog, solver, solveErr)
	}

	if solveErr != nil {
		logger.Errorf("solve failed: %v", solveErr)
		os.Exit(1)
	}

	writeGrid(grid, *outputPath)
}

func loggerConfig() logger.Config {
	return logger.Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
	}
}

func applyFlagOverrides(cfg *config.Config, patternSize, width, height int, seed int64, seedPhrase string, maxAttempts int, noCenterFilter bool) {
	if patternSize > 0 {
		cfg.Generation.PatternSize = patternSize
	}
	if width > 0 {
		cfg.Generation.OutputWidth = width
	}
	if height > 0 {
		cfg.Generation.OutputHeight = height
	}
	if seed != 0 {
		cfg.Generation.Seed = seed
	}
	if seedPhrase != "" {
		cfg.Generation.SeedPhrase = seedPhrase
	}
	if maxAttempts > 0 {
		cfg.Generation.MaxAttempts = maxAttempts
	}
	if noCenterFilter {
		cfg.Generation.UseCenterTileFilter = false
	}
}

func loadExemplar(path string) (wfc.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return wfc.Grid{}, fmt.Errorf("wfcgen: read exemplar: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	rows := make([][]wfc.Tile, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		row := make([]wfc.Tile, len(line))
		for i, r := range line {
			row[i] = wfc.Tile(r)
		}
		rows = append(rows, row)
	}
	return wfc.NewGrid(rows), nil
}

// runSolve drives the solver either directly, or through a streaming
// Driver that serves a /stream WebSocket endpoint for the duration of the
// solve when streamAddr is set.
func runSolve(solver *wfc.Solver, catalog *wfc.Catalog, wsCfg config.WebSocketConfig, streamAddr string) (wfc.Grid, error) {
	if streamAddr == "" {
		return solver.Solve()
	}

	hub := wfcstream.NewHub(wsCfg)
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle("/stream", hub)
	server := &http.Server{Addr: streamAddr, Handler: mux}
	go func() {
		logger.Infof("streaming observers on ws://%s/stream", streamAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("stream server: %v", err)
		}
	}()
	defer server.Close()

	driver := wfcstream.NewDriver(solver, catalog, hub)
	return driver.Run()
}

func persistResult(storePath, name string, wfcCfg wfc.Config, catalog *wfc.Catalog, solver *wfc.Solver, solveErr error) {
	if name == "" {
		logger.Errorf("-catalog-store requires -catalog-name")
		return
	}
	store, err := wfcstore.Open(wfcstore.DefaultConfig(storePath))
	if err != nil {
		logger.Errorf("opening catalog store: %v", err)
		return
	}
	defer store.Close()

	catalogID, err := store.SaveCatalog(name, wfcCfg.PatternSize, wfcCfg.UseCenterTileFilter, catalog)
	if err != nil && err != wfcstore.ErrCatalogExists {
		logger.Errorf("saving catalog: %v", err)
		return
	}
	if err == wfcstore.ErrCatalogExists {
		existing, meta, lerr := store.LoadCatalog(name)
		if lerr != nil {
			logger.Errorf("loading existing catalog %q: %v", name, lerr)
			return
		}
		_ = existing
		catalogID = meta.ID
	}

	contradictionX, contradictionY := -1, -1
	if ce, ok := solveErr.(*wfc.ContradictionError); ok {
		contradictionX, contradictionY = ce.X, ce.Y
	}

	record := wfcstore.AttemptRecord{
		CatalogID:      catalogID,
		Seed:           wfcCfg.Seed,
		OutputWidth:    wfcCfg.OutputWidth,
		OutputHeight:   wfcCfg.OutputHeight,
		MaxAttempts:    wfcCfg.MaxAttempts,
		AttemptsUsed:   solver.Attempts(),
		Succeeded:      solveErr == nil,
		ContradictionX: contradictionX,
		ContradictionY: contradictionY,
	}
	if err := store.RecordAttempt(record); err != nil {
		logger.Errorf("recording attempt: %v", err)
	}
}

func writeGrid(grid wfc.Grid, outputPath string) {
	var b strings.Builder
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			b.WriteRune(rune(grid.At(x, y)))
		}
		b.WriteByte('\n')
	}

	if outputPath == "" {
		fmt.Print(b.String())
		return
	}
	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		logger.Errorf("writing output file: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Output written to %s\n", outputPath)
}

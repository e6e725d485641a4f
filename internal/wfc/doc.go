// Package wfc implements overlapping Wave Function Collapse: it learns a
// catalog of N×N tile patterns from one or more exemplar grids, derives
// directional adjacency rules between patterns, and solves a fresh W×H
// output grid by repeatedly collapsing the lowest-entropy cell and
// propagating the consequences until the grid is fully resolved or a
// contradiction forces a retry.
//
// Pipeline:
//
//	ExtractPatterns  — slide an N×N window across each exemplar (pattern.go)
//	BuildCatalog      — dedupe patterns, assign indices, tally weights (catalog.go)
//	BuildTileAdjacency — observed tile-pair adjacency per direction (tileadjacency.go)
//	CompileAdjacency  — per-pattern-index legal-neighbor bitsets (rules.go)
//	NewWave + Propagate — worklist arc-consistency propagator (wave.go)
//	NewSolver + Solve  — entropy-driven collapse loop with retry (solver.go)
//	Render            — project a collapsed wave back to a tile grid (render.go)
//
// The propagator is iterative, not recursive: propagation drains an
// explicit worklist rather than recursing through collapse/update steps,
// so no recursion depth concern exists at any grid size.
//
// Everything in this package is synchronous and single-threaded by
// design: a Solver owns its Wave exclusively for the duration of one
// attempt, and the Catalog and AdjacencyRules it reads are immutable and
// safe to share by reference across many concurrent solves.
package wfc

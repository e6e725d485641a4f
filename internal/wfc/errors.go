package wfc

import (
	"errors"
	"fmt"
)

// Sentinel errors for wfc operations.
var (
	// ErrEmptyCatalog indicates no patterns could be extracted from any
	// exemplar (every exemplar is smaller than the pattern size in at
	// least one dimension).
	ErrEmptyCatalog = errors.New("wfc: no patterns extracted from exemplars")

	// ErrDegenerateExemplar indicates an exemplar grid has zero rows or
	// zero columns.
	ErrDegenerateExemplar = errors.New("wfc: exemplar grid is zero-sized")

	// ErrInvalidPatternSize indicates patternSize < 2.
	ErrInvalidPatternSize = errors.New("wfc: pattern size must be >= 2")

	// ErrInvalidOutputSize indicates outputWidth or outputHeight <= 0.
	ErrInvalidOutputSize = errors.New("wfc: output dimensions must be positive")

	// ErrContradiction indicates propagation emptied a cell's possibility
	// set. Recovered internally by the solver; never returned to a caller
	// of Solve.
	ErrContradiction = errors.New("wfc: contradiction - cell has no remaining possibilities")

	// ErrSolveFailed indicates the retry cap was exhausted without
	// reaching a completed wave.
	ErrSolveFailed = errors.New("wfc: solve failed - retry cap exhausted")

	// ErrNotCollapsed indicates Render was called on a wave that still
	// has uncollapsed cells.
	ErrNotCollapsed = errors.New("wfc: wave is not fully collapsed")
)

// ContradictionError carries the site of the final attempt's contradiction
// alongside ErrSolveFailed, so callers can log or visualize where the
// solver got stuck.
type ContradictionError struct {
	// Attempts is the number of attempts made before giving up.
	Attempts int
	// X, Y is the cell that contradicted on the final attempt.
	X, Y int
	// Err is always ErrSolveFailed; wrapped so errors.Is(err, ErrSolveFailed) works.
	Err error
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: solve failed after %d attempts (last contradiction at %d,%d)",
		e.Attempts, e.X, e.Y)
}

func (e *ContradictionError) Unwrap() error { return e.Err }

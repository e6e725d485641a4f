package wfc

import (
	"math"
	"math/rand"
)

// entropyJitter bounds the uniform random nudge added to each candidate
// cell's entropy before comparison, breaking ties between cells whose
// possibility distributions have identical entropy. It is several orders
// of magnitude below any entropy difference two non-identical possibility
// distributions can produce.
const entropyJitter = 1e-6

// StepResult reports the outcome of a single Solver.Step call, for the
// streaming interface external visualizers drive.
type StepResult int

const (
	// Progress indicates a cell was collapsed and propagated without
	// incident; the wave is not yet fully collapsed.
	Progress StepResult = iota
	// Done indicates every cell is now collapsed; the solve succeeded.
	Done
	// Failed indicates the retry cap was exhausted; see Solver.LastError
	// for the final ContradictionError.
	Failed
)

// Solver drives one end-to-end WFC solve: repeated entropy-based cell
// selection, weighted random collapse, and propagation, restarting from a
// fresh wave on contradiction. A Solver is not safe for concurrent use;
// each solve owns its Wave exclusively.
type Solver struct {
	cfg   Config
	cat   *Catalog
	rules *AdjacencyRules
	rng   *rand.Rand

	wave     *Wave
	attempts int
	lastErr  *ContradictionError
}

// NewSolver validates cfg and prepares a Solver over the given catalog and
// compiled adjacency rules. The returned Solver has not yet allocated a
// wave; the first call to Step or Solve does that.
func NewSolver(cfg Config, cat *Catalog, rules *AdjacencyRules) (*Solver, error) {
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Solver{
		cfg:   cfg,
		cat:   cat,
		rules: rules,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Solve runs the full retry loop and returns the rendered output grid on
// success. On exhausting Config.MaxAttempts it returns a
// *ContradictionError wrapping ErrSolveFailed.
func (s *Solver) Solve() (Grid, error) {
	for {
		result, err := s.Step()
		if err != nil {
			return Grid{}, err
		}
		switch result {
		case Done:
			return Render(s.wave, s.cat)
		case Failed:
			return Grid{}, s.lastErr
		}
	}
}

// Step advances the solve by one collapse+propagate cycle, restarting
// with a fresh wave internally whenever a contradiction occurs and
// attempts remain. It is the primitive the streaming interface exposes:
// callers that want to observe intermediate waves call Step repeatedly
// and read s.Wave() after each Progress.
func (s *Solver) Step() (StepResult, error) {
	if s.wave == nil {
		s.beginAttempt()
	}

	x, y, ok := s.selectCell()
	if !ok {
		return Done, nil
	}

	pattern := s.weightedChoice(s.wave.At(x, y))
	s.wave.Collapse(x, y, pattern)

	cx, cy, perr := s.wave.Propagate(x, y)
	if perr == nil {
		return Progress, nil
	}

	// Contradiction: record it and either retry with a fresh wave or
	// surface solve-failed.
	s.lastErr = &ContradictionError{Attempts: s.attempts, X: cx, Y: cy, Err: ErrSolveFailed}
	if s.attempts >= s.cfg.MaxAttempts {
		return Failed, nil
	}
	s.beginAttempt()
	return Progress, nil
}

// Wave exposes the solver's in-progress wave for streaming observers.
// Observers must treat it as read-only.
func (s *Solver) Wave() *Wave { return s.wave }

// Attempts returns the number of attempts started so far, including the
// current one.
func (s *Solver) Attempts() int { return s.attempts }

// LastError returns the most recent contradiction recorded by Step, or nil
// if none has occurred yet. Streaming observers read this after a Failed
// step to report where the final attempt broke down.
func (s *Solver) LastError() *ContradictionError { return s.lastErr }

func (s *Solver) beginAttempt() {
	s.attempts++
	s.wave = NewWave(s.cfg.OutputWidth, s.cfg.OutputHeight, s.rules)
}

// selectCell finds the uncollapsed cell with minimum jittered entropy.
// Cells are visited in a fixed row-major order so RNG draws happen in the
// same sequence on every run with the same seed, which is what makes
// Solve seed-deterministic even though the jitter itself is random.
func (s *Solver) selectCell() (x, y int, ok bool) {
	bestEntropy := math.Inf(1)
	bestX, bestY := -1, -1

	for cy := 0; cy < s.wave.Height; cy++ {
		for cx := 0; cx < s.wave.Width; cx++ {
			cell := s.wave.At(cx, cy)
			if cell.Count() <= 1 {
				continue
			}
			e := s.cellEntropy(cell) + s.rng.Float64()*entropyJitter
			if e < bestEntropy {
				bestEntropy = e
				bestX, bestY = cx, cy
			}
		}
	}
	if bestX < 0 {
		return 0, 0, false
	}
	return bestX, bestY, true
}

// cellEntropy computes Shannon entropy of the weight-normalized
// possibility distribution at a cell.
func (s *Solver) cellEntropy(cell Bitset) float64 {
	total := 0
	cell.ForEach(func(i int) { total += s.cat.Weights[i] })
	if total == 0 {
		return 0
	}

	h := 0.0
	cell.ForEach(func(i int) {
		p := float64(s.cat.Weights[i]) / float64(total)
		h -= p * math.Log2(p)
	})
	return h
}

// weightedChoice samples a pattern index from cell with probability
// proportional to its catalog weight.
func (s *Solver) weightedChoice(cell Bitset) int {
	total := 0
	cell.ForEach(func(i int) { total += s.cat.Weights[i] })

	target := s.rng.Float64() * float64(total)
	chosen := -1
	acc := 0.0
	cell.ForEach(func(i int) {
		if chosen != -1 {
			return
		}
		acc += float64(s.cat.Weights[i])
		if acc >= target {
			chosen = i
		}
	})
	if chosen == -1 {
		// Floating-point rounding can leave target a hair above the final
		// cumulative sum; fall back to the last candidate.
		cell.ForEach(func(i int) { chosen = i })
	}
	return chosen
}

// SolveWithRetryInfo is a convenience wrapper exposing the attempt count
// alongside the rendered grid, useful for logging at the call site
// without threading a *Solver through.
func SolveWithRetryInfo(cfg Config, cat *Catalog, rules *AdjacencyRules) (Grid, int, error) {
	s, err := NewSolver(cfg, cat, rules)
	if err != nil {
		return Grid{}, 0, err
	}
	grid, err := s.Solve()
	if err != nil {
		return Grid{}, s.Attempts(), err
	}
	return grid, s.Attempts(), nil
}

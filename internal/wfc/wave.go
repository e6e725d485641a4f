package wfc

// Wave is the W×H grid of per-cell possibility sets maintained during one
// solve attempt. A fresh Wave starts with every cell holding the full set
// [0, P); Collapse and Propagate only ever shrink cells, never grow them.
// A Wave is owned exclusively by the Solver attempt that created it and is
// discarded when that attempt completes or contradicts.
type Wave struct {
	Width, Height int
	cells         []Bitset // row-major, len == Width*Height
	rules         *AdjacencyRules
}

// NewWave allocates a W×H wave, every cell initialized to the full
// possibility set [0, P).
func NewWave(width, height int, rules *AdjacencyRules) *Wave {
	w := &Wave{Width: width, Height: height, rules: rules, cells: make([]Bitset, width*height)}
	full := FullBitset(rules.CatalogSize())
	for i := range w.cells {
		w.cells[i] = full.Clone()
	}
	return w
}

func (w *Wave) index(x, y int) int { return y*w.Width + x }

func (w *Wave) inBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// At returns the (mutable, shared) possibility set at (x, y).
func (w *Wave) At(x, y int) Bitset { return w.cells[w.index(x, y)] }

// IsCollapsed reports whether (x, y) has exactly one possibility left.
func (w *Wave) IsCollapsed(x, y int) bool {
	return w.At(x, y).Count() == 1
}

// IsFullyCollapsed reports whether every cell in the wave is collapsed.
func (w *Wave) IsFullyCollapsed() bool {
	for _, c := range w.cells {
		if c.Count() != 1 {
			return false
		}
	}
	return true
}

// Collapse reduces the cell at (x, y) to exactly the single pattern index
// chosen. Callers (the solver) are responsible for choosing a member of
// the cell's current possibility set.
func (w *Wave) Collapse(x, y, pattern int) {
	cell := w.At(x, y)
	for i := 0; i < cell.Len(); i++ {
		if i != pattern {
			cell.Clear(i)
		}
	}
}

// worklistEntry is a cell coordinate pending re-examination.
type worklistEntry struct{ x, y int }

// Propagate restores arc consistency starting from seed cell (sx, sy),
// whose possibility set has just shrunk (typically via Collapse). It
// returns a nil error on success, or ErrContradiction (with the
// contradicted cell recorded in the returned coordinates) if any cell's
// possibility set becomes empty during propagation.
//
// Algorithm: a worklist of changed cells, each popped and used to shrink
// its in-bounds neighbors; a neighbor whose set actually shrinks is pushed
// back onto the worklist. Possibility sets only shrink and each shrink
// strictly reduces the total possibility count, so the loop terminates in
// at most P·W·H pops.
func (w *Wave) Propagate(sx, sy int) (contradictX, contradictY int, err error) {
	worklist := []worklistEntry{{sx, sy}}

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		current := w.At(cur.x, cur.y)
		for _, d := range AllDirections() {
			dx, dy := d.Offset()
			nx, ny := cur.x+dx, cur.y+dy
			if !w.inBounds(nx, ny) {
				continue // edge policy: out-of-bounds neighbors are skipped
			}

			union := NewBitset(w.rules.CatalogSize())
			current.ForEach(func(i int) {
				union.UnionInPlace(w.rules.Allowed(i, d))
			})

			neighbor := w.At(nx, ny)
			if neighbor.IntersectInPlace(union) {
				if neighbor.IsEmpty() {
					return nx, ny, ErrContradiction
				}
				worklist = append(worklist, worklistEntry{nx, ny})
			}
		}
	}
	return -1, -1, nil
}

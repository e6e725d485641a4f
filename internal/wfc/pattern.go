package wfc

// Pattern is an N×N window of tiles, stored row-major and flattened. It
// holds a slice, so Pattern values are not comparable with ==; compare
// them with Equal. BuildCatalog dedupes by a string key over the content.
type Pattern struct {
	Size  int
	cells []Tile // len == Size*Size, row-major
}

// newPattern copies an N×N window starting at (x0, y0) out of g.
func newPattern(g Grid, x0, y0, n int) Pattern {
	cells := make([]Tile, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			cells[y*n+x] = g.At(x0+x, y0+y)
		}
	}
	return Pattern{Size: n, cells: cells}
}

// NewPattern rebuilds a Pattern from a flat row-major cell slice of
// length size*size. Used to rehydrate patterns persisted by a catalog
// store, where only the flattened cells survive the round trip.
func NewPattern(size int, cells []Tile) (Pattern, error) {
	if size < 2 || len(cells) != size*size {
		return Pattern{}, ErrInvalidPatternSize
	}
	cp := make([]Tile, len(cells))
	copy(cp, cells)
	return Pattern{Size: size, cells: cp}, nil
}

// Cells returns the pattern's flattened row-major tiles. Used when
// persisting a pattern to storage.
func (p Pattern) Cells() []Tile {
	cp := make([]Tile, len(p.cells))
	copy(cp, p.cells)
	return cp
}

// At returns the tile at local offset (x, y) within the pattern.
func (p Pattern) At(x, y int) Tile { return p.cells[y*p.Size+x] }

// Center returns the pattern's center tile, at index (⌊N/2⌋, ⌊N/2⌋).
func (p Pattern) Center() Tile {
	c := p.Size / 2
	return p.At(c, c)
}

// Equal reports whether two patterns have identical content. Patterns of
// differing Size are never equal.
func (p Pattern) Equal(other Pattern) bool {
	if p.Size != other.Size || len(p.cells) != len(other.cells) {
		return false
	}
	for i, t := range p.cells {
		if other.cells[i] != t {
			return false
		}
	}
	return true
}

// edgeKey computes a comparable key for the N-tile row or column lying on
// the pattern's d-facing edge. Two patterns may be adjacent in direction d
// only if edgeKey(d) of one equals edgeKey(d.Opposite()) of the other.
func (p Pattern) edgeKey(d Direction) string {
	n := p.Size
	buf := make([]rune, n)
	switch d {
	case North: // i's top row: i[0][*]
		for x := 0; x < n; x++ {
			buf[x] = rune(p.At(x, 0))
		}
	case South: // i's bottom row: i[N-1][*]
		for x := 0; x < n; x++ {
			buf[x] = rune(p.At(x, n-1))
		}
	case East: // i's right column: i[*][N-1]
		for y := 0; y < n; y++ {
			buf[y] = rune(p.At(n-1, y))
		}
	case West: // i's left column: i[*][0]
		for y := 0; y < n; y++ {
			buf[y] = rune(p.At(0, y))
		}
	}
	return string(buf)
}

// ExtractPatterns slides an N×N window across every exemplar and returns
// the multiset of occurrences (duplicates preserved; BuildCatalog tallies
// them into weights). Exemplars smaller than N in either dimension
// contribute no patterns and are not themselves an error.
//
// Degenerate (zero-sized) exemplars return ErrDegenerateExemplar, since
// those are a caller bug rather than a legitimately-small exemplar.
func ExtractPatterns(exemplars []Grid, n int) ([]Pattern, error) {
	if n < 2 {
		return nil, ErrInvalidPatternSize
	}

	var patterns []Pattern
	for _, g := range exemplars {
		if g.IsDegenerate() {
			return nil, ErrDegenerateExemplar
		}
		h, w := g.Height(), g.Width()
		if h < n || w < n {
			continue // too small to yield any pattern; not an error
		}
		for y := 0; y <= h-n; y++ {
			for x := 0; x <= w-n; x++ {
				patterns = append(patterns, newPattern(g, x, y, n))
			}
		}
	}
	return patterns, nil
}

package wfc

// Augment expands a single exemplar into its eight symmetries: four
// rotations, each with and without a horizontal reflection. Pattern
// extraction never applies this on its own, so callers that want
// rotation/reflection invariance opt in by passing Augment's output to
// ExtractPatterns instead of the bare exemplar slice.
func Augment(exemplar Grid) []Grid {
	variants := make([]Grid, 0, 8)
	g := exemplar
	for i := 0; i < 4; i++ {
		variants = append(variants, g, flipHorizontal(g))
		g = rotate90(g)
	}
	return variants
}

// rotate90 rotates a grid 90 degrees clockwise.
func rotate90(g Grid) Grid {
	if g.IsDegenerate() {
		return g
	}
	h, w := g.Height(), g.Width()
	rows := make([][]Tile, w)
	for y := 0; y < w; y++ {
		rows[y] = make([]Tile, h)
		for x := 0; x < h; x++ {
			rows[y][x] = g.At(y, h-1-x)
		}
	}
	return Grid{Rows: rows}
}

// flipHorizontal mirrors a grid left-to-right.
func flipHorizontal(g Grid) Grid {
	if g.IsDegenerate() {
		return g
	}
	h, w := g.Height(), g.Width()
	rows := make([][]Tile, h)
	for y := 0; y < h; y++ {
		rows[y] = make([]Tile, w)
		for x := 0; x < w; x++ {
			rows[y][x] = g.At(w-1-x, y)
		}
	}
	return Grid{Rows: rows}
}

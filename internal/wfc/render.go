package wfc

// Render projects a fully-collapsed wave back to a W×H tile grid: each
// cell's unique remaining pattern index is mapped to its center tile. An
// uncollapsed cell projects to UnknownTile, and Render reports
// ErrNotCollapsed in that case rather than returning a grid silently
// containing it — a successful render never contains UnknownTile.
func Render(w *Wave, cat *Catalog) (Grid, error) {
	rows := make([][]Tile, w.Height)
	sawUnknown := false

	for y := 0; y < w.Height; y++ {
		row := make([]Tile, w.Width)
		for x := 0; x < w.Width; x++ {
			idx, ok := w.At(x, y).Single()
			if !ok {
				row[x] = UnknownTile
				sawUnknown = true
				continue
			}
			row[x] = cat.Patterns[idx].Center()
		}
		rows[y] = row
	}

	if sawUnknown {
		return Grid{Rows: rows}, ErrNotCollapsed
	}
	return Grid{Rows: rows}, nil
}

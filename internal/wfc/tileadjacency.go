package wfc

// TileAdjacency records, for each cardinal direction, the set of ordered
// tile pairs (t1, t2) such that t2 was observed at that direction from t1
// somewhere in some exemplar. It encodes what the raw exemplar tile mosaic
// permits, independent of any pattern — the center-tile filter in
// CompileAdjacency re-grounds pattern-level adjacency rules in this table.
type TileAdjacency struct {
	pairs [4]map[tilePair]bool
}

type tilePair struct {
	from, to Tile
}

// BuildTileAdjacency scans every exemplar and records which tile pairs
// appear adjacent in each of the four directions.
func BuildTileAdjacency(exemplars []Grid) *TileAdjacency {
	ta := &TileAdjacency{}
	for i := range ta.pairs {
		ta.pairs[i] = make(map[tilePair]bool)
	}

	for _, g := range exemplars {
		if g.IsDegenerate() {
			continue
		}
		h, w := g.Height(), g.Width()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				from := g.At(x, y)
				for _, d := range AllDirections() {
					dx, dy := d.Offset()
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					to := g.At(nx, ny)
					ta.pairs[d][tilePair{from, to}] = true
				}
			}
		}
	}
	return ta
}

// Allows reports whether t2 was observed at direction d from t1.
func (ta *TileAdjacency) Allows(t1, t2 Tile, d Direction) bool {
	return ta.pairs[d][tilePair{t1, t2}]
}

package wfc

import "testing"

func gridFromStrings(rows []string) Grid {
	out := make([][]Tile, len(rows))
	for y, row := range rows {
		r := make([]Tile, len(row))
		for x, ch := range row {
			r[x] = Tile(ch)
		}
		out[y] = r
	}
	return Grid{Rows: out}
}

func TestGridDimensions(t *testing.T) {
	g := gridFromStrings([]string{"...", "..."})
	if g.Height() != 2 || g.Width() != 3 {
		t.Fatalf("got %dx%d, want 2x3", g.Height(), g.Width())
	}
	if g.IsDegenerate() {
		t.Fatal("non-empty grid reported degenerate")
	}
}

func TestGridDegenerate(t *testing.T) {
	if !(Grid{}).IsDegenerate() {
		t.Fatal("zero-value grid should be degenerate")
	}
	empty := NewGrid([][]Tile{})
	if !empty.IsDegenerate() {
		t.Fatal("empty rows grid should be degenerate")
	}
}

func TestDirectionOppositeAndOffset(t *testing.T) {
	cases := []struct {
		d        Direction
		opposite Direction
		dx, dy   int
	}{
		{North, South, 0, -1},
		{South, North, 0, 1},
		{East, West, 1, 0},
		{West, East, -1, 0},
	}
	for _, c := range cases {
		if c.d.Opposite() != c.opposite {
			t.Errorf("%s.Opposite() = %s, want %s", c.d, c.d.Opposite(), c.opposite)
		}
		dx, dy := c.d.Offset()
		if dx != c.dx || dy != c.dy {
			t.Errorf("%s.Offset() = (%d,%d), want (%d,%d)", c.d, dx, dy, c.dx, c.dy)
		}
	}
}

func TestAllDirectionsStable(t *testing.T) {
	got := AllDirections()
	want := []Direction{North, East, South, West}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllDirections()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

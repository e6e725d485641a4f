package wfc

import "testing"

func TestNewWaveStartsFull(t *testing.T) {
	cat, rules := buildRules(t, []string{"...", "...", "..."}, 2, true)
	w := NewWave(4, 3, rules)
	if w.Width != 4 || w.Height != 3 {
		t.Fatalf("wrong dimensions")
	}
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.At(x, y).Count() != cat.Len() {
				t.Fatalf("cell (%d,%d) not fully possible", x, y)
			}
		}
	}
}

func TestWaveCollapseAndIsCollapsed(t *testing.T) {
	_, rules := buildRules(t, []string{"...", "...", "..X"}, 2, true)
	w := NewWave(2, 2, rules)
	if w.IsCollapsed(0, 0) {
		t.Fatal("fresh cell should not be collapsed")
	}
	w.Collapse(0, 0, 0)
	if !w.IsCollapsed(0, 0) {
		t.Fatal("cell should be collapsed after Collapse")
	}
}

func TestPropagateSingleTileCatalogCollapsesEverything(t *testing.T) {
	_, rules := buildRules(t, []string{"...", "...", "..."}, 2, true)
	w := NewWave(5, 5, rules)
	w.Collapse(2, 2, 0)
	_, _, err := w.Propagate(2, 2)
	if err != nil {
		t.Fatalf("unexpected contradiction: %v", err)
	}
	if !w.IsFullyCollapsed() {
		t.Fatal("single-pattern catalog should propagate to full collapse")
	}
}

func TestPropagateContradiction(t *testing.T) {
	// Two tiles that never neighbor each other; with the center filter on,
	// forcing adjacent cells to different patterns must contradict.
	cat, rules := buildRulesFromExemplars(t, disconnectedExemplars, 2, true)

	// Find one pattern centered on A and one centered on B.
	var aIdx, bIdx = -1, -1
	for i, p := range cat.Patterns {
		if p.Center() == 'A' && aIdx == -1 {
			aIdx = i
		}
		if p.Center() == 'B' && bIdx == -1 {
			bIdx = i
		}
	}
	if aIdx == -1 || bIdx == -1 {
		t.Fatal("expected both A-centered and B-centered patterns")
	}

	w := NewWave(2, 1, rules)
	w.Collapse(0, 0, aIdx)
	if _, _, err := w.Propagate(0, 0); err != nil {
		t.Fatalf("unexpected contradiction seeding (0,0): %v", err)
	}
	// A-centered and B-centered patterns never neighbor under the center
	// filter, so the B-centered pattern must now be forbidden at (1,0).
	if w.At(1, 0).Test(bIdx) {
		t.Fatal("B-centered pattern should have been eliminated at (1,0)")
	}

	// Directly forcing the forbidden collapse anyway must surface as a
	// contradiction once propagated.
	w.Collapse(1, 0, bIdx)
	_, _, err := w.Propagate(1, 0)
	if err != ErrContradiction {
		t.Fatalf("got %v, want ErrContradiction", err)
	}
}

package wfc

import "testing"

func TestExtractPatternsCount(t *testing.T) {
	// 3x3 exemplar, N=2 yields (3-2+1)^2 = 4 overlapping windows.
	g := gridFromStrings([]string{"...", "...", "..."})
	patterns, err := ExtractPatterns([]Grid{g}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 4 {
		t.Fatalf("got %d patterns, want 4", len(patterns))
	}
}

func TestExtractPatternsTooSmallIsNotError(t *testing.T) {
	g := gridFromStrings([]string{"."})
	patterns, err := ExtractPatterns([]Grid{g}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 0 {
		t.Fatalf("got %d patterns, want 0", len(patterns))
	}
}

func TestExtractPatternsDegenerateExemplar(t *testing.T) {
	_, err := ExtractPatterns([]Grid{{}}, 2)
	if err != ErrDegenerateExemplar {
		t.Fatalf("got %v, want ErrDegenerateExemplar", err)
	}
}

func TestExtractPatternsInvalidSize(t *testing.T) {
	g := gridFromStrings([]string{"..", ".."})
	_, err := ExtractPatterns([]Grid{g}, 1)
	if err != ErrInvalidPatternSize {
		t.Fatalf("got %v, want ErrInvalidPatternSize", err)
	}
}

func TestPatternEqualAndCenter(t *testing.T) {
	g := gridFromStrings([]string{"ABC", "DEF", "GHI"})
	p := newPattern(g, 0, 0, 3)
	if p.Center() != 'E' {
		t.Fatalf("center = %c, want E", p.Center())
	}
	p2 := newPattern(g, 0, 0, 3)
	if !p.Equal(p2) {
		t.Fatal("identical windows should be equal")
	}
}

func TestPatternEdgeKeyMatchesSpecFormulas(t *testing.T) {
	g := gridFromStrings([]string{"ABC", "DEF", "GHI"})
	p := newPattern(g, 0, 0, 3)

	if p.edgeKey(North) != "ABC" {
		t.Errorf("North edge = %q, want ABC", p.edgeKey(North))
	}
	if p.edgeKey(South) != "GHI" {
		t.Errorf("South edge = %q, want GHI", p.edgeKey(South))
	}
	if p.edgeKey(East) != "CFI" {
		t.Errorf("East edge = %q, want CFI", p.edgeKey(East))
	}
	if p.edgeKey(West) != "ADG" {
		t.Errorf("West edge = %q, want ADG", p.edgeKey(West))
	}
}

func TestExtractPatternsPreservesMultiset(t *testing.T) {
	// All-dot 3x3 exemplar: every 2x2 window is identical, so extraction
	// should emit 4 equal occurrences rather than deduping them (dedup is
	// BuildCatalog's job, not the extractor's).
	g := gridFromStrings([]string{"...", "...", "..."})
	patterns, err := ExtractPatterns([]Grid{g}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 4 {
		t.Fatalf("got %d patterns, want 4", len(patterns))
	}
	for _, p := range patterns {
		if !p.Equal(patterns[0]) {
			t.Fatal("all-dot exemplar should yield identical windows")
		}
	}
}

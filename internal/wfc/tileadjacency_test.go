package wfc

import "testing"

func TestBuildTileAdjacencyObservedPairs(t *testing.T) {
	g := gridFromStrings([]string{
		"AB",
		"CD",
	})
	ta := BuildTileAdjacency([]Grid{g})

	// A is west of B (East direction from A reaches B).
	if !ta.Allows('A', 'B', East) {
		t.Error("expected A->B east")
	}
	// Symmetric: B is east of A, so West direction from B reaches A.
	if !ta.Allows('B', 'A', West) {
		t.Error("expected B->A west")
	}
	// A is north of C (South direction from A reaches C).
	if !ta.Allows('A', 'C', South) {
		t.Error("expected A->C south")
	}
	if !ta.Allows('C', 'A', North) {
		t.Error("expected C->A north")
	}
	// Never-observed pair.
	if ta.Allows('A', 'D', East) {
		t.Error("A->D east was never observed")
	}
}

func TestBuildTileAdjacencySkipsDegenerateExemplars(t *testing.T) {
	ta := BuildTileAdjacency([]Grid{{}})
	if ta.Allows('A', 'A', North) {
		t.Fatal("degenerate exemplar should contribute no pairs")
	}
}

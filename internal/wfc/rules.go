package wfc

// AdjacencyRules holds, for every pattern index i and direction d, the set
// A[i][d] of pattern indices that may legally neighbor i in direction d.
// It is built once from a Catalog and TileAdjacency and is immutable and
// safe to share across many concurrent solves.
type AdjacencyRules struct {
	catalogSize int
	// allowed[i][d] is a Bitset over [0, catalogSize).
	allowed [][4]Bitset
}

// CompileAdjacency computes A[i][d] for every ordered pair (i, j) and
// direction d in O(P² · 4 · N). Pattern j is permitted in direction d from
// pattern i iff the border overlap holds and, when useCenterFilter is
// true, the pair of center tiles is present in the tile adjacency table
// for d.
//
// When useCenterFilter is false only border overlap is required, matching
// the useCenterTileFilter=false configuration option.
func CompileAdjacency(cat *Catalog, tileAdj *TileAdjacency, useCenterFilter bool) *AdjacencyRules {
	p := cat.Len()
	rules := &AdjacencyRules{catalogSize: p, allowed: make([][4]Bitset, p)}
	for i := range rules.allowed {
		for d := range rules.allowed[i] {
			rules.allowed[i][d] = NewBitset(p)
		}
	}

	// Precompute each pattern's edge key per direction once instead of
	// recomputing it O(P) times inside the inner loop.
	edgeKeys := make([][4]string, p)
	for i, pat := range cat.Patterns {
		for _, d := range AllDirections() {
			edgeKeys[i][d] = pat.edgeKey(d)
		}
	}

	for i, pi := range cat.Patterns {
		for j, pj := range cat.Patterns {
			for _, d := range AllDirections() {
				if edgeKeys[i][d] != edgeKeys[j][d.Opposite()] {
					continue
				}
				if useCenterFilter && !tileAdj.Allows(pi.Center(), pj.Center(), d) {
					continue
				}
				rules.allowed[i][d].Set(j)
			}
		}
	}
	return rules
}

// Allowed returns the (shared, read-only) bitset of pattern indices
// permitted in direction d from pattern i. Callers must not mutate the
// returned Bitset.
func (r *AdjacencyRules) Allowed(i int, d Direction) Bitset {
	return r.allowed[i][d]
}

// CatalogSize returns P, the universe size every Bitset here is sized for.
func (r *AdjacencyRules) CatalogSize() int { return r.catalogSize }

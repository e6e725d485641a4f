package wfc

// Catalog is the deduplicated, indexed set of patterns extracted from
// exemplars, with a parallel frequency weight per index. Pattern index i
// in [0, len(Patterns)) is stable for the lifetime of the Catalog.
type Catalog struct {
	Patterns []Pattern
	Weights  []int // Weights[i] >= 1, equals the occurrence count of Patterns[i]
}

// Len returns the catalog size P.
func (c *Catalog) Len() int { return len(c.Patterns) }

// TotalWeight returns the sum of all weights (equal to the number of
// pattern occurrences the catalog was built from).
func (c *Catalog) TotalWeight() int {
	total := 0
	for _, w := range c.Weights {
		total += w
	}
	return total
}

// BuildCatalog deduplicates a pattern multiset into an ordered catalog of
// distinct patterns with exact occurrence counts as weights. Catalog order
// is first-seen order, which is arbitrary but stable within a run, so
// pattern indices are meaningful for the remainder of that run.
//
// Returns ErrEmptyCatalog if patterns is empty.
func BuildCatalog(patterns []Pattern) (*Catalog, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptyCatalog
	}

	cat := &Catalog{}
	// Patterns are not comparable as Go map keys (cells is a slice), so
	// dedupe by a string key over their content instead of relying on ==.
	index := make(map[string]int, len(patterns))
	for _, p := range patterns {
		key := patternKey(p)
		if i, ok := index[key]; ok {
			cat.Weights[i]++
			continue
		}
		index[key] = len(cat.Patterns)
		cat.Patterns = append(cat.Patterns, p)
		cat.Weights = append(cat.Weights, 1)
	}
	return cat, nil
}

// patternKey renders a pattern's content to a string suitable as a map key.
func patternKey(p Pattern) string {
	buf := make([]rune, len(p.cells))
	for i, t := range p.cells {
		buf[i] = rune(t)
	}
	return string(buf)
}

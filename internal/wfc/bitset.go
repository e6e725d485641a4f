package wfc

import "math/bits"

// Bitset is a fixed-size set of pattern indices in [0, n), backed by
// []uint64 words so intersection/union are a single bitwise AND/OR per
// word and cardinality is a popcount, used throughout for possibility
// sets and adjacency masks alike.
type Bitset struct {
	n     int
	words []uint64
}

// NewBitset returns an empty Bitset capable of holding indices in [0, n).
func NewBitset(n int) Bitset {
	return Bitset{n: n, words: make([]uint64, (n+63)/64)}
}

// FullBitset returns a Bitset with every index in [0, n) set.
func FullBitset(n int) Bitset {
	b := NewBitset(n)
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	b.maskTail()
	return b
}

// maskTail clears any bits beyond n in the final word so popcount and
// equality checks never see stale high bits.
func (b *Bitset) maskTail() {
	if len(b.words) == 0 {
		return
	}
	rem := b.n % 64
	if rem == 0 {
		return
	}
	last := len(b.words) - 1
	b.words[last] &= (uint64(1) << rem) - 1
}

// Len returns the universe size n.
func (b Bitset) Len() int { return b.n }

// Set adds i to the set.
func (b Bitset) Set(i int) { b.words[i/64] |= uint64(1) << uint(i%64) }

// Clear removes i from the set.
func (b Bitset) Clear(i int) { b.words[i/64] &^= uint64(1) << uint(i%64) }

// Test reports whether i is in the set.
func (b Bitset) Test(i int) bool { return b.words[i/64]&(uint64(1)<<uint(i%64)) != 0 }

// Count returns the number of set bits (the cardinality of the possibility set).
func (b Bitset) Count() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// IsEmpty reports whether no bits are set (a contradicted cell).
func (b Bitset) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (b Bitset) Clone() Bitset {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return Bitset{n: b.n, words: words}
}

// Equal reports whether two bitsets of the same universe size hold the same bits.
func (b Bitset) Equal(other Bitset) bool {
	if b.n != other.n {
		return false
	}
	for i := range b.words {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// IntersectInPlace sets b to b ∩ other and reports whether b changed.
func (b Bitset) IntersectInPlace(other Bitset) (changed bool) {
	for i := range b.words {
		nw := b.words[i] & other.words[i]
		if nw != b.words[i] {
			changed = true
		}
		b.words[i] = nw
	}
	return changed
}

// UnionInPlace sets b to b ∪ other.
func (b Bitset) UnionInPlace(other Bitset) {
	for i := range b.words {
		b.words[i] |= other.words[i]
	}
}

// Union returns a new Bitset holding b ∪ other.
func (b Bitset) Union(other Bitset) Bitset {
	out := b.Clone()
	out.UnionInPlace(other)
	return out
}

// ForEach calls fn for every set index in ascending order.
func (b Bitset) ForEach(fn func(i int)) {
	for w, word := range b.words {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			fn(w*64 + tz)
			word &= word - 1 // clear lowest set bit
		}
	}
}

// Single returns the sole set index and true if the set has exactly one
// member, otherwise (0, false).
func (b Bitset) Single() (int, bool) {
	found := -1
	for w, word := range b.words {
		if word == 0 {
			continue
		}
		if found != -1 || bits.OnesCount64(word) > 1 {
			return 0, false
		}
		found = w*64 + bits.TrailingZeros64(word)
	}
	if found == -1 {
		return 0, false
	}
	return found, true
}

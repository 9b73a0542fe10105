package evaluator

// bitset is a dense bit set over small non-negative indices, sized for
// parameter lists. Indices are bounded by the parameter count, so a
// handful of words is always enough.
type bitset []uint64

func newBitset(size int) bitset {
	return make(bitset, (size+63)/64)
}

func (b bitset) has(i int) bool {
	w := i >> 6
	if w >= len(b) {
		return false
	}
	return b[w]&(1<<(uint(i)&63)) != 0
}

func (b bitset) set(i int) {
	b[i>>6] |= 1 << (uint(i) & 63)
}

func (b bitset) empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// andNot returns b &^ other in a fresh set.
func (b bitset) andNot(other bitset) bitset {
	out := make(bitset, len(b))
	for i, w := range b {
		var o uint64
		if i < len(other) {
			o = other[i]
		}
		out[i] = w &^ o
	}
	return out
}

// Package bitvec provides fixed-length bit sequences backed by
// accounting-word arrays, suitable for GC mark bits and similar
// per-slot flags.
package bitvec

import "math/bits"

// WordBits is the width of one accounting word.
const WordBits = 64

// Vector is a fixed-length bit sequence. Bit i of the vector is bit
// i%WordBits of word i/WordBits.
type Vector []uint64

// New returns a Vector with room for n bits. The word count is
// 1 + n/WordBits, so even a zero-length vector has one word.
func New(n int) Vector {
	return make(Vector, 1+n/WordBits)
}

// Set sets bit i.
func (v Vector) Set(i int) {
	v[i/WordBits] |= 1 << (i % WordBits)
}

// Clear clears bit i.
func (v Vector) Clear(i int) {
	v[i/WordBits] &^= 1 << (i % WordBits)
}

// Test reports whether bit i is set.
func (v Vector) Test(i int) bool {
	return v[i/WordBits]&(1<<(i%WordBits)) != 0
}

// ClearAll clears every bit.
func (v Vector) ClearAll() {
	for i := range v {
		v[i] = 0
	}
}

// Count returns the number of set bits.
func (v Vector) Count() int {
	n := 0
	for _, w := range v {
		n += bits.OnesCount64(w)
	}
	return n
}

// Words returns the number of backing words.
func (v Vector) Words() int { return len(v) }

package valuemap

import (
	"iter"
	"math/bits"

	"github.com/hupe1980/valuemap/internal/simd"
)

const (
	// MapSizeInBits is the number of addressable bit positions.
	MapSizeInBits = 1 << 16

	// MapPrimeMod is the largest prime below MapSizeInBits.
	MapPrimeMod = 65371

	// WordBits is the number of bits per word.
	WordBits = 64

	// MapSizeInWords is the number of words backing the map.
	MapSizeInWords = MapSizeInBits / WordBits
)

// ValueBitMap is a fixed 65536-bit set of value fingerprints.
//
// Values are hashed to a bit by a plain modulo, so distinct values may share a
// bit. A ValueBitMap is not safe for concurrent mutation; MergeFrom mutates
// both the receiver and its argument.
//
// The zero value is an empty map ready to use. The words are stored inline, so
// a ValueBitMap is a single contiguous 8 KiB block and should be passed by
// pointer.
type ValueBitMap struct {
	// numBits is the population count as of the last MergeFrom (or Reset).
	// AddValue does not update it.
	numBits int

	words [MapSizeInWords]uint64
}

// New returns an empty ValueBitMap.
func New() *ValueBitMap {
	return &ValueBitMap{}
}

// Reset clears all bits.
func (b *ValueBitMap) Reset() {
	clear(b.words[:])
	b.numBits = 0
}

// AddValue sets the bit for value and reports whether it was previously unset.
//
//go:nosplit
func (b *ValueBitMap) AddValue(value uintptr) bool {
	idx := value % MapSizeInBits
	w := &b.words[idx/WordBits]
	old := *w
	*w = old | uint64(1)<<(idx%WordBits)
	return *w != old
}

// AddValueModPrime is AddValue applied to value mod MapPrimeMod. The prime
// step spreads inputs whose low bits are correlated (pointers, counters).
func (b *ValueBitMap) AddValueModPrime(value uintptr) bool {
	return b.AddValue(value % MapPrimeMod)
}

// Get reports whether bit idx is set.
//
// idx is a bit position, not a value: it must be below MapSizeInBits.
func (b *ValueBitMap) Get(idx uint32) bool {
	return b.words[idx/WordBits]&(uint64(1)<<(idx%WordBits)) != 0
}

// NumBitsSinceLastMerge returns the population count computed by the last
// MergeFrom. Bits added since then are not reflected.
func (b *ValueBitMap) NumBitsSinceLastMerge() int {
	return b.numBits
}

// MergeFrom ORs other into b and clears other.
//
// The cached count of b is recomputed from scratch. MergeFrom returns true if
// the count grew, i.e. other contributed at least one bit b did not have.
// Merging a map into itself is a no-op.
func (b *ValueBitMap) MergeFrom(other *ValueBitMap) bool {
	if other == b {
		return false
	}
	old := b.numBits
	b.numBits = simd.OrDrainWords(b.words[:], other.words[:])
	other.numBits = 0
	return old < b.numBits
}

// ForEach calls fn for every set bit in ascending order.
func (b *ValueBitMap) ForEach(fn func(idx uint32)) {
	for i, w := range b.words[:] {
		base := uint32(i * WordBits)
		for w != 0 {
			fn(base + uint32(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
}

// All returns an iterator over the set bits in ascending order.
func (b *ValueBitMap) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i, w := range b.words[:] {
			base := uint32(i * WordBits)
			for w != 0 {
				if !yield(base + uint32(bits.TrailingZeros64(w))) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Len returns the exact number of set bits.
func (b *ValueBitMap) Len() int {
	return simd.PopcountWords(b.words[:])
}

// IsEmpty returns true if no bit is set.
func (b *ValueBitMap) IsEmpty() bool {
	for _, w := range b.words[:] {
		if w != 0 {
			return false
		}
	}
	return true
}

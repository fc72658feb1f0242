package valuemap

import (
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
)

// ToRoaring returns the set bits of b as a roaring bitmap. b is not modified.
func (b *ValueBitMap) ToRoaring() *roaring.Bitmap {
	return wordsToRoaring(b.words[:], nil)
}

// AddFromRoaring sets every index of rb that is below MapSizeInBits and
// returns how many of them were previously unset. Larger indices are ignored.
//
// Like AddValue, it does not update NumBitsSinceLastMerge.
func (b *ValueBitMap) AddFromRoaring(rb *roaring.Bitmap) int {
	if rb == nil {
		return 0
	}

	added := 0
	it := rb.Iterator()
	for it.HasNext() {
		idx := it.Next()
		if idx >= MapSizeInBits {
			break
		}
		if b.AddValue(uintptr(idx)) {
			added++
		}
	}
	return added
}

// Diff returns the indices set in a but not in b.
func Diff(a, b *ValueBitMap) *roaring.Bitmap {
	return wordsToRoaring(a.words[:], b.words[:])
}

// wordsToRoaring collects the bits of words, minus those in exclude if it is
// non-nil, into a new roaring bitmap.
func wordsToRoaring(words, exclude []uint64) *roaring.Bitmap {
	var ids []uint32
	for i, w := range words {
		if exclude != nil {
			w &^= exclude[i]
		}
		base := uint32(i * WordBits)
		for w != 0 {
			ids = append(ids, base+uint32(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}

	rb := roaring.New()
	rb.AddMany(ids)
	return rb
}

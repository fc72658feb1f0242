package simd

import "math/bits"

// ==============================================================================
// Bitmap word operations
// ==============================================================================
//
// These operations back ValueBitMap in the root package. They operate on
// []uint64 representing bit arrays and are unrolled by four words.

// OrDrainWords performs dst[i] |= src[i]; src[i] = 0 for all words and returns
// the population count of dst after the merge.
//
// dst and src must have the same length and must not alias.
func OrDrainWords(dst, src []uint64) int {
	src = src[:len(dst)]

	count := 0
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		count += orDrainWord(&dst[i], &src[i])
		count += orDrainWord(&dst[i+1], &src[i+1])
		count += orDrainWord(&dst[i+2], &src[i+2])
		count += orDrainWord(&dst[i+3], &src[i+3])
	}
	for ; i < len(dst); i++ {
		count += orDrainWord(&dst[i], &src[i])
	}
	return count
}

func orDrainWord(d, s *uint64) int {
	if o := *s; o != 0 {
		*d |= o
		*s = 0
	}
	if m := *d; m != 0 {
		return bits.OnesCount64(m)
	}
	return 0
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	count := 0
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}

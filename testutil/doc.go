// Package testutil provides testing utilities for valuemap.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded generator for the value streams a testing engine
// feeds into a ValueBitMap.
//
// # Value Generation
//
//	rng := testutil.NewRNG(seed)
//	vals := rng.Values(1000)            // uniform machine words
//	ptrs := rng.AlignedValues(1000, 16) // pointer-like, 16-byte aligned
//	hot := rng.ZipfValues(1000, 64, 1.5)
//
// # Index Sets
//
//	idx := rng.Indices(100, 1<<16) // sorted, distinct
package testutil

package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Uintptr returns a pseudo-random machine word.
func (r *RNG) Uintptr() uintptr {
	return uintptr(r.Uint64())
}

// Values returns n uniformly distributed machine words.
func (r *RNG) Values(n int) []uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := make([]uintptr, n)
	for i := range vals {
		vals[i] = uintptr(r.rand.Uint64())
	}
	return vals
}

// AlignedValues returns n distinct values that are multiples of align, the
// way heap pointers or strided counters are. align must be positive.
func (r *RNG) AlignedValues(n int, align uintptr) []uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := uintptr(r.rand.Uint32()) * align
	vals := make([]uintptr, n)
	for i := range vals {
		vals[i] = base + uintptr(i)*align
	}
	r.rand.Shuffle(len(vals), func(i, j int) {
		vals[i], vals[j] = vals[j], vals[i]
	})
	return vals
}

// Indices returns n distinct, sorted indices in [0, universe).
// n is capped at universe.
func (r *RNG) Indices(n int, universe uint32) []uint32 {
	if n > int(universe) {
		n = int(universe)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint32]struct{}, n)
	out := make([]uint32, 0, n)
	for len(out) < n {
		idx := uint32(r.rand.Int63n(int64(universe)))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// ZipfValues returns n values drawn from a vocabulary of distinct words with
// Zipfian frequencies, so a few "hot" comparisons repeat most of the time.
func (r *RNG) ZipfValues(n, vocabulary int, s float64) []uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()

	vocab := make([]uintptr, vocabulary)
	for i := range vocab {
		vocab[i] = uintptr(r.rand.Uint64())
	}

	vals := make([]uintptr, n)
	for i := range vals {
		vals[i] = vocab[r.zipfLocked(vocabulary, s)]
	}
	return vals
}

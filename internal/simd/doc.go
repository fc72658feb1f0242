// Package simd provides the word kernels behind ValueBitMap merges.
//
// All kernels are written in portable Go. math/bits.OnesCount64 is lowered by
// the compiler to POPCNT on amd64 and CNT on arm64, so the popcount path runs
// on the hardware instruction wherever the CPU has one. ActiveISA reports which
// path the current process is on.
package simd

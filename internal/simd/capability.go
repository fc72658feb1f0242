package simd

import (
	"os"
	"strings"
)

// ISA represents the instruction set used for population counts.
type ISA uint8

const (
	// Generic represents the table-free software fallback.
	Generic ISA = iota
	// POPCNT represents the x86-64 POPCNT instruction.
	POPCNT
	// NEON represents the ARM64 ASIMD CNT instruction.
	NEON
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case POPCNT:
		return "popcnt"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Package-level state, set once by the platform init.
var (
	activeISA   ISA
	hasOverride bool

	hasPOPCNT bool // x86-64 POPCNT
	hasASIMD  bool // ARM64 NEON
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	// VALUEMAP_SIMD=generic pins the report to the fallback, e.g. for CI baselines.
	if strings.EqualFold(strings.TrimSpace(os.Getenv("VALUEMAP_SIMD")), "generic") {
		hasOverride = true
		activeISA = Generic
		return
	}

	switch {
	case hasPOPCNT:
		activeISA = POPCNT
	case hasASIMD:
		activeISA = NEON
	default:
		activeISA = Generic
	}
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if VALUEMAP_SIMD was set.
func IsOverridden() bool {
	return hasOverride
}

// HasPopcount returns true if the CPU has a hardware population count.
func HasPopcount() bool {
	return hasPOPCNT || hasASIMD
}

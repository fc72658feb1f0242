package simd

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISAString(t *testing.T) {
	assert.Equal(t, "generic", Generic.String())
	assert.Equal(t, "popcnt", POPCNT.String())
	assert.Equal(t, "neon", NEON.String())
	assert.Equal(t, "unknown", ISA(99).String())
}

func TestActiveISAMatchesPlatform(t *testing.T) {
	if IsOverridden() {
		assert.Equal(t, Generic, ActiveISA())
		return
	}

	switch runtime.GOARCH {
	case "amd64":
		if HasPopcount() {
			assert.Equal(t, POPCNT, ActiveISA())
		}
	case "arm64":
		if HasPopcount() {
			assert.Equal(t, NEON, ActiveISA())
		}
	default:
		assert.Equal(t, Generic, ActiveISA())
	}
}

func TestInitCapabilitiesOverride(t *testing.T) {
	prevISA, prevOverride := activeISA, hasOverride
	defer func() { activeISA, hasOverride = prevISA, prevOverride }()

	t.Setenv("VALUEMAP_SIMD", "Generic")
	initCapabilities()
	assert.True(t, IsOverridden())
	assert.Equal(t, Generic, ActiveISA())

	os.Unsetenv("VALUEMAP_SIMD")
	hasOverride = false
	initCapabilities()
	assert.False(t, IsOverridden())
}

package valuemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	p := NewPool()

	b := p.Get()
	assert.True(t, b.IsEmpty())

	b.AddValue(42)
	b.MergeFrom(New())
	p.Put(b)

	// Whatever comes back is empty, recycled or not.
	b2 := p.Get()
	assert.True(t, b2.IsEmpty())
	assert.Zero(t, b2.NumBitsSinceLastMerge())

	p.Put(nil)
}

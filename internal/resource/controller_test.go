package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Defaults(t *testing.T) {
	c := NewController(Config{})

	cfg := c.Config()
	assert.Equal(t, int64(1), cfg.MaxFoldWorkers)
	assert.Equal(t, 1, cfg.DrainBurst)
	assert.Zero(t, cfg.DrainsPerSec)
}

func TestController_Fold(t *testing.T) {
	c := NewController(Config{MaxFoldWorkers: 2})

	require.NoError(t, c.AcquireFold(context.Background()))
	require.NoError(t, c.AcquireFold(context.Background()))
	assert.Equal(t, int64(2), c.FoldsInFlight())

	// Third slot is not available
	assert.False(t, c.TryAcquireFold())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.AcquireFold(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(2), c.FoldsInFlight())

	c.ReleaseFold()
	assert.True(t, c.TryAcquireFold())
	assert.Equal(t, int64(2), c.FoldsInFlight())

	c.ReleaseFold()
	c.ReleaseFold()
	assert.Zero(t, c.FoldsInFlight())
}

func TestController_UnlimitedDrain(t *testing.T) {
	c := NewController(Config{})

	for i := 0; i < 100; i++ {
		require.NoError(t, c.WaitDrain(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.WaitDrain(ctx), context.Canceled)
}

func TestController_DrainRate(t *testing.T) {
	// One drain per 10s with a burst of 2: the third has to wait.
	c := NewController(Config{DrainsPerSec: 0.1, DrainBurst: 2})

	require.NoError(t, c.WaitDrain(context.Background()))
	require.NoError(t, c.WaitDrain(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.WaitDrain(ctx))
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireFold(context.Background()))
	assert.True(t, c.TryAcquireFold())
	c.ReleaseFold()
	assert.Zero(t, c.FoldsInFlight())
	require.NoError(t, c.WaitDrain(context.Background()))
}

package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxFoldWorkers is the maximum number of concurrent worker folds.
	// If 0, defaults to 1.
	MaxFoldWorkers int64

	// DrainsPerSec is the maximum rate of drains into the aggregate.
	// If 0, unlimited.
	DrainsPerSec float64

	// DrainBurst is the number of drains allowed back to back.
	// If 0, defaults to 1.
	DrainBurst int
}

// Controller manages fold concurrency and drain pacing.
type Controller struct {
	cfg Config

	// Concurrency
	foldSem  *semaphore.Weighted
	inFlight atomic.Int64

	// Pacing
	drainLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxFoldWorkers <= 0 {
		cfg.MaxFoldWorkers = 1
	}
	if cfg.DrainBurst <= 0 {
		cfg.DrainBurst = 1
	}

	c := &Controller{
		cfg:     cfg,
		foldSem: semaphore.NewWeighted(cfg.MaxFoldWorkers),
	}

	if cfg.DrainsPerSec > 0 {
		c.drainLimiter = rate.NewLimiter(rate.Limit(cfg.DrainsPerSec), cfg.DrainBurst)
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// AcquireFold reserves a fold slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireFold(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.foldSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireFold reserves a fold slot without blocking.
func (c *Controller) TryAcquireFold() bool {
	if c == nil {
		return true
	}
	if !c.foldSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseFold releases a fold slot.
func (c *Controller) ReleaseFold() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.foldSem.Release(1)
}

// FoldsInFlight returns the number of folds currently holding a slot.
func (c *Controller) FoldsInFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// WaitDrain blocks until the drain rate allows another drain.
func (c *Controller) WaitDrain(ctx context.Context) error {
	if c == nil || c.drainLimiter == nil {
		return ctx.Err()
	}
	return c.drainLimiter.Wait(ctx)
}

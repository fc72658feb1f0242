package valuemap

import (
	"context"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/valuemap/internal/resource"
	"github.com/hupe1980/valuemap/internal/simd"
)

// Aggregator owns a long-lived aggregate bitmap and serialises every merge
// into it. Workers record values into their own ValueBitMap without locking
// and hand it to Drain (or DrainAll) once they are quiescent; the worker comes
// back empty.
//
// All methods are safe for concurrent use. A worker must not be touched by
// anyone else while it is being drained.
type Aggregator struct {
	mu     sync.Mutex
	agg    *ValueBitMap
	closed bool

	ctrl    *resource.Controller
	logger  *Logger
	metrics MetricsCollector
}

// NewAggregator creates an empty Aggregator.
func NewAggregator(optFns ...Option) *Aggregator {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Aggregator{
		agg:     New(),
		ctrl:    resource.NewController(opts.resource),
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}

	cfg := a.ctrl.Config()
	a.logger.Debug("aggregator created",
		"popcount", simd.ActiveISA().String(),
		"max_fold_workers", cfg.MaxFoldWorkers,
		"drains_per_sec", cfg.DrainsPerSec,
	)

	return a
}

// Drain merges worker into the aggregate and clears worker. It reports
// whether worker contributed at least one feature the aggregate did not have.
func (a *Aggregator) Drain(ctx context.Context, worker *ValueBitMap) (bool, error) {
	start := time.Now()
	novel, numBits, err := a.drain(ctx, worker)
	a.metrics.RecordDrain(novel, numBits, time.Since(start), err)
	a.logger.LogDrain(ctx, novel, numBits, err)
	return novel, err
}

func (a *Aggregator) drain(ctx context.Context, worker *ValueBitMap) (bool, int, error) {
	if worker == nil {
		return false, 0, ErrNilBitmap
	}
	if worker == a.agg {
		return false, 0, ErrSelfMerge
	}
	if err := a.ctrl.WaitDrain(ctx); err != nil {
		return false, 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false, 0, ErrClosed
	}

	novel := a.agg.MergeFrom(worker)
	return novel, a.agg.NumBitsSinceLastMerge(), nil
}

// DrainAll merges every worker into the aggregate and clears them all. It
// reports whether the batch as a whole contributed anything new.
//
// Workers are first folded into each other pairwise, in parallel, and the
// single survivor is drained. If the context is canceled during the fold no
// bit is lost: every feature is still held by one of the workers.
func (a *Aggregator) DrainAll(ctx context.Context, workers []*ValueBitMap) (bool, error) {
	start := time.Now()
	novel, err := a.drainAll(ctx, workers)
	a.metrics.RecordFold(len(workers), time.Since(start), err)
	a.logger.LogFold(ctx, len(workers), novel, err)
	return novel, err
}

func (a *Aggregator) drainAll(ctx context.Context, workers []*ValueBitMap) (bool, error) {
	if err := a.checkWorkers(workers); err != nil {
		return false, err
	}
	if len(workers) == 0 {
		return false, nil
	}

	level := make([]*ValueBitMap, len(workers))
	copy(level, workers)

	for len(level) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		next := make([]*ValueBitMap, 0, (len(level)+1)/2)

		for i := 0; i+1 < len(level); i += 2 {
			dst, src := level[i], level[i+1]
			next = append(next, dst)

			g.Go(func() error {
				if err := a.ctrl.AcquireFold(gctx); err != nil {
					return err
				}
				defer a.ctrl.ReleaseFold()

				dst.MergeFrom(src)
				return nil
			})
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}

		if err := g.Wait(); err != nil {
			return false, err
		}
		level = next
	}

	return a.Drain(ctx, level[0])
}

// checkWorkers rejects nil slots, duplicates and the aggregate itself before
// anything is mutated.
func (a *Aggregator) checkWorkers(workers []*ValueBitMap) error {
	seen := make(map[*ValueBitMap]int, len(workers))
	for i, w := range workers {
		if w == nil {
			return &ErrWorkerConflict{Index: i, Other: -1, cause: ErrNilBitmap}
		}
		if w == a.agg {
			return &ErrWorkerConflict{Index: i, Other: -1, cause: ErrSelfMerge}
		}
		if j, ok := seen[w]; ok {
			return &ErrWorkerConflict{Index: i, Other: j, cause: ErrSelfMerge}
		}
		seen[w] = i
	}
	return nil
}

// Get reports whether bit idx is set in the aggregate. idx must be below
// MapSizeInBits.
func (a *Aggregator) Get(idx uint32) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.agg.Get(idx)
}

// NumBits returns the population count of the aggregate. The aggregate only
// changes through drains, so the cached count is always exact.
func (a *Aggregator) NumBits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.agg.NumBitsSinceLastMerge()
}

// ForEach calls fn for every feature in the aggregate in ascending order.
// fn must not call back into the Aggregator.
func (a *Aggregator) ForEach(fn func(idx uint32)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.agg.ForEach(fn)
}

// Snapshot returns the current features as a roaring bitmap.
func (a *Aggregator) Snapshot() *roaring.Bitmap {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.agg.ToRoaring()
}

// NewFeatures returns the features of worker the aggregate does not have yet,
// without draining worker.
func (a *Aggregator) NewFeatures(worker *ValueBitMap) *roaring.Bitmap {
	if worker == nil {
		return roaring.New()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return Diff(worker, a.agg)
}

// Reset clears the aggregate.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	dropped := a.agg.NumBitsSinceLastMerge()
	a.agg.Reset()
	a.mu.Unlock()

	a.metrics.RecordReset()
	a.logger.LogReset(context.Background(), dropped)
}

// Close marks the Aggregator closed. Later drains fail with ErrClosed; reads
// keep working.
func (a *Aggregator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

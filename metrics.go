package valuemap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting aggregation metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordDrain is called after each drain of a worker into the aggregate.
	// novel reports whether the aggregate grew, numBits is its population
	// count afterwards and err is nil if successful.
	RecordDrain(novel bool, numBits int, duration time.Duration, err error)

	// RecordFold is called after each batch fold. workers is the batch size.
	RecordFold(workers int, duration time.Duration, err error)

	// RecordReset is called after the aggregate is cleared.
	RecordReset()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDrain(bool, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFold(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordReset()                                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DrainCount      atomic.Int64
	DrainNovel      atomic.Int64
	DrainErrors     atomic.Int64
	DrainTotalNanos atomic.Int64
	AggregateBits   atomic.Int64
	FoldCount       atomic.Int64
	FoldWorkers     atomic.Int64
	FoldErrors      atomic.Int64
	FoldTotalNanos  atomic.Int64
	ResetCount      atomic.Int64
}

// RecordDrain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDrain(novel bool, numBits int, duration time.Duration, err error) {
	b.DrainCount.Add(1)
	b.DrainTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DrainErrors.Add(1)
		return
	}
	if novel {
		b.DrainNovel.Add(1)
	}
	b.AggregateBits.Store(int64(numBits))
}

// RecordFold implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFold(workers int, duration time.Duration, err error) {
	b.FoldCount.Add(1)
	b.FoldWorkers.Add(int64(workers))
	b.FoldTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FoldErrors.Add(1)
	}
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset() {
	b.ResetCount.Add(1)
	b.AggregateBits.Store(0)
}

// MetricsStats is a point-in-time copy of BasicMetricsCollector.
type MetricsStats struct {
	DrainCount    int64
	DrainNovel    int64
	DrainErrors   int64
	AvgDrainNanos int64
	AggregateBits int64
	FoldCount     int64
	FoldWorkers   int64
	FoldErrors    int64
	ResetCount    int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		DrainCount:    b.DrainCount.Load(),
		DrainNovel:    b.DrainNovel.Load(),
		DrainErrors:   b.DrainErrors.Load(),
		AggregateBits: b.AggregateBits.Load(),
		FoldCount:     b.FoldCount.Load(),
		FoldWorkers:   b.FoldWorkers.Load(),
		FoldErrors:    b.FoldErrors.Load(),
		ResetCount:    b.ResetCount.Load(),
	}
	if stats.DrainCount > 0 {
		stats.AvgDrainNanos = b.DrainTotalNanos.Load() / stats.DrainCount
	}
	return stats
}

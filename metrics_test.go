package valuemap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	mc.RecordDrain(true, 10, 2*time.Millisecond, nil)
	mc.RecordDrain(false, 10, 4*time.Millisecond, nil)
	mc.RecordDrain(false, 0, 0, errors.New("boom"))
	mc.RecordFold(4, time.Millisecond, nil)
	mc.RecordFold(2, time.Millisecond, errors.New("boom"))

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.DrainCount)
	assert.Equal(t, int64(1), stats.DrainNovel)
	assert.Equal(t, int64(1), stats.DrainErrors)
	assert.Equal(t, int64(2*time.Millisecond), stats.AvgDrainNanos)
	assert.Equal(t, int64(10), stats.AggregateBits)
	assert.Equal(t, int64(2), stats.FoldCount)
	assert.Equal(t, int64(6), stats.FoldWorkers)
	assert.Equal(t, int64(1), stats.FoldErrors)

	mc.RecordReset()
	assert.Zero(t, mc.GetStats().AggregateBits)
	assert.Equal(t, int64(1), mc.GetStats().ResetCount)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}

	assert.NotPanics(t, func() {
		mc.RecordDrain(true, 1, time.Second, nil)
		mc.RecordFold(1, time.Second, nil)
		mc.RecordReset()
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.WithWorker(3).LogDrain(ctx, false, 12, nil)
	assert.Contains(t, buf.String(), "drain completed")
	assert.Contains(t, buf.String(), "worker=3")
	assert.Contains(t, buf.String(), "bits=12")

	buf.Reset()
	l.LogDrain(ctx, false, 0, ErrClosed)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "aggregator closed")

	buf.Reset()
	l.LogFold(ctx, 4, true, nil)
	assert.Contains(t, buf.String(), "fold completed")
	assert.Contains(t, buf.String(), "workers=4")

	buf.Reset()
	l.LogFold(ctx, 4, false, context.Canceled)
	assert.Contains(t, buf.String(), "fold failed")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()

	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() {
		l.LogDrain(context.Background(), true, 1, nil)
	})
}

func TestOptions(t *testing.T) {
	opts := defaultOptions()
	for _, fn := range []Option{
		WithLogger(nil),
		WithMetricsCollector(nil),
		WithMaxFoldWorkers(3),
		WithDrainRate(50, 5),
	} {
		fn(&opts)
	}

	assert.NotNil(t, opts.logger)
	assert.IsType(t, NoopMetricsCollector{}, opts.metricsCollector)
	assert.Equal(t, int64(3), opts.resource.MaxFoldWorkers)
	assert.Equal(t, 50.0, opts.resource.DrainsPerSec)
	assert.Equal(t, 5, opts.resource.DrainBurst)
}

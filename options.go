package valuemap

import (
	"runtime"

	"github.com/hupe1980/valuemap/internal/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	resource         resource.Config
}

// Option configures an Aggregator.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		resource: resource.Config{
			MaxFoldWorkers: int64(runtime.GOMAXPROCS(0)),
		},
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMaxFoldWorkers bounds how many worker pairs DrainAll folds concurrently.
// Values below 1 mean 1. Defaults to GOMAXPROCS.
func WithMaxFoldWorkers(n int) Option {
	return func(o *options) {
		o.resource.MaxFoldWorkers = int64(n)
	}
}

// WithDrainRate limits drains into the aggregate to perSec per second with
// the given burst. A perSec of 0 disables the limit (the default).
func WithDrainRate(perSec float64, burst int) Option {
	return func(o *options) {
		o.resource.DrainsPerSec = perSec
		o.resource.DrainBurst = burst
	}
}

package valuemap

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with valuemap-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithWorker adds a worker field to the logger.
func (l *Logger) WithWorker(worker int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", worker),
	}
}

// LogDrain logs a drain of one worker into the aggregate.
func (l *Logger) LogDrain(ctx context.Context, novel bool, numBits int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "drain failed",
			"error", err,
		)
	case novel:
		l.InfoContext(ctx, "drain found new features",
			"bits", numBits,
		)
	default:
		l.DebugContext(ctx, "drain completed",
			"bits", numBits,
		)
	}
}

// LogFold logs a batch fold of several workers.
func (l *Logger) LogFold(ctx context.Context, workers int, novel bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fold failed",
			"workers", workers,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fold completed",
			"workers", workers,
			"novel", novel,
		)
	}
}

// LogReset logs a reset of the aggregate.
func (l *Logger) LogReset(ctx context.Context, dropped int) {
	l.InfoContext(ctx, "aggregate reset",
		"dropped_bits", dropped,
	)
}

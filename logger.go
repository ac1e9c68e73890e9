package dimred

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with dimred-specific context.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))}
}

// WithMethod adds a method name field to the logger.
func (l *Logger) WithMethod(method string) *Logger {
	return &Logger{Logger: l.Logger.With("method", method)}
}

// WithDimension adds a target dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// LogFit logs a fit operation.
func (l *Logger) LogFit(ctx context.Context, method string, rows, cols, dim int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"method", method,
			"rows", rows,
			"cols", cols,
			"dimension", dim,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "fit completed",
			"method", method,
			"rows", rows,
			"cols", cols,
			"dimension", dim,
			"elapsed", elapsed,
		)
	}
}

// LogPredict logs an out-of-sample prediction.
func (l *Logger) LogPredict(ctx context.Context, method string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed",
			"method", method,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "predict completed",
			"method", method,
			"rows", rows,
		)
	}
}

// LogSnapshot logs a model save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"name", name,
		)
	}
}

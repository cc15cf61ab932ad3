package adindex

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with adindex-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithOperation adds an operation field to the logger.
func (l *Logger) WithOperation(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, records int, elapsed time.Duration) {
	l.InfoContext(ctx, "index built",
		"records", records,
		"elapsed", elapsed,
	)
}

// LogQuery logs a lookup, range or filter operation.
func (l *Logger) LogQuery(ctx context.Context, op string, matches int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"op", op,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"op", op,
		"matches", matches,
		"elapsed", elapsed,
	)
}

// LogParallel logs a parallel filter call.
func (l *Logger) LogParallel(ctx context.Context, mode string, workers, matches int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "parallel filter failed",
			"mode", mode,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "parallel filter completed",
		"mode", mode,
		"workers", workers,
		"matches", matches,
		"elapsed", elapsed,
	)
}

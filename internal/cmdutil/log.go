// internal/cmdutil/log.go
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"porthodom/internal/pipeline"
)

// Logger wraps slog.Logger with porthodom-specific helpers so that every
// command logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger writes text records to dst. quiet keeps warnings and errors only;
// verbose enables debug records.
func NewLogger(dst io.Writer, quiet, verbose bool) *Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(dst, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, a ...any) {
	l.Warn(fmt.Sprintf(format, a...))
}

// LogLoad logs one loaded input.
func (l *Logger) LogLoad(ctx context.Context, kind, path string, items int) {
	l.InfoContext(ctx, "input loaded",
		"kind", kind,
		"path", path,
		"items", items,
	)
}

// LogRun logs the comparison summary.
func (l *Logger) LogRun(ctx context.Context, method string, st pipeline.Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "comparison failed",
			"method", method,
			"compared", st.Compared,
			"emitted", st.Emitted,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "comparison completed",
		"method", method,
		"compared", st.Compared,
		"skipped", st.Skipped,
		"filtered", st.Filtered,
		"emitted", st.Emitted,
	)
}

package kotodict

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kotodict-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSource adds a source file field to the logger.
func (l *Logger) WithSource(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", path),
	}
}

// WithEntries adds an entry count field to the logger.
func (l *Logger) WithEntries(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("entries", n),
	}
}

// LogPart logs one completed section of the output artifact.
func (l *Logger) LogPart(name string, size int64, elapsed time.Duration) {
	l.Debug("part written",
		"part", name,
		"bytes", size,
		"elapsed", elapsed,
	)
}

// LogIngest logs the outcome of reading one lexicon source.
func (l *Logger) LogIngest(path string, rows int, err error) {
	if err != nil {
		l.Error("lexicon ingest failed",
			"source", path,
			"rows", rows,
			"error", err,
		)
	} else {
		l.Info("lexicon ingested",
			"source", path,
			"rows", rows,
		)
	}
}

// LogBuild logs the outcome of a full compilation.
func (l *Logger) LogBuild(output string, entries int, size int64, err error) {
	if err != nil {
		l.Error("dictionary build failed",
			"output", output,
			"error", err,
		)
	} else {
		l.Info("dictionary built",
			"output", output,
			"entries", entries,
			"bytes", size,
		)
	}
}

// Package logging provides structured logging for symbolmutator's CLI
// and directory driver, built on the standard library's slog package.
//
// A zero-value Config produces a logger writing Info+ messages to
// stderr in text format; set JSON for machine-parseable output when
// running under a supervisor that collects structured logs.
package logging

import (
	"log/slog"
	"os"
)

// Level is the minimum severity a Logger will emit.
type Level int

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger.
type Config struct {
	// Level sets the minimum emitted severity. Default: LevelInfo.
	Level Level

	// Service identifies the component generating logs, attached to
	// every entry as the "service" attribute.
	Service string

	// JSON selects JSON output instead of human-readable text.
	JSON bool

	// RunID, if set, is attached to every entry emitted by this
	// Logger — the directory driver uses this to tag every log line
	// of one mutate_directory invocation with its run's correlation
	// ID.
	RunID string
}

// Logger wraps slog.Logger with symbolmutator's fixed attribute set.
type Logger struct {
	inner *slog.Logger
}

// New constructs a Logger per cfg, writing to stderr.
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	if cfg.RunID != "" {
		logger = logger.With("run_id", cfg.RunID)
	}
	return &Logger{inner: logger}
}

// Default returns a Logger with Info level, stderr, text format.
func Default() *Logger {
	return New(Config{})
}

// WithRunID returns a derived Logger tagging every entry with runID,
// without mutating the receiver.
func (l *Logger) WithRunID(runID string) *Logger {
	return &Logger{inner: l.inner.With("run_id", runID)}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

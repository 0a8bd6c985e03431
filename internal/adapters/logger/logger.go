// Package logger implements ports.Logger on log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Options selects the log format and verbosity.
type Options struct {
	// JSON switches from the coloured terminal format to slog's JSON handler.
	JSON bool
	// Verbose lowers the threshold from warnings to informational messages.
	Verbose bool
}

// Logger implements ports.Logger.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	output io.Writer
	opts   Options
}

// New creates a Logger writing to stderr.
func New(opts Options) *Logger {
	l := &Logger{output: os.Stderr, opts: opts}
	l.rebuild()
	return l
}

// SetOutput redirects the log output. A nil writer means stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// Configure replaces the format and verbosity, keeping the output.
func (l *Logger) Configure(opts Options) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.opts = opts
	l.rebuild()
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	level := slog.LevelWarn
	if l.opts.Verbose {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if l.opts.JSON {
		handler = slog.NewJSONHandler(l.output, handlerOpts)
	} else {
		handler = NewPrettyHandler(l.output, handlerOpts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain. Nil errors are ignored.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.opts.JSON {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

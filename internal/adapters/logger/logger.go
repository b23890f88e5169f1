// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/talon-mods/talon/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing human-readable output to stderr.
func New() *Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, slog.LevelInfo)),
	}
}

// NewWithLevel creates a Logger with an explicit minimum level.
func NewWithLevel(level slog.Level) *Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, level)),
	}
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// SetOutput updates the logger's output destination. Replacing the logger
// behind a RWMutex is cheap enough for a CLI tool.
func (l *Logger) SetOutput(w io.Writer) {
	handler := newHandler(w, slog.LevelInfo)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}

var _ ports.Logger = (*Logger)(nil)

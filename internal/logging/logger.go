// Package logging wraps charmbracelet/log for razorlint. Loggers travel in
// a context; code without one falls back to the process default.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const cliPrefix = "razorlint"

//nolint:gochecknoglobals // process-wide fallback logger
var fallback atomic.Pointer[log.Logger]

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at level writing plain key=value lines
// to w, without timestamps or caller info.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive is the logger commands use for user-facing notes.
func NewInteractive() *log.Logger {
	logger := New("info")
	logger.SetPrefix(cliPrefix)
	return logger
}

// ParseLevel accepts debug, info, warn (or warning) and error in any case.
// Anything else is info.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return log.WarnLevel
	}
	switch parsed, err := log.ParseLevel(level); {
	case err != nil, parsed == log.FatalLevel:
		return log.InfoLevel
	default:
		return parsed
	}
}

// Default returns the process logger, creating an info-level one on first
// use.
func Default() *log.Logger {
	if logger := fallback.Load(); logger != nil {
		return logger
	}
	fallback.CompareAndSwap(nil, New("info"))
	return fallback.Load()
}

// SetDefault replaces the process logger.
func SetDefault(logger *log.Logger) {
	fallback.Store(logger)
}

// SetLevel changes the level of the process logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

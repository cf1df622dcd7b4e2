// Package logging wraps charmbracelet/log with the logger configuration
// refract uses on the command line.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultMu     sync.RWMutex
	defaultLogger *log.Logger
)

// New creates a logger writing to stderr at the given level.
// Valid levels: "debug", "info", "warn", "error". Anything else means info.
func New(level string) *log.Logger {
	return newLogger(os.Stderr, level, false)
}

// NewInteractive creates an info-level logger for terminal sessions. It
// prefixes messages with the program name and omits timestamps.
func NewInteractive() *log.Logger {
	logger := newLogger(os.Stderr, "info", false)
	logger.SetPrefix("refract")
	return logger
}

// NewWriter creates a logger writing to w, with timestamps when verbose.
func NewWriter(w io.Writer, level string, verbose bool) *log.Logger {
	return newLogger(w, level, verbose)
}

func newLogger(w io.Writer, level string, timestamps bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: timestamps,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level logger, creating it on first use.
func Default() *log.Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// SetLevel changes the level of the package-level logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

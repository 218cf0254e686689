// Package applog provides the process-wide diagnostic logger used outside
// the TUI (startup, config, fail-soft component errors). It does not touch
// the screen the TUI owns.
package applog

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.Mutex
	logger  = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	discard = log.NewWithOptions(io.Discard, log.Options{})
)

// SetVerbose raises or lowers the logger's level. Verbose mode is intended
// for development; the shipped TUI runs at Info.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

// Mute redirects all output to io.Discard, for use while the TUI program
// owns the terminal (anything written to stderr would corrupt the display).
func Mute(muted bool) {
	mu.Lock()
	defer mu.Unlock()
	if muted {
		logger = discard
		return
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
}

func Debug(msg string, kv ...any) { get().Debug(msg, kv...) }
func Info(msg string, kv ...any)  { get().Info(msg, kv...) }
func Warn(msg string, kv ...any)  { get().Warn(msg, kv...) }
func Error(msg string, kv ...any) { get().Error(msg, kv...) }

func get() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

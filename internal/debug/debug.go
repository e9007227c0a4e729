// Package debug is the process-wide diagnostic switch. Output goes to
// stderr through log/slog and is silent unless Enabled is set.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	Enabled = false

	level  = new(slog.LevelVar)
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	level.Set(slog.LevelWarn)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Enable turns debug output on or off.
func Enable(on bool) {
	Enabled = on
	if on {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the shared logger.
func Logger() *slog.Logger { return logger }

// Log records msg with structured attributes at debug level.
func Log(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Warn records msg at warn level; it is shown even without --debug.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func Printf(format string, args ...any) {
	if Enabled {
		logger.Debug(fmt.Sprintf(format, args...))
	}
}

func Println(args ...any) {
	if Enabled {
		logger.Debug(fmt.Sprint(args...))
	}
}

// ABOUTME: Leveled diagnostic logging for verbose mode, built on slog levels
// ABOUTME: Writes to stderr so messages scroll above the pinned progress bar

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var level atomic.Int64

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log output. Defaults to os.Stderr; tests pass a
// buffer. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func emit(tag, format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, tag+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if slog.Level(level.Load()) > LevelDebug {
		return
	}
	emit("[DEBUG] ", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if slog.Level(level.Load()) > LevelInfo {
		return
	}
	emit("[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if slog.Level(level.Load()) > LevelWarn {
		return
	}
	emit("[WARN] ", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("[ERROR] ", format, args...)
}

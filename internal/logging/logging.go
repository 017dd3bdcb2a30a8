// Package logging provides a leveled logger backed by charm log.
package logging

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) charm() charmlog.Level {
	switch l {
	case LevelDebug:
		return charmlog.DebugLevel
	case LevelInfo:
		return charmlog.InfoLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelError:
		return charmlog.ErrorLevel
	default:
		// Above every level charm knows about.
		return charmlog.FatalLevel + 1
	}
}

// ParseLevel parses a log level string. Unknown values map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Logger is a leveled logger. Safe for concurrent use.
type Logger struct {
	charm *charmlog.Logger
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{charm: charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level.charm(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.charm.SetOutput(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.charm.SetLevel(level.charm())
}

// SetJSON switches between JSON and text output.
func (l *Logger) SetJSON(on bool) {
	if on {
		l.charm.SetFormatter(charmlog.JSONFormatter)
		return
	}
	l.charm.SetFormatter(charmlog.TextFormatter)
}

// With returns a child logger that adds keyvals to every entry.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{charm: l.charm.With(keyvals...)}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.charm.Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.charm.Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.charm.Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.charm.Errorf(format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := New(LevelError + 1)
	l.SetOutput(io.Discard)
	return l
}

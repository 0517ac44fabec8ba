// Package logging wraps log/slog with the level names used in config files and
// flags, plus component scoping for the diagnostic stream on stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is a logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the config-file name of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "warn"
	}
}

// ToSlogLevel converts the level to its slog equivalent.
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelInfo:
		return slog.LevelInfo
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// ParseLevel maps a level name to a Level. Unknown names fall back to warn.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelWarn
	}
}

// Logger is a slog.Logger with component and tool scoping.
type Logger struct {
	*slog.Logger
}

// New creates a text logger writing to stderr.
func New(level Level) *Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a text logger writing to w.
func NewWithWriter(w io.Writer, level Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.ToSlogLevel()})
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard, LevelError)
}

// WithComponent returns a logger tagged with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// WithTool returns a logger tagged with the tool being migrated or invoked.
func (l *Logger) WithTool(tool string) *Logger {
	return &Logger{Logger: l.Logger.With("tool", tool)}
}

var defaultLogger = New(LevelWarn)

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Package logger builds the structured loggers used across quillpad.
//
// Loggers are log/slog loggers. When a log path is configured, records are
// written as JSON to a rotating file; otherwise they go to stderr as text.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config configures a logger.
type Config struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Path is the log file. Empty logs to stderr.
	Path string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
	// Stderr also copies records to stderr when Path is set.
	Stderr bool
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a slog logger plus the file it writes to, if any.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if cfg.Path == "" {
		return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, opts))}
	}

	_ = os.MkdirAll(filepath.Dir(cfg.Path), 0755)
	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    positive(cfg.MaxSizeMB, 10),
		MaxBackups: positive(cfg.MaxBackups, 3),
		MaxAge:     7, // days
		Compress:   true,
	}

	var w io.Writer = file
	if cfg.Stderr {
		w = io.MultiWriter(file, os.Stderr)
	}
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, opts)),
		file:   file,
	}
}

// NewWriter creates a text logger on w. Used by tests and the CLI.
func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))}
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Or returns l, or slog.Default() when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// WithComponent tags l with a component attribute.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return Or(l).With("component", component)
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

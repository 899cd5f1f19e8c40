package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Config is the full set of quillpad settings.
type Config struct {
	Editor   EditorConfig   `toml:"editor" yaml:"editor"`
	Style    StyleConfig    `toml:"style" yaml:"style"`
	Recovery RecoveryConfig `toml:"recovery" yaml:"recovery"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// EditorConfig controls the editing engine.
type EditorConfig struct {
	// DebounceMS is the undo checkpoint window in milliseconds.
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms"`
	// MaxUndoEntries caps the undo stack.
	MaxUndoEntries int `toml:"max_undo_entries" yaml:"max_undo_entries"`
	// LineEnding is how loaded text is normalized: "preserve", "lf",
	// "crlf" or "auto" (the most common ending in each file).
	LineEnding string `toml:"line_ending" yaml:"line_ending"`
}

// StyleConfig is the ambient style of new documents.
type StyleConfig struct {
	FontFamily string  `toml:"font_family" yaml:"font_family"`
	FontSize   float64 `toml:"font_size" yaml:"font_size"`
	FontColor  string  `toml:"font_color" yaml:"font_color"`
}

// RecoveryConfig controls crash-recovery snapshots.
type RecoveryConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Path is the recovery database. Empty uses DefaultRecoveryPath.
	Path            string `toml:"path" yaml:"path"`
	IntervalSeconds int    `toml:"interval_seconds" yaml:"interval_seconds"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`
	Path       string `toml:"path" yaml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			DebounceMS:     500,
			MaxUndoEntries: 1000,
			LineEnding:     LineEndingPreserve,
		},
		Style: StyleConfig{
			FontFamily: "Arial",
			FontSize:   16,
			FontColor:  "#000000",
		},
		Recovery: RecoveryConfig{
			Enabled:         true,
			IntervalSeconds: 30,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Debounce returns the checkpoint window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Editor.DebounceMS) * time.Millisecond
}

// RecoveryInterval returns the recovery tick as a duration.
func (c *Config) RecoveryInterval() time.Duration {
	return time.Duration(c.Recovery.IntervalSeconds) * time.Second
}

// RecoveryPath returns the configured recovery database path or the default.
func (c *Config) RecoveryPath() string {
	if c.Recovery.Path != "" {
		return c.Recovery.Path
	}
	return DefaultRecoveryPath()
}

// Dir returns the per-user quillpad config directory.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "quillpad")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultRecoveryPath returns the default recovery database location.
func DefaultRecoveryPath() string {
	return filepath.Join(Dir(), "recovery.db")
}

// Line ending settings.
const (
	LineEndingPreserve = "preserve"
	LineEndingLF       = "lf"
	LineEndingCRLF     = "crlf"
	LineEndingAuto     = "auto"
)

var validLineEndings = map[string]bool{
	LineEndingPreserve: true,
	LineEndingLF:       true,
	LineEndingCRLF:     true,
	LineEndingAuto:     true,
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks settings for values the rest of the program cannot use.
// It returns the first failure as a *ValidationError.
func (c *Config) Validate() error {
	switch {
	case c.Editor.DebounceMS < 0:
		return invalid("editor.debounce_ms", c.Editor.DebounceMS, "must not be negative")
	case c.Editor.MaxUndoEntries < 0:
		return invalid("editor.max_undo_entries", c.Editor.MaxUndoEntries, "must not be negative")
	case !validLineEndings[c.Editor.LineEnding]:
		return invalid("editor.line_ending", c.Editor.LineEnding, "must be preserve, lf, crlf or auto")
	case c.Style.FontFamily == "":
		return invalid("style.font_family", c.Style.FontFamily, "must not be empty")
	case c.Style.FontSize <= 0 || c.Style.FontSize > 400:
		return invalid("style.font_size", c.Style.FontSize, "must be in (0, 400]")
	case !hexColorRe.MatchString(c.Style.FontColor):
		return invalid("style.font_color", c.Style.FontColor, "must be #rgb or #rrggbb")
	case c.Recovery.Enabled && c.Recovery.IntervalSeconds <= 0:
		return invalid("recovery.interval_seconds", c.Recovery.IntervalSeconds, "must be positive")
	case !validLevels[c.Log.Level]:
		return invalid("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	return nil
}

func invalid(path string, value any, msg string) error {
	return &ValidationError{Path: path, Value: value, Message: msg}
}

// String returns a short summary for logging.
func (c *Config) String() string {
	return fmt.Sprintf("debounce=%dms undo=%d style=%s/%g/%s recovery=%t",
		c.Editor.DebounceMS, c.Editor.MaxUndoEntries,
		c.Style.FontFamily, c.Style.FontSize, c.Style.FontColor, c.Recovery.Enabled)
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("Debounce() = %v, want 500ms", cfg.Debounce())
	}
	if cfg.RecoveryInterval() != 30*time.Second {
		t.Errorf("RecoveryInterval() = %v, want 30s", cfg.RecoveryInterval())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want 500", cfg.Editor.DebounceMS)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[editor]
debounce_ms = 250
line_ending = "lf"

[style]
font_family = "Georgia"
font_color = "#336699"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.DebounceMS != 250 {
		t.Errorf("DebounceMS = %d, want 250", cfg.Editor.DebounceMS)
	}
	if cfg.Editor.LineEnding != LineEndingLF {
		t.Errorf("LineEnding = %q, want lf", cfg.Editor.LineEnding)
	}
	if cfg.Style.FontFamily != "Georgia" || cfg.Style.FontColor != "#336699" {
		t.Errorf("Style = %+v", cfg.Style)
	}
	// Not in the file, so the default survives.
	if cfg.Style.FontSize != 16 {
		t.Errorf("FontSize = %v, want 16", cfg.Style.FontSize)
	}
	if cfg.Editor.MaxUndoEntries != 1000 {
		t.Errorf("MaxUndoEntries = %d, want 1000", cfg.Editor.MaxUndoEntries)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "style:\n  font_size: 20\nrecovery:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style.FontSize != 20 {
		t.Errorf("FontSize = %v, want 20", cfg.Style.FontSize)
	}
	if cfg.Recovery.Enabled {
		t.Error("Recovery.Enabled = true, want false")
	}
	if cfg.Style.FontFamily != "Arial" {
		t.Errorf("FontFamily = %q, want Arial", cfg.Style.FontFamily)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[editor\ndebounce_ms = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
	if perr.Line < 1 {
		t.Errorf("ParseError.Line = %d, want a position", perr.Line)
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("settings.ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Style.FontFamily = "Courier New"
			cfg.Editor.MaxUndoEntries = 42

			if err := cfg.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if *got != *cfg {
				t.Errorf("got %+v, want %+v", got, cfg)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("QUILLPAD_FONT_SIZE", "18.5")
	t.Setenv("QUILLPAD_DEBOUNCE_MS", "100")
	t.Setenv("QUILLPAD_RECOVERY_ENABLED", "off")
	t.Setenv("QUILLPAD_LOG_LEVEL", "debug")
	t.Setenv("QUILLPAD_LINE_ENDING", "crlf")

	cfg := Default()
	if err := cfg.ApplyEnv(EnvPrefix); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Style.FontSize != 18.5 {
		t.Errorf("FontSize = %v, want 18.5", cfg.Style.FontSize)
	}
	if cfg.Editor.DebounceMS != 100 {
		t.Errorf("DebounceMS = %d, want 100", cfg.Editor.DebounceMS)
	}
	if cfg.Recovery.Enabled {
		t.Error("Recovery.Enabled = true, want false")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Editor.LineEnding != LineEndingCRLF {
		t.Errorf("LineEnding = %q, want crlf", cfg.Editor.LineEnding)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("QUILLPAD_MAX_UNDO_ENTRIES", "lots")

	if err := Default().ApplyEnv(EnvPrefix); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestLoadAllValidates(t *testing.T) {
	t.Setenv("QUILLPAD_FONT_COLOR", "red")

	_, err := LoadAll("")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if verr.Path != "style.font_color" {
		t.Errorf("Path = %q, want style.font_color", verr.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"negative debounce", func(c *Config) { c.Editor.DebounceMS = -1 }, "editor.debounce_ms"},
		{"empty font", func(c *Config) { c.Style.FontFamily = "" }, "style.font_family"},
		{"zero size", func(c *Config) { c.Style.FontSize = 0 }, "style.font_size"},
		{"bad colour", func(c *Config) { c.Style.FontColor = "#12" }, "style.font_color"},
		{"zero interval", func(c *Config) { c.Recovery.IntervalSeconds = 0 }, "recovery.interval_seconds"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad line ending", func(c *Config) { c.Editor.LineEnding = "cr" }, "editor.line_ending"},
		{"empty line ending", func(c *Config) { c.Editor.LineEnding = "" }, "editor.line_ending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			var verr *ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}

	cfg := Default()
	cfg.Recovery.Enabled = false
	cfg.Recovery.IntervalSeconds = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled recovery with zero interval: %v", err)
	}
}

func TestRecoveryPath(t *testing.T) {
	cfg := Default()
	if cfg.RecoveryPath() != DefaultRecoveryPath() {
		t.Errorf("RecoveryPath() = %q, want default", cfg.RecoveryPath())
	}
	cfg.Recovery.Path = "/tmp/r.db"
	if cfg.RecoveryPath() != "/tmp/r.db" {
		t.Errorf("RecoveryPath() = %q, want /tmp/r.db", cfg.RecoveryPath())
	}
}

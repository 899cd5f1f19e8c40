package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWriterFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "doc", "a.rtf")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "doc=a.rtf") {
		t.Errorf("got %q, want warn record with attribute", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(NewWriter(&buf, "info").Logger, "recovery")
	l.Info("saved")

	if !strings.Contains(buf.String(), "component=recovery") {
		t.Errorf("got %q, want component attribute", buf.String())
	}
}

func TestOrDefault(t *testing.T) {
	if Or(nil) != slog.Default() {
		t.Error("Or(nil) should return slog.Default()")
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard logger should not enable error records")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quillpad.log")

	l := New(Config{Level: "debug", Path: path})
	l.Debug("opened", "path", "notes.rtf")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if rec["msg"] != "opened" || rec["path"] != "notes.rtf" {
		t.Errorf("got %v, want msg=opened path=notes.rtf", rec)
	}
}

func TestCloseNil(t *testing.T) {
	var l *Logger
	if err := l.Close(); err != nil {
		t.Errorf("nil Close = %v", err)
	}
	if err := New(DefaultConfig()).Close(); err != nil {
		t.Errorf("stderr Close = %v", err)
	}
}

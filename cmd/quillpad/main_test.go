package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "note.txt")
	dst := filepath.Join(dir, "note.rtf")
	if err := os.WriteFile(src, []byte("Hi {there}\nbye"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "", "encode", src, "--size", "20", "--color", "#ff0000", "-o", dst); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `\fs30`) || !strings.Contains(string(data), `\red255\green0\blue0`) {
		t.Errorf("unexpected document %q", data)
	}

	out, err := execute(t, "", "strip", dst)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hi {there}\nbye" {
		t.Errorf("got %q, want %q", out, "Hi {there}\nbye")
	}

	out, err = execute(t, "", "decode", dst)
	if err != nil {
		t.Fatal(err)
	}
	want := "[size=20][color=#ff0000]Hi {there}\nbye[/color][/size]"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestStripStdin(t *testing.T) {
	out, err := execute(t, `{\rtf1\ansi \b bold\b0 text}`, "strip", "-")
	if err != nil {
		t.Fatal(err)
	}
	if out != "boldtext" {
		t.Errorf("got %q, want %q", out, "boldtext")
	}
}

func TestEncodeStdout(t *testing.T) {
	out, err := execute(t, "a\\b", "encode", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, `{\rtf1\ansi\deff0`) || !strings.Contains(out, `a\\b`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := execute(t, "", "decode", filepath.Join(t.TempDir(), "nope.rtf")); err == nil {
		t.Error("expected an error")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "quillpad dev") {
		t.Errorf("got %q", out)
	}
}

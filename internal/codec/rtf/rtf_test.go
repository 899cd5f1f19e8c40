package rtf

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "styled paragraph",
			doc:  `{\rtf1\ansi{\fonttbl{\f0 Arial;}}{\colortbl;\red255\green0\blue0;}\f0\fs28\cf1 Hi\b bold\b0 end\par}`,
			want: "[size=19][color=#ff0000]Hi**bold**end\n[/color][/size]",
		},
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"toggles", `{\rtf1 \i a\i0 \ul b\ulnone \strike c\strike0}`, "*a*__b__~~c~~"},
		{"underline zero param", `{\ul a\ul0 b}`, "__a__b"},
		{"redundant toggles", `{\b a\b b\b0\b0 c}`, "**ab**c"},
		{"overlapping close reopens", `{\b a\i b\b0 c\i0}`, "**a*b***c*"},
		{"close below two open markers", `{\b a\i b\ul c\b0 d}`, "**a*b__c***__d__*"},
		{"group end closes all", `{\b a}b`, "**a**b"},
		{"unterminated", `{\b a`, "**a**"},
		{"literal escapes", `{a\\b\{c\}}`, `a\b{c}`},
		{"tab and line", `{a\tab b\line c}`, "a\tb\nc"},
		{"backslash newline", "{a\\\nb}", "a\nb"},
		{"control symbols", `{a\~b\-c\_d}`, "a\u00a0bc-d"},
		{"unknown words ignored", `{\foo12 a\bar b}`, "ab"},
		{"lone trailing backslash", `a\`, "a"},
		{"destinations skipped", `{\rtf1{\*\generator Foo;}{\info{\title T}}{\stylesheet{\s0 Normal;}}Body}`, "Body"},
		{"destination with escaped brace", `{{\*\x a\}b}c}`, "c"},
		{"ignorable residue", `{a\*\foo bar;b}`, "ab"},
		{"hex escape", `{caf\'e9}`, "café"},
		{"hex escape windows-1252", `{\'93q\'94}`, "“q”"},
		{"unicode with fallback", `{\u233?t}`, "ét"},
		{"unicode uc0", `{\uc0\u233 t}`, "ét"},
		{"unicode uc2", `{\uc2\u233 ab c}`, "é c"},
		{"unicode hex fallback", `{\u233\'e9x}`, "éx"},
		{"surrogate pair", `{\u-10179?\u-8704?}`, "😀"},
		{"dangling surrogate", `{\u-10179?x}`, "\uFFFDx"},
		{"size change", `{\fs24 a\fs24 b\fs28 c}`, "[size=16]ab[/size][size=19]c[/size]"},
		{"size default param", `{\fs x}`, "[size=16]x[/size]"},
		{"size floor", `{\fs2 x}`, "[size=8]x[/size]"},
		{"colour index clamped", `{\rtf1{\colortbl;\red0\green128\blue0;}\cf9 x}`, "[color=#008000]x[/color]"},
		{"colour zero is black", `{\rtf1{\colortbl;\red0\green128\blue0;}\cf0 x}`, "[color=#000000]x[/color]"},
		{"colour without table", `{\cf3 x}`, "[color=#000000]x[/color]"},
		{"colour table without auto entry", `{\rtf1{\colortbl\red1\green2\blue3;}\cf0 a\cf1 b}`, "[color=#000000]a[/color][color=#010203]b[/color]"},
		{"same colour no-op", `{\rtf1{\colortbl;\red0\green128\blue0;}\cf1 a\cf1 b}`, "[color=#008000]ab[/color]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.doc); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.doc, got, tt.want)
			}
		})
	}
}

func TestDecodeColourReopensInnerSize(t *testing.T) {
	doc := `{\rtf1{\colortbl;\red255\green0\blue0;\red0\green0\blue255;}\cf1\fs24 a\cf2 b}`
	want := "[color=#ff0000][size=16]a[/color][size=16][color=#0000ff]b[/color][/size]"
	if got := Decode(doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncode(t *testing.T) {
	got := Encode("line1\nline2", Style{FontFamily: "Arial", FontSize: 16, FontColor: "#ff0000"})

	for _, want := range []string{`\fs24`, `\red255\green0\blue0`, `line1\par line2`} {
		if !strings.Contains(got, want) {
			t.Errorf("Encode output %q missing %q", got, want)
		}
	}
	if strings.ContainsAny(got, "\n") {
		t.Errorf("Encode output contains a raw newline: %q", got)
	}
}

func TestEncodeExact(t *testing.T) {
	want := `{\rtf1\ansi\deff0{\fonttbl{\f0 Arial;}}{\colortbl;\red0\green0\blue0;}\f0\fs24\cf1 hi}`
	if got := Encode("hi", DefaultStyle()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeEscapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"specials", `a\b{c}`, `a\\b\{c\}`},
		{"tab", "a\tb", `a\tab b`},
		{"latin", "é", `\u233?`},
		{"bmp", "☕", `\u9749?`},
		{"negative", "\uFFFD", `\u-3?`},
		{"astral", "😀", `\u-10179?\u-8704?`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeText(tt.text); got != tt.want {
				t.Errorf("escapeText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEncodeDefaults(t *testing.T) {
	got := Encode("x", Style{FontColor: "not a colour"})

	for _, want := range []string{`{\f0 Arial;}`, `\fs24`, `\red0\green0\blue0`} {
		if !strings.Contains(got, want) {
			t.Errorf("Encode output %q missing %q", got, want)
		}
	}
}

func TestEncodeShortHex(t *testing.T) {
	got := Encode("x", Style{FontFamily: "Arial", FontSize: 16, FontColor: "#f00"})
	if !strings.Contains(got, `\red255\green0\blue0`) {
		t.Errorf("got %q, want red channel 255", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriterError(t *testing.T) {
	if err := EncodeWriter(failingWriter{}, "x", DefaultStyle()); err == nil {
		t.Error("expected error from failing writer")
	}
}

func TestRoundTrip(t *testing.T) {
	style := Style{FontFamily: "Georgia", FontSize: 19, FontColor: "#336699"}
	texts := []string{
		"",
		"hello",
		"line1\nline2",
		"tab\there",
		`braces {x} and \ back`,
		"café ☕ 😀",
		"\n\n",
		"trailing space ",
	}

	for _, text := range texts {
		got := StripAnnotations(Decode(Encode(text, style)))
		if got != text {
			t.Errorf("round trip of %q = %q", text, got)
		}
		if plain := DecodePlain(Encode(text, style)); plain != text {
			t.Errorf("DecodePlain of %q = %q", text, plain)
		}
	}
}

func TestDecodePlainKeepsMarkerLookalikes(t *testing.T) {
	style := DefaultStyle()
	texts := []string{
		"2*3 = 6, snake_case__x, ~~draft~~, [size=12]",
		"**not bold** and [color=#ff0000]not red[/color]",
		"[/size] *",
	}

	for _, text := range texts {
		if got := DecodePlain(Encode(text, style)); got != text {
			t.Errorf("DecodePlain(Encode(%q)) = %q", text, got)
		}
	}
}

func TestDecodePlainDropsFormatting(t *testing.T) {
	doc := `{\rtf1{\colortbl;\red255\green0\blue0;}\cf1\fs28 Hi\b bold\b0 \i a\ul b\i0 c\par}`
	if got, want := DecodePlain(doc), "Hiboldabc\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractStyleRoundTrip(t *testing.T) {
	style := Style{FontFamily: "Courier New", FontSize: 19, FontColor: "#336699"}

	if got := ExtractStyle(Encode("x", style)); got != style {
		t.Errorf("ExtractStyle = %v, want %v", got, style)
	}
}

func TestExtractStyleMissing(t *testing.T) {
	if got := ExtractStyle(`{\rtf1 plain}`); got != DefaultStyle() {
		t.Errorf("ExtractStyle = %v, want %v", got, DefaultStyle())
	}
}

func TestExtractStyleSkipsStylesheet(t *testing.T) {
	doc := `{\rtf1{\fonttbl{\f0\fswiss\fcharset0 Helvetica;}}{\stylesheet{\fs40 Heading;}}\fs20 body}`
	got := ExtractStyle(doc)

	if got.FontFamily != "Helvetica" {
		t.Errorf("FontFamily = %q, want %q", got.FontFamily, "Helvetica")
	}
	if got.FontSize != 13 {
		t.Errorf("FontSize = %v, want 13", got.FontSize)
	}
}

func TestStripAnnotations(t *testing.T) {
	in := "[size=19][color=#ff0000]Hi**bold**end\n[/color][/size]"
	if got := StripAnnotations(in); got != "Hiboldend\n" {
		t.Errorf("got %q, want %q", got, "Hiboldend\n")
	}
	in = "__u__ ~~s~~ *i* [color=#ABCdef]c[/color]"
	if got := StripAnnotations(in); got != "u s i c" {
		t.Errorf("got %q, want %q", got, "u s i c")
	}
}

func TestParseColorTable(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want ColorTable
	}{
		{"none", `{\rtf1 x}`, ColorTable{"#000000"}},
		{"default entry", `{\colortbl;\red255\green0\blue0;}`, ColorTable{"#000000", "#ff0000"}},
		{"clamped and missing", `{\colortbl;\red0\green0\blue300;\green5;}`, ColorTable{"#000000", "#0000ff", "#000500"}},
		{"no default entry", `{\colortbl\red1\green2\blue3;}`, ColorTable{"#000000", "#010203"}},
		{"empty entry after first", `{\colortbl;\red1\green2\blue3;;\red9;}`, ColorTable{"#000000", "#010203", "#000000", "#090000"}},
		{"trailing partial", `{\colortbl;\red9}`, ColorTable{"#000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseColorTable(tt.doc)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorTableResolve(t *testing.T) {
	table := ColorTable{"#000000", "#ff0000"}

	tests := []struct {
		index int
		want  string
	}{
		{0, "#000000"},
		{1, "#ff0000"},
		{7, "#ff0000"},
		{-2, "#000000"},
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.index); got != tt.want {
			t.Errorf("Resolve(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
	if got := ColorTable(nil).Resolve(3); got != "#000000" {
		t.Errorf("empty table Resolve = %q, want #000000", got)
	}
}

package rtf

import "testing"

func TestPxToHalfPoints(t *testing.T) {
	tests := []struct {
		px   float64
		want int
	}{
		{16, 24},
		{19, 28},
		{12, 18},
		{11, 16},
		{0, 24},
		{-4, 24},
	}
	for _, tt := range tests {
		if got := PxToHalfPoints(tt.px); got != tt.want {
			t.Errorf("PxToHalfPoints(%v) = %d, want %d", tt.px, got, tt.want)
		}
	}
}

func TestHalfPointsToPx(t *testing.T) {
	tests := []struct {
		hp   int
		want int
	}{
		{24, 16},
		{28, 19},
		{20, 13},
		{2, 8},
		{0, 8},
	}
	for _, tt := range tests {
		if got := HalfPointsToPx(tt.hp); got != tt.want {
			t.Errorf("HalfPointsToPx(%d) = %d, want %d", tt.hp, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
	}{
		{"#ff8000", 255, 128, 0},
		{"336699", 0x33, 0x66, 0x99},
		{"#abc", 0xaa, 0xbb, 0xcc},
		{"zzz", 0, 0, 0},
		{"", 0, 0, 0},
		{"#12345", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := ParseHexColor(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("ParseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestFormatHexColor(t *testing.T) {
	if got := FormatHexColor(255, 0, 16); got != "#ff0010" {
		t.Errorf("got %q, want %q", got, "#ff0010")
	}
}

func TestStyleWithDefaults(t *testing.T) {
	got := Style{FontSize: 20}.WithDefaults()
	want := Style{FontFamily: DefaultFontFamily, FontSize: 20, FontColor: DefaultFontColor}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

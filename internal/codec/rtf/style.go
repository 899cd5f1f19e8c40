package rtf

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default ambient style values.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSize   = 16.0
	DefaultFontColor  = "#000000"

	// MinFontSizePx is the smallest size the decoder reports.
	MinFontSizePx = 8
)

// Style is the ambient formatting of a document.
// It applies to the whole document, not to ranges of text.
type Style struct {
	FontFamily string  `json:"fontFamily" toml:"font_family" yaml:"font_family"`
	FontSize   float64 `json:"fontSize" toml:"font_size" yaml:"font_size"` // CSS pixels
	FontColor  string  `json:"fontColor" toml:"font_color" yaml:"font_color"`
}

// DefaultStyle returns Arial, 16px, black.
func DefaultStyle() Style {
	return Style{
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		FontColor:  DefaultFontColor,
	}
}

// WithDefaults fills zero fields from DefaultStyle.
func (s Style) WithDefaults() Style {
	if strings.TrimSpace(s.FontFamily) == "" {
		s.FontFamily = DefaultFontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultFontSize
	}
	if s.FontColor == "" {
		s.FontColor = DefaultFontColor
	}
	return s
}

// String returns a human-readable representation of the style.
func (s Style) String() string {
	return fmt.Sprintf("%s %gpx %s", s.FontFamily, s.FontSize, s.FontColor)
}

// PxToHalfPoints converts a CSS pixel size to RTF half-points.
// The point size is rounded first, so the result is always even.
// A non-positive size uses DefaultFontSize.
func PxToHalfPoints(px float64) int {
	if px <= 0 {
		px = DefaultFontSize
	}
	return int(math.Round(px*72/96)) * 2
}

// HalfPointsToPx converts RTF half-points to whole CSS pixels,
// never below MinFontSizePx.
func HalfPointsToPx(halfPoints int) int {
	px := int(math.Round(float64(halfPoints) / 2 * 96 / 72))
	if px < MinFontSizePx {
		px = MinFontSizePx
	}
	return px
}

// ParseHexColor returns the RGB channels of a "#rrggbb" or "#rgb" colour.
// The leading '#' is optional. Malformed input yields black.
func ParseHexColor(s string) (r, g, b uint8) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, 0, 0
	}
	return c.RGB255()
}

// FormatHexColor formats RGB channels as lowercase "#rrggbb".
func FormatHexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

package document

import (
	"path/filepath"
	"strings"
)

// Format is the on-disk representation of a document.
type Format int

const (
	// FormatPlain is unformatted text. Unknown extensions use it.
	FormatPlain Format = iota
	// FormatMarkdown is Markdown source, stored as plain text.
	FormatMarkdown
	// FormatRTF is the rich text subset handled by the rtf codec.
	FormatRTF
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatRTF:
		return "rtf"
	default:
		return "plain"
	}
}

// Extension returns the canonical file extension, with the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatRTF:
		return ".rtf"
	default:
		return ".txt"
	}
}

// IsRich reports whether the format carries style information.
func (f Format) IsRich() bool {
	return f == FormatRTF
}

// FormatFor picks the format from a path's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rtf":
		return FormatRTF
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatPlain
	}
}

// ParseFormat is the inverse of Format.String. Unknown names are plain.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "rtf":
		return FormatRTF
	case "markdown", "md":
		return FormatMarkdown
	default:
		return FormatPlain
	}
}

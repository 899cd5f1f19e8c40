package rtf

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	annotationRe = regexp.MustCompile(`\[size=\d+\]|\[/size\]|\[color=#[0-9a-fA-F]{6}\]|\[/color\]|\*\*|\*|__|~~`)
	fontEntryRe  = regexp.MustCompile(`\{\\fonttbl\s*\{([^{}]*)\}`)
	fontSizeRe   = regexp.MustCompile(`\\fs(\d+)`)
	colorIndexRe = regexp.MustCompile(`\\cf(\d+)`)
)

// StripAnnotations removes the markers and pseudo-tags Decode writes,
// leaving plain text.
func StripAnnotations(s string) string {
	return annotationRe.ReplaceAllString(s, "")
}

// ExtractStyle reads the ambient style of a document: the first font table
// entry, and the first font size and colour used in the body. Anything
// missing comes from DefaultStyle.
func ExtractStyle(doc string) Style {
	style := DefaultStyle()

	if m := fontEntryRe.FindStringSubmatch(doc); m != nil {
		name := strings.TrimSpace(strings.TrimSuffix(plainText(m[1]), ";"))
		if name != "" {
			style.FontFamily = name
		}
	}

	body := stripDestinations(doc)
	if m := fontSizeRe.FindStringSubmatch(body); m != nil {
		if hp, err := strconv.Atoi(m[1]); err == nil {
			style.FontSize = float64(HalfPointsToPx(hp))
		}
	}
	if m := colorIndexRe.FindStringSubmatch(body); m != nil {
		if idx, err := strconv.Atoi(m[1]); err == nil {
			style.FontColor = ParseColorTable(doc).Resolve(idx)
		}
	}
	return style
}

// stripDestinations removes destination groups so later searches only see
// body control words.
func stripDestinations(doc string) string {
	var sb strings.Builder
	sb.Grow(len(doc))
	for i := 0; i < len(doc); {
		switch {
		case doc[i] == '\\' && i+1 < len(doc):
			sb.WriteString(doc[i : i+2])
			i += 2
		case doc[i] == '{' && isDestination(doc, i):
			i = skipGroup(doc, i)
		default:
			sb.WriteByte(doc[i])
			i++
		}
	}
	return sb.String()
}

// plainText drops control words from a group body and unescapes literal
// backslashes and braces.
func plainText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if isLetter(s[i+1]) {
			_, _, _, i = scanControlWord(s, i+1)
			continue
		}
		sb.WriteByte(s[i+1])
		i += 2
	}
	return sb.String()
}

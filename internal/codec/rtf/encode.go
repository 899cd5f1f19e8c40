package rtf

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Encode renders text as an RTF document in the given ambient style.
// Encode never fails.
func Encode(text string, style Style) string {
	var sb strings.Builder
	_ = EncodeWriter(&sb, text, style)
	return sb.String()
}

// EncodeWriter streams the document produced by Encode to w.
func EncodeWriter(w io.Writer, text string, style Style) error {
	style = style.WithDefaults()
	r, g, b := ParseHexColor(style.FontColor)

	bw := bufio.NewWriter(w)
	bw.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0 `)
	bw.WriteString(escapeText(style.FontFamily))
	bw.WriteString(`;}}{\colortbl;\red`)
	bw.WriteString(strconv.Itoa(int(r)))
	bw.WriteString(`\green`)
	bw.WriteString(strconv.Itoa(int(g)))
	bw.WriteString(`\blue`)
	bw.WriteString(strconv.Itoa(int(b)))
	bw.WriteString(`;}\f0\fs`)
	bw.WriteString(strconv.Itoa(PxToHalfPoints(style.FontSize)))
	bw.WriteString(`\cf1 `)
	bw.WriteString(escapeText(text))
	bw.WriteString("}")
	return bw.Flush()
}

// escapeText escapes RTF special characters and converts newlines and tabs
// to control words. Characters outside ASCII become \uN? escapes so the
// document stays 7-bit clean.
func escapeText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)

	for _, r := range text {
		switch {
		case r == '\\' || r == '{' || r == '}':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\par `)
		case r == '\t':
			sb.WriteString(`\tab `)
		case r < 0x80:
			sb.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			writeUnicodeEscape(&sb, hi)
			writeUnicodeEscape(&sb, lo)
		default:
			writeUnicodeEscape(&sb, r)
		}
	}
	return sb.String()
}

// writeUnicodeEscape writes \uN? with N as a signed 16-bit value and '?' as
// the fallback character for readers without Unicode support.
func writeUnicodeEscape(sb *strings.Builder, r rune) {
	sb.WriteString(`\u`)
	sb.WriteString(strconv.Itoa(int(int16(uint16(r)))))
	sb.WriteByte('?')
}

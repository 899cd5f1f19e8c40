package document

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the character encoding a file was read with.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
	EncodingLatin1  Encoding = "iso-8859-1"
)

// BOM (Byte Order Mark) constants
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding checks for BOM markers first, then validates UTF-8.
// Falls back to Latin-1 which accepts all byte sequences.
func DetectEncoding(content []byte) Encoding {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(content, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(content):
		return EncodingUTF8
	default:
		return EncodingLatin1
	}
}

// DecodeText converts raw file content to a UTF-8 string.
func DecodeText(content []byte) (string, Encoding) {
	enc := DetectEncoding(content)

	switch enc {
	case EncodingUTF8BOM:
		return string(content[len(bomUTF8):]), enc
	case EncodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian), enc
	case EncodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian), enc
	case EncodingLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err != nil {
			return string(content), enc
		}
		return string(out), enc
	default:
		return string(content), enc
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}

// IsBinary attempts to detect if content is binary (not text).
// Uses heuristics: presence of null bytes, high ratio of non-printable characters.
// UTF-16 content must be recognised before calling IsBinary.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	// Check first 8KB at most
	sample := content[:min(len(content), 8192)]

	// Null bytes are a strong indicator of binary
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			nonText++
		}
	}

	// If more than 10% are non-text, consider it binary
	return float64(nonText)/float64(len(sample)) > 0.1
}

package rtf

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Markers written into decoded text.
const (
	markerBold      = "**"
	markerItalic    = "*"
	markerUnderline = "__"
	markerStrike    = "~~"
)

const (
	defaultHalfPoints = 24
	defaultUCSkip     = 1
	maxParamDigits    = 10
)

// destinations are group keywords whose content is never body text.
var destinations = map[string]bool{
	"fonttbl":            true,
	"colortbl":           true,
	"stylesheet":         true,
	"info":               true,
	"pict":               true,
	"listtable":          true,
	"listoverridetable":  true,
	"rsidtbl":            true,
	"generator":          true,
	"themedata":          true,
	"colorschememapping": true,
	"latentstyles":       true,
	"datastore":          true,
	"xmlnstbl":           true,
	"header":             true,
	"footer":             true,
	"filetbl":            true,
	"revtbl":             true,
	"object":             true,
}

// Decode converts an RTF document to annotated text.
//
// Bold, italic, underline and strikethrough runs are wrapped in "**", "*",
// "__" and "~~". Size and colour changes open "[size=N]" and
// "[color=#rrggbb]" tags closed by "[/size]" and "[/color]". Every group end
// closes all open markers, and so does the end of input.
//
// Decode never fails. Malformed input degrades to best-effort text.
func Decode(doc string) string {
	d := newDecoder(doc)
	d.run()
	return d.out.String()
}

// DecodePlain decodes doc to its body text without writing any markers.
// Characters that look like markers in the body are kept as they are.
func DecodePlain(doc string) string {
	d := newDecoder(doc)
	d.plain = true
	d.run()
	return d.out.String()
}

type decoder struct {
	src    string
	pos    int
	out    strings.Builder
	colors ColorTable

	// stack holds open markers, innermost last.
	stack []string

	bold, italic, underline, strike bool
	color                           string // "" until a \cf is seen
	size                            int    // px, 0 until a \fs is seen

	ucSkip      int
	pendingHigh rune

	// plain tracks formatting without writing markers.
	plain bool
}

func newDecoder(doc string) *decoder {
	d := &decoder{
		src:    doc,
		colors: ParseColorTable(doc),
		ucSkip: defaultUCSkip,
	}
	d.out.Grow(len(doc))
	return d
}

func (d *decoder) run() {
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case '{':
			if d.atDestination() {
				d.pos = skipGroup(d.src, d.pos)
				continue
			}
			d.pos++
		case '}':
			d.flushSurrogate()
			d.closeAll()
			d.ucSkip = defaultUCSkip
			d.pos++
		case '\\':
			d.control()
		default:
			end := strings.IndexAny(d.src[d.pos:], `{}\`)
			if end < 0 {
				end = len(d.src)
			} else {
				end += d.pos
			}
			d.emit(d.src[d.pos:end])
			d.pos = end
		}
	}
	d.flushSurrogate()
	d.closeAll()
}

// atDestination reports whether the group opening at d.pos is a
// destination group.
func (d *decoder) atDestination() bool {
	return isDestination(d.src, d.pos)
}

func isDestination(src string, pos int) bool {
	rest := src[pos+1:]
	if !strings.HasPrefix(rest, `\`) {
		return false
	}
	if strings.HasPrefix(rest, `\*`) {
		return true
	}
	word, _, _, _ := scanControlWord(rest, 1)
	return destinations[word]
}

// skipGroup returns the offset just past the group that opens at pos.
// Escaped braces do not count. An unterminated group runs to the end.
func skipGroup(src string, pos int) int {
	depth := 0
	for i := pos; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(src)
}

// scanControlWord reads a control word starting at src[start], which must
// be the first letter after the backslash. It returns the word, its
// numeric parameter and the offset after the optional space delimiter.
func scanControlWord(src string, start int) (word string, param int, hasParam bool, next int) {
	i := start
	for i < len(src) && isLetter(src[i]) {
		i++
	}
	word = src[start:i]
	if word == "" {
		return "", 0, false, start
	}

	numStart := i
	if i < len(src) && src[i] == '-' && i+1 < len(src) && isDigit(src[i+1]) {
		i++
	}
	digits := i
	for i < len(src) && isDigit(src[i]) && i-digits < maxParamDigits {
		i++
	}
	if i > digits {
		if n, err := strconv.Atoi(src[numStart:i]); err == nil {
			param, hasParam = n, true
		}
	} else {
		i = numStart
	}

	if i < len(src) && src[i] == ' ' {
		i++
	}
	return word, param, hasParam, i
}

func (d *decoder) control() {
	if d.pos+1 >= len(d.src) {
		// Lone trailing backslash.
		d.pos++
		return
	}

	next := d.src[d.pos+1]
	switch {
	case next == '\\' || next == '{' || next == '}':
		d.emit(string(next))
		d.pos += 2
	case next == '\'':
		d.hexEscape()
	case next == '~':
		d.emit("\u00a0")
		d.pos += 2
	case next == '-':
		d.pos += 2
	case next == '_':
		d.emit("-")
		d.pos += 2
	case next == '\n' || next == '\r':
		d.emit("\n")
		d.pos += 2
		if next == '\r' && d.pos < len(d.src) && d.src[d.pos] == '\n' {
			d.pos++
		}
	case next == '*':
		d.skipIgnorable()
	case isLetter(next):
		word, param, hasParam, end := scanControlWord(d.src, d.pos+1)
		d.pos = end
		d.word(word, param, hasParam)
	default:
		r, size := utf8.DecodeRuneInString(d.src[d.pos+1:])
		d.emit(string(r))
		d.pos += 1 + size
	}
}

// hexEscape decodes \'hh as a Windows-1252 byte.
func (d *decoder) hexEscape() {
	if d.pos+4 > len(d.src) {
		d.pos = len(d.src)
		return
	}
	b, err := strconv.ParseUint(d.src[d.pos+2:d.pos+4], 16, 8)
	if err != nil {
		d.pos += 2
		return
	}
	d.emit(string(charmap.Windows1252.DecodeByte(byte(b))))
	d.pos += 4
}

// skipIgnorable drops a \* marker found outside a skipped group, together
// with the control word after it and that word's text up to ';' or a brace.
func (d *decoder) skipIgnorable() {
	d.pos += 2
	if d.pos+1 >= len(d.src) || d.src[d.pos] != '\\' || !isLetter(d.src[d.pos+1]) {
		return
	}
	_, _, _, d.pos = scanControlWord(d.src, d.pos+1)
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case ';':
			d.pos++
			return
		case '{', '}':
			return
		case '\\':
			d.pos++
		}
		d.pos++
	}
}

func (d *decoder) word(word string, param int, hasParam bool) {
	on := !hasParam || param != 0

	switch word {
	case "par", "line":
		d.emit("\n")
	case "tab":
		d.emit("\t")
	case "b":
		d.toggle(&d.bold, markerBold, on)
	case "i":
		d.toggle(&d.italic, markerItalic, on)
	case "ul":
		d.toggle(&d.underline, markerUnderline, on)
	case "ulnone":
		d.toggle(&d.underline, markerUnderline, false)
	case "strike":
		d.toggle(&d.strike, markerStrike, on)
	case "fs":
		hp := defaultHalfPoints
		if hasParam {
			hp = param
		}
		d.setSize(HalfPointsToPx(hp))
	case "cf":
		d.setColor(d.colors.Resolve(param))
	case "u":
		if hasParam {
			d.unicode(param)
		}
	case "uc":
		if hasParam && param >= 0 {
			d.ucSkip = param
		}
	}
}

// unicode emits the code point of a \uN word and skips its fallback text.
func (d *decoder) unicode(n int) {
	if n < 0 {
		n += 65536
	}
	r := rune(n)

	switch {
	case r >= 0xD800 && r <= 0xDBFF:
		d.flushSurrogate()
		d.pendingHigh = r
	case r >= 0xDC00 && r <= 0xDFFF:
		if d.pendingHigh != 0 {
			combined := (d.pendingHigh-0xD800)<<10 + (r - 0xDC00) + 0x10000
			d.pendingHigh = 0
			d.out.WriteRune(combined)
		} else {
			d.out.WriteRune(utf8.RuneError)
		}
	default:
		d.emit(string(r))
	}

	d.skipFallback()
}

// skipFallback skips the ucSkip characters that follow a \uN word. A \'hh
// escape counts as one character. Braces and control words end the skip.
func (d *decoder) skipFallback() {
	for n := 0; n < d.ucSkip && d.pos < len(d.src); n++ {
		switch c := d.src[d.pos]; {
		case c == '{' || c == '}':
			return
		case c == '\\':
			if d.pos+1 < len(d.src) && d.src[d.pos+1] == '\'' {
				d.pos = min(d.pos+4, len(d.src))
				continue
			}
			return
		default:
			_, size := utf8.DecodeRuneInString(d.src[d.pos:])
			d.pos += size
		}
	}
}

// emit writes body text, first resolving a dangling high surrogate.
func (d *decoder) emit(s string) {
	d.flushSurrogate()
	d.out.WriteString(s)
}

func (d *decoder) flushSurrogate() {
	if d.pendingHigh != 0 {
		d.pendingHigh = 0
		d.out.WriteRune(utf8.RuneError)
	}
}

func (d *decoder) toggle(state *bool, marker string, on bool) {
	switch {
	case on && !*state:
		*state = true
		d.push(marker)
	case !on && *state:
		*state = false
		d.popByValue(marker)
	}
}

func (d *decoder) setSize(px int) {
	if px == d.size {
		return
	}
	if d.size != 0 {
		d.popByValue(sizeMarker(d.size))
	}
	d.size = px
	d.push(sizeMarker(px))
}

func (d *decoder) setColor(c string) {
	if c == d.color {
		return
	}
	if d.color != "" {
		d.popByValue(colorMarker(d.color))
	}
	d.color = c
	d.push(colorMarker(c))
}

func (d *decoder) push(marker string) {
	d.flushSurrogate()
	d.stack = append(d.stack, marker)
	d.mark(marker)
}

// popByValue removes marker from wherever it sits in the stack and writes
// its closing form. Markers opened after it are then written again and
// stay on the stack in their original order.
func (d *decoder) popByValue(marker string) {
	idx := -1
	for i := len(d.stack) - 1; i >= 0; i-- {
		if d.stack[i] == marker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	d.flushSurrogate()

	above := append([]string(nil), d.stack[idx+1:]...)
	d.stack = d.stack[:idx]
	d.mark(closingFor(marker))
	for _, m := range above {
		d.stack = append(d.stack, m)
		d.mark(m)
	}
}

// closeAll closes every open marker, innermost first, and resets the
// formatting state.
func (d *decoder) closeAll() {
	for i := len(d.stack) - 1; i >= 0; i-- {
		d.mark(closingFor(d.stack[i]))
	}
	d.stack = d.stack[:0]
	d.bold, d.italic, d.underline, d.strike = false, false, false, false
	d.color = ""
	d.size = 0
}

func (d *decoder) mark(s string) {
	if !d.plain {
		d.out.WriteString(s)
	}
}

func sizeMarker(px int) string {
	return "[size=" + strconv.Itoa(px) + "]"
}

func colorMarker(c string) string {
	return "[color=" + c + "]"
}

func closingFor(marker string) string {
	switch {
	case strings.HasPrefix(marker, "[size="):
		return "[/size]"
	case strings.HasPrefix(marker, "[color="):
		return "[/color]"
	default:
		return marker
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

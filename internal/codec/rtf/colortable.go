package rtf

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	colorTableRe     = regexp.MustCompile(`\{\\colortbl\s*([^{}]*)\}`)
	colorComponentRe = regexp.MustCompile(`\\(red|green|blue)(-?\d+)`)
)

// ColorTable is the document's colour table as "#rrggbb" strings.
// Index 0 is the default (auto) colour, which is always black.
type ColorTable []string

// ParseColorTable extracts the colour table from an RTF document.
//
// The parsed entries follow an implicit black at index 0. Each entry ends
// with ';'. A leading empty entry is the auto colour that index 0 already
// stands for, so it is not counted twice; a later empty entry is black.
// Missing components are 0 and values are clamped to [0,255]. A document
// without a colour table yields a table holding only black.
func ParseColorTable(doc string) ColorTable {
	table := ColorTable{DefaultFontColor}

	m := colorTableRe.FindStringSubmatch(doc)
	if m == nil {
		return table
	}

	entries := strings.Split(m[1], ";")
	// Text after the last ';' is not a complete entry.
	entries = entries[:len(entries)-1]
	if len(entries) > 0 && strings.TrimSpace(entries[0]) == "" {
		entries = entries[1:]
	}

	for _, entry := range entries {
		var rgb [3]int
		for _, c := range colorComponentRe.FindAllStringSubmatch(entry, -1) {
			v, err := strconv.Atoi(c[2])
			if err != nil {
				continue
			}
			switch c[1] {
			case "red":
				rgb[0] = clampByte(v)
			case "green":
				rgb[1] = clampByte(v)
			case "blue":
				rgb[2] = clampByte(v)
			}
		}
		table = append(table, FormatHexColor(uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2])))
	}
	return table
}

// Resolve returns the colour at index, clamped into the table's range.
// An empty table resolves to black.
func (t ColorTable) Resolve(index int) string {
	if len(t) == 0 {
		return DefaultFontColor
	}
	if index < 0 {
		index = 0
	}
	if index >= len(t) {
		index = len(t) - 1
	}
	return t[index]
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

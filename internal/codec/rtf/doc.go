// Package rtf converts between plain note text and a small subset of the
// Rich Text Format.
//
// Encode writes a complete document: a one-entry font table, a one-entry
// colour table and a single run of escaped text tagged with the note's
// ambient font size and colour.
//
// Decode scans any RTF input left to right and produces annotated text: plain
// text with inline pseudo-tags for the formatting it understood.
//
//	**bold**  *italic*  __underline__  ~~strike~~
//	[size=19]...[/size]  [color=#ff0000]...[/color]
//
// The decoder is deliberately forgiving. Unknown control words are skipped,
// every closing brace ends all open formatting, and whatever is still open at
// the end of input is closed. It never returns an error.
//
// Sizes: RTF measures font size in half-points. The note model uses CSS
// pixels, converted at 96px per 72pt.
package rtf

// Package buffer holds the plain text of one open note.
//
// A Buffer owns a single string. It is replaced wholesale by SetText, which is
// how the host editing surface reports changes: it only ever hands over the
// complete new value. Snapshots capture the content at a point in time and are
// what the history package stores for undo and redo.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello")
//	snap := buf.Snapshot()
//	buf.SetText("Hello, World!")
//	buf.Restore(snap) // "Hello"
//
// Lengths are counted in runes so that callers trimming trailing characters
// never split a multi-byte code point.
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Snapshot values are
// immutable and may be shared freely.
package buffer

package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/quillpad/internal/engine/buffer"
)

// CommandKind identifies the edit a Command performs.
type CommandKind uint8

const (
	// KindInsert appends text to the end of the buffer.
	KindInsert CommandKind = iota + 1
	// KindDelete removes trailing characters.
	KindDelete
)

// String returns the kind name.
func (k CommandKind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Command is one semantic edit against a buffer.
// Commands are single-use values; they keep no pre-edit state.
type Command struct {
	Kind  CommandKind
	Text  string // text to append (KindInsert)
	Count int    // characters to remove from the end (KindDelete)
}

// Insert returns a command appending text.
func Insert(text string) Command {
	return Command{Kind: KindInsert, Text: text}
}

// Delete returns a command removing count trailing characters.
// A negative count is treated as zero.
func Delete(count int) Command {
	if count < 0 {
		count = 0
	}
	return Command{Kind: KindDelete, Count: count}
}

// Apply requests a checkpoint of buf's current state from h and then
// performs the edit. h may be nil, in which case no checkpoint is taken.
func (c Command) Apply(buf *buffer.Buffer, h *History) {
	switch c.Kind {
	case KindInsert:
		if h != nil {
			h.RequestSnapshot(buf)
		}
		buf.SetText(buf.Text() + c.Text)
	case KindDelete:
		if h != nil {
			h.RequestSnapshot(buf)
		}
		buf.SetText(trimTrailing(buf.Text(), c.Count))
	}
}

// Undo delegates to the history's undo.
func (c Command) Undo(buf *buffer.Buffer, h *History) bool {
	if h == nil {
		return false
	}
	return h.Undo(buf)
}

// Description returns a human-readable description of the command.
func (c Command) Description() string {
	switch c.Kind {
	case KindInsert:
		if c.Text == "\n" {
			return "Insert newline"
		}
		if c.Text == "\t" {
			return "Insert tab"
		}
		n := utf8.RuneCountInString(c.Text)
		if n == 1 {
			return fmt.Sprintf("Type '%s'", c.Text)
		}
		if n <= 20 {
			return fmt.Sprintf("Insert %q", c.Text)
		}
		return fmt.Sprintf("Insert %d characters", n)
	case KindDelete:
		if c.Count == 1 {
			return "Backspace"
		}
		return fmt.Sprintf("Backspace %d characters", c.Count)
	default:
		return "No-op"
	}
}

// String implements fmt.Stringer.
func (c Command) String() string {
	switch c.Kind {
	case KindInsert:
		return fmt.Sprintf("Insert(%q)", c.Text)
	case KindDelete:
		return fmt.Sprintf("Delete(%d)", c.Count)
	default:
		return "Command(?)"
	}
}

// trimTrailing drops the last n runes of s, clamping at the empty string.
func trimTrailing(s string, n int) string {
	if n <= 0 {
		return s
	}
	end := len(s)
	for i := 0; i < n && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[:end]
}

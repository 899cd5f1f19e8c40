package buffer

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// LineEnding specifies the line ending style applied when text is loaded.
type LineEnding uint8

const (
	LineEndingPreserve LineEnding = iota // keep whatever the text contains
	LineEndingLF                         // Unix: \n
	LineEndingCRLF                       // Windows: \r\n
	LineEndingCR                         // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "preserve"
	}
}

// Buffer owns the current text content of one document.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	content    string
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingPreserve,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
// The content is normalized to the configured line ending.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.content = b.normalizeLineEndings(s)
	return b
}

// normalizeLineEndings converts all line endings to the buffer's preferred style.
func (b *Buffer) normalizeLineEndings(s string) string {
	return NormalizeLineEndings(s, b.lineEnding)
}

// NormalizeLineEndings converts every line ending in s to le.
// LineEndingPreserve returns s unchanged.
func NormalizeLineEndings(s string, le LineEnding) string {
	switch le {
	case LineEndingLF:
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	case LineEndingCRLF:
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
		s = strings.ReplaceAll(s, "\n", "\r\n")
	case LineEndingCR:
		s = strings.ReplaceAll(s, "\r\n", "\r")
		s = strings.ReplaceAll(s, "\n", "\r")
	}
	return s
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// SetText replaces the buffer content wholesale.
// Any string is accepted.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = s
	b.revisionID = NewRevisionID()
}

// Len returns the length of the content in runes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return utf8.RuneCountInString(b.content)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content == ""
}

// Snapshot captures the current content.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		state:      b.content,
		revisionID: b.revisionID,
		taken:      time.Now(),
	}
}

// Restore replaces the content with the snapshot's captured state.
func (b *Buffer) Restore(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = s.state
	b.revisionID = NewRevisionID()
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

package buffer

import (
	"time"
	"unicode/utf8"
)

// Snapshot is an immutable capture of buffer content at a point in time.
type Snapshot struct {
	state      string
	revisionID RevisionID
	taken      time.Time
}

// NewSnapshot creates a snapshot holding text.
// It is mostly useful in tests and when restoring recovered content.
func NewSnapshot(text string) Snapshot {
	return Snapshot{state: text, taken: time.Now()}
}

// Text returns the captured content.
func (s Snapshot) Text() string {
	return s.state
}

// Len returns the captured content length in runes.
func (s Snapshot) Len() int {
	return utf8.RuneCountInString(s.state)
}

// RevisionID returns the revision the buffer had when the snapshot was taken.
func (s Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Taken returns when the snapshot was captured.
func (s Snapshot) Taken() time.Time {
	return s.taken
}

// IsEmpty returns true if the snapshot holds no text.
func (s Snapshot) IsEmpty() bool {
	return s.state == ""
}

package tracking

import (
	"sync"

	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/engine/history"
)

// Tracker applies reconciled commands to a buffer.
type Tracker struct {
	mu      sync.Mutex
	buf     *buffer.Buffer
	history *history.History

	applied uint64
	last    []history.Command
}

// NewTracker creates a tracker for buf. hist may be nil to edit without undo.
func NewTracker(buf *buffer.Buffer, hist *history.History) *Tracker {
	return &Tracker{buf: buf, history: hist}
}

// Observe reconciles the buffer's current text with newText and applies the
// resulting commands in order. It returns the commands that were applied.
func (t *Tracker) Observe(newText string) []history.Command {
	t.mu.Lock()
	defer t.mu.Unlock()

	cmds := Reconcile(t.buf.Text(), newText)
	for _, cmd := range cmds {
		cmd.Apply(t.buf, t.history)
	}

	t.applied += uint64(len(cmds))
	if len(cmds) > 0 {
		t.last = cmds
	}
	return cmds
}

// Applied returns the number of commands applied since creation.
func (t *Tracker) Applied() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applied
}

// LastCommands returns the commands from the most recent non-empty Observe.
func (t *Tracker) LastCommands() []history.Command {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]history.Command, len(t.last))
	copy(result, t.last)
	return result
}

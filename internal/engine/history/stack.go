package history

import (
	"sync"
	"time"

	"github.com/dshills/quillpad/internal/engine/buffer"
)

// Default configuration values.
const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultMaxEntries = 1000
)

// CheckpointInfo describes an entry on the undo or redo stack.
type CheckpointInfo struct {
	Taken time.Time
	Runes int
}

// pendingCapture is a checkpoint waiting for the quiescence window to close.
type pendingCapture struct {
	snapshot buffer.Snapshot
	timer    Timer
}

// History manages undo/redo snapshot stacks for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []buffer.Snapshot
	redoStack []buffer.Snapshot

	pending *pendingCapture
	seq     uint64 // invalidates stale timer callbacks

	// Configuration
	scheduler  Scheduler
	debounce   time.Duration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(opts ...Option) *History {
	h := &History{
		scheduler:  SystemScheduler{},
		debounce:   DefaultDebounce,
		maxEntries: DefaultMaxEntries,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RequestSnapshot schedules a checkpoint of buf's current state.
//
// The first request of a burst captures the state immediately and arms the
// debounce timer. Later requests inside the window only re-arm the timer, so
// the burst yields one checkpoint holding the state before its first edit.
// The redo stack is cleared right away.
func (h *History) RequestSnapshot(buf *buffer.Buffer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil

	if h.pending == nil {
		h.pending = &pendingCapture{snapshot: buf.Snapshot()}
	} else if h.pending.timer != nil {
		h.pending.timer.Stop()
		h.pending.timer = nil
	}

	h.seq++
	if h.debounce <= 0 {
		h.commitLocked()
		return
	}

	seq := h.seq
	h.pending.timer = h.scheduler.AfterFunc(h.debounce, func() {
		h.fire(seq)
	})
}

// fire commits the pending checkpoint if seq is still current.
func (h *History) fire(seq uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending == nil || h.seq != seq {
		return
	}
	h.pending.timer = nil
	h.commitLocked()
}

// commitLocked pushes the pending snapshot onto the undo stack.
func (h *History) commitLocked() {
	if h.pending == nil {
		return
	}
	if h.pending.timer != nil {
		h.pending.timer.Stop()
	}

	h.undoStack = append(h.undoStack, h.pending.snapshot)
	h.pending = nil
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Flush commits a pending checkpoint immediately.
func (h *History) Flush() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.commitLocked()
}

// Cancel drops a pending checkpoint without committing it.
// Call it when the document closes so no timer touches a discarded buffer.
func (h *History) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelLocked()
}

func (h *History) cancelLocked() {
	h.seq++
	if h.pending != nil && h.pending.timer != nil {
		h.pending.timer.Stop()
	}
	h.pending = nil
}

// IsPending returns true while a checkpoint waits for the debounce window.
func (h *History) IsPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

// Undo restores buf to the most recent checkpoint.
// The current state moves to the redo stack. A pending checkpoint is
// committed first. Returns false when there is nothing to undo.
func (h *History) Undo(buf *buffer.Buffer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.commitLocked()

	if len(h.undoStack) == 0 {
		return false
	}

	current := buf.Snapshot()
	prev := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)

	buf.Restore(prev)
	return true
}

// Redo re-applies the most recently undone state.
// Returns false when there is nothing to redo.
func (h *History) Redo(buf *buffer.Buffer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return false
	}

	current := buf.Snapshot()
	next := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)

	buf.Restore(next)
	return true
}

// CanUndo returns true if undo is available.
// A pending checkpoint counts since Undo commits it first.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0 || h.pending != nil
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of committed undo checkpoints.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history and drops any pending checkpoint.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelLocked()
	h.undoStack = nil
	h.redoStack = nil
}

// UndoInfo returns info about committed undo checkpoints, oldest first.
func (h *History) UndoInfo() []CheckpointInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return stackInfo(h.undoStack)
}

// RedoInfo returns info about redo entries, oldest first.
func (h *History) RedoInfo() []CheckpointInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return stackInfo(h.redoStack)
}

func stackInfo(stack []buffer.Snapshot) []CheckpointInfo {
	result := make([]CheckpointInfo, len(stack))
	for i, snap := range stack {
		result[i] = CheckpointInfo{Taken: snap.Taken(), Runes: snap.Len()}
	}
	return result
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// Debounce returns the quiescence window.
func (h *History) Debounce() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.debounce
}

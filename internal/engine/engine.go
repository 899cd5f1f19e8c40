package engine

import (
	"sync"
	"time"

	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/engine/history"
	"github.com/dshills/quillpad/internal/engine/tracking"
)

// Re-export commonly used types for convenience.
type (
	// Command is an undoable edit command.
	Command = history.Command

	// Snapshot is an immutable capture of buffer content.
	Snapshot = buffer.Snapshot

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding
)

// Engine is the editing core of one document.
// It combines the buffer, snapshot history and whole-buffer change
// reconciliation behind a single thread-safe API.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	history *history.History
	tracker *tracking.Tracker

	// Configuration
	lineEnding     buffer.LineEnding
	debounce       time.Duration
	scheduler      history.Scheduler
	maxUndoEntries int
	readOnly       bool

	// State
	closed bool

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		lineEnding:     buffer.LineEndingPreserve,
		debounce:       DefaultDebounce,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewBufferFromString(e.initContent, buffer.WithLineEnding(e.lineEnding))

	histOpts := []history.Option{
		history.WithDebounce(e.debounce),
		history.WithMaxEntries(e.maxUndoEntries),
	}
	if e.scheduler != nil {
		histOpts = append(histOpts, history.WithScheduler(e.scheduler))
	}
	e.history = history.NewHistory(histOpts...)
	e.tracker = tracking.NewTracker(e.buf, e.history)

	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// LineEnding returns the style loaded text is normalized to.
func (e *Engine) LineEnding() LineEnding {
	return e.lineEnding
}

// Len returns the content length in runes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// Snapshot captures the current content.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// ============================================================================
// Write Operations
// ============================================================================

// SetText reconciles a whole-buffer value reported by the editing surface.
// It returns the commands that were applied.
func (e *Engine) SetText(text string) ([]Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritableLocked(); err != nil {
		return nil, err
	}
	return e.tracker.Observe(text), nil
}

// Apply executes commands in order against the buffer.
func (e *Engine) Apply(cmds ...Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkWritableLocked(); err != nil {
		return err
	}
	for _, cmd := range cmds {
		cmd.Apply(e.buf, e.history)
	}
	return nil
}

// Reset replaces the content without recording history and clears
// both undo and redo stacks. Used when a document is (re)loaded.
func (e *Engine) Reset(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.history.Clear()
	e.buf.SetText(buffer.NormalizeLineEndings(text, e.lineEnding))
	return nil
}

func (e *Engine) checkWritableLocked() error {
	if e.closed {
		return ErrClosed
	}
	if e.readOnly {
		return ErrReadOnly
	}
	return nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo restores the previous checkpoint. Returns false if there was nothing to undo.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.checkWritableLocked() != nil {
		return false
	}
	return e.history.Undo(e.buf)
}

// Redo re-applies the most recently undone state. Returns false if there was nothing to redo.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.checkWritableLocked() != nil {
		return false
	}
	return e.history.Redo(e.buf)
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanRedo()
}

// UndoCount returns the number of committed undo checkpoints.
func (e *Engine) UndoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.UndoCount()
}

// RedoCount returns the number of redo entries.
func (e *Engine) RedoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.RedoCount()
}

// Flush commits a pending undo checkpoint immediately.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Flush()
}

// ============================================================================
// Lifecycle
// ============================================================================

// Close cancels any pending checkpoint timer. Later writes return ErrClosed.
// Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.history.Cancel()
	e.closed = true
}

// IsClosed returns true after Close.
func (e *Engine) IsClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

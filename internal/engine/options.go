package engine

import (
	"time"

	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/engine/history"
)

// Default configuration values.
const (
	DefaultDebounce       = history.DefaultDebounce
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithLineEnding sets the line ending the initial content is normalized to.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
	}
}

// WithDebounce sets the undo checkpoint quiescence window.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		e.debounce = d
	}
}

// WithScheduler replaces the wall-clock scheduler used for checkpoints.
func WithScheduler(s history.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

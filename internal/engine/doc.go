// Package engine provides the editing core of one open note.
//
// The engine package is a facade over three sub-packages:
//
//   - buffer: the document text and immutable snapshots of it
//   - history: debounced snapshot undo/redo and the Insert/Delete commands
//   - tracking: reconciliation of whole-buffer values into commands
//
// # Basic Usage
//
// The editing surface only reports complete new values. Feed them to SetText:
//
//	e := engine.New(engine.WithContent("Hello"))
//	e.SetText("Hello, World!") // one Insert(", World!")
//	e.SetText("Hello")         // one Delete(8)
//	e.Undo()
//
// Edits arriving faster than the debounce window (500ms by default) share a
// single undo checkpoint taken before the first of them.
//
// # Testing
//
// Pass a history.ManualScheduler with WithScheduler to drive checkpoint
// timing without wall-clock sleeps:
//
//	sched := history.NewManualScheduler()
//	e := engine.New(engine.WithScheduler(sched))
//	e.SetText("typed")
//	sched.Advance(engine.DefaultDebounce)
//
// # Lifecycle
//
// Close cancels a pending checkpoint so no timer fires against a discarded
// buffer. All Engine methods are safe for concurrent use.
package engine

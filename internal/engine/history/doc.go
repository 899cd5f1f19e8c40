// Package history provides snapshot-based undo/redo for the editor engine.
//
// The host editing surface reports only whole-buffer changes, so there is no
// natural keystroke boundary to hang undo steps on. History instead keeps two
// stacks of buffer snapshots and debounces checkpoint capture: a burst of edits
// arriving within the quiescence window produces a single undo checkpoint
// holding the text as it was before the first edit of the burst.
//
// # Commands
//
// Command is a closed variant of the two edits the engine knows about:
//
//	history.Insert("text") // append text
//	history.Delete(3)      // drop the last three characters
//
// Applying a command asks the History for a checkpoint first and then mutates
// the buffer. Commands keep no pre-edit state; undo goes through History.
//
// # History Stack
//
//	h := history.NewHistory(history.WithDebounce(500 * time.Millisecond))
//	history.Insert("hello").Apply(buf, h)
//	h.Undo(buf)
//	h.Redo(buf)
//
// Any new checkpoint request clears the redo stack: history is linear.
//
// # Time
//
// Checkpoint timing goes through the Scheduler interface. SystemScheduler
// uses time.AfterFunc; tests inject a manual clock.
package history

// Package tracking turns whole-buffer change notifications into edit commands.
//
// The host editing surface only reports the complete new text after each
// change. Reconcile compares it with the previous text using a longest common
// prefix heuristic and synthesizes history commands:
//
//   - pure append: one Insert of the new suffix
//   - pure trailing truncation: one Delete of the removed count
//   - anything else: Delete of the whole old text, then Insert of the whole new text
//
// The fallback is not minimal and produces two undo checkpoints, but the
// buffer always ends up equal to the new text.
//
// A Tracker binds a buffer and a history so callers can feed it new values
// directly:
//
//	tr := tracking.NewTracker(buf, hist)
//	tr.Observe("hello")
package tracking

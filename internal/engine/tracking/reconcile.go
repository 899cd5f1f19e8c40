package tracking

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/quillpad/internal/engine/history"
)

// ChangeType categorizes how the new text relates to the old.
type ChangeType uint8

const (
	// ChangeNone means the texts are equal.
	ChangeNone ChangeType = iota
	// ChangeAppend means old is a prefix of new.
	ChangeAppend
	// ChangeTruncate means new is a prefix of old.
	ChangeTruncate
	// ChangeReplace is any other edit.
	ChangeReplace
)

// String returns a human-readable representation of the change type.
func (ct ChangeType) String() string {
	switch ct {
	case ChangeNone:
		return "none"
	case ChangeAppend:
		return "append"
	case ChangeTruncate:
		return "truncate"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Classify reports which reconciliation case applies to old -> new.
func Classify(oldText, newText string) ChangeType {
	switch {
	case oldText == newText:
		return ChangeNone
	case len(newText) >= len(oldText) && strings.HasPrefix(newText, oldText):
		return ChangeAppend
	case len(newText) < len(oldText) && strings.HasPrefix(oldText, newText):
		return ChangeTruncate
	default:
		return ChangeReplace
	}
}

// Reconcile returns the commands that turn oldText into newText.
// Applying them in order to a buffer holding oldText leaves it holding newText.
func Reconcile(oldText, newText string) []history.Command {
	switch Classify(oldText, newText) {
	case ChangeNone:
		return nil
	case ChangeAppend:
		return []history.Command{history.Insert(newText[len(oldText):])}
	case ChangeTruncate:
		removed := utf8.RuneCountInString(oldText[len(newText):])
		return []history.Command{history.Delete(removed)}
	}

	var cmds []history.Command
	if oldText != "" {
		cmds = append(cmds, history.Delete(utf8.RuneCountInString(oldText)))
	}
	if newText != "" {
		cmds = append(cmds, history.Insert(newText))
	}
	return cmds
}

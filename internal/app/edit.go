package app

import (
	"github.com/google/uuid"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/engine"
)

// Edit delivers the full new text of a document from the editing surface.
// It returns the commands the change was reconciled into.
func (a *Application) Edit(id uuid.UUID, text string) ([]engine.Command, error) {
	doc, err := a.lookup(id)
	if err != nil {
		return nil, err
	}
	return a.edit(doc, text)
}

// EditActive is Edit on the active document.
func (a *Application) EditActive(text string) ([]engine.Command, error) {
	doc, err := a.active()
	if err != nil {
		return nil, err
	}
	return a.edit(doc, text)
}

func (a *Application) edit(doc *Document, text string) ([]engine.Command, error) {
	cmds, err := doc.Engine.SetText(text)
	if err != nil {
		return nil, NewOperationError("edit", doc.Name(), err)
	}
	if len(cmds) > 0 {
		a.metrics.edits.Add(1)
	}
	return cmds, nil
}

// Undo restores the previous checkpoint of a document.
// It reports false when there was nothing to undo.
func (a *Application) Undo(id uuid.UUID) (bool, error) {
	doc, err := a.lookup(id)
	if err != nil {
		return false, err
	}
	ok := doc.Engine.Undo()
	if ok {
		a.metrics.undos.Add(1)
	}
	return ok, nil
}

// Redo reapplies the most recently undone checkpoint of a document.
// It reports false when there was nothing to redo.
func (a *Application) Redo(id uuid.UUID) (bool, error) {
	doc, err := a.lookup(id)
	if err != nil {
		return false, err
	}
	ok := doc.Engine.Redo()
	if ok {
		a.metrics.redos.Add(1)
	}
	return ok, nil
}

// UndoActive is Undo on the active document.
func (a *Application) UndoActive() (bool, error) {
	doc, err := a.active()
	if err != nil {
		return false, err
	}
	return a.Undo(doc.ID)
}

// RedoActive is Redo on the active document.
func (a *Application) RedoActive() (bool, error) {
	doc, err := a.active()
	if err != nil {
		return false, err
	}
	return a.Redo(doc.ID)
}

// SetStyle changes the ambient style of a document.
func (a *Application) SetStyle(id uuid.UUID, style rtf.Style) error {
	doc, err := a.lookup(id)
	if err != nil {
		return err
	}
	doc.SetStyle(style)
	return nil
}

package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/quillpad/internal/engine"
)

// Open asks the picker for a file and opens it.
// A dismissed dialog returns ErrCanceled and opens nothing.
func (a *Application) Open(ctx context.Context) (*Document, error) {
	if a.picker == nil {
		return nil, ErrNoPicker
	}
	path, err := a.picker.OpenPath(ctx)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			return nil, ErrCanceled
		}
		return nil, NewOperationError("open", "", err)
	}
	return a.OpenPath(ctx, path)
}

// OpenPath opens the file at path and makes it active.
// A file that is already open is activated instead of loaded twice.
func (a *Application) OpenPath(ctx context.Context, path string) (*Document, error) {
	if err := a.checkRunning(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	loaded, err := a.store.Open(ctx, path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	if doc, ok := a.documents.FindByPath(loaded.Path); ok {
		_ = a.documents.SetActive(doc.ID)
		return doc, nil
	}

	doc := newDocument(uuid.New(), loaded.Path, loaded.Format, loaded.Style.WithDefaults(),
		engine.New(a.engineOptions(loaded.Content)...))
	a.documents.Add(doc)
	a.watch(doc.Path())
	a.metrics.opens.Add(1)
	a.publish(EventOpened, doc)

	a.log.Info("opened document", "path", loaded.Path, "format", loaded.Format.String(), "id", doc.ID)
	return doc, nil
}

// Save writes a document to its path. Untitled documents go through SaveAs.
func (a *Application) Save(ctx context.Context, id uuid.UUID) error {
	doc, err := a.lookup(id)
	if err != nil {
		return err
	}
	if doc.IsScratch() {
		return a.SaveAs(ctx, id)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveTo(ctx, doc, doc.Path())
}

// SaveAs asks the picker for a path and writes the document there.
// A dismissed dialog returns ErrCanceled and leaves the document untouched.
func (a *Application) SaveAs(ctx context.Context, id uuid.UUID) error {
	doc, err := a.lookup(id)
	if err != nil {
		return err
	}
	if a.picker == nil {
		return ErrNoPicker
	}

	path, err := a.picker.SavePath(ctx, doc.Name())
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			return ErrCanceled
		}
		return NewOperationError("save", doc.Name(), err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveTo(ctx, doc, path)
}

// SaveActive is Save on the active document.
func (a *Application) SaveActive(ctx context.Context) error {
	doc, err := a.active()
	if err != nil {
		return err
	}
	return a.Save(ctx, doc.ID)
}

func (a *Application) saveTo(ctx context.Context, doc *Document, path string) error {
	if err := a.checkRunning(); err != nil {
		return err
	}

	content := doc.Content()
	style := doc.Style()
	if err := a.store.Save(ctx, path, content, style); err != nil {
		a.metrics.saveErrors.Add(1)
		return NewOperationError("save", path, err)
	}

	oldPath := doc.Path()
	doc.markSaved(path, content, style)
	if oldPath != path {
		a.unwatch(oldPath)
		a.watch(path)
	}
	a.clearRecovery(ctx, doc)
	a.metrics.saves.Add(1)
	a.publish(EventSaved, doc)

	a.log.Info("saved document", "path", path, "id", doc.ID)
	return nil
}

// Close closes a document. Without force, a document with unsaved
// changes is left open and ErrUnsavedChanges is returned.
func (a *Application) Close(ctx context.Context, id uuid.UUID, force bool) error {
	doc, err := a.lookup(id)
	if err != nil {
		return err
	}
	if doc.IsModified() && !force {
		return ErrUnsavedChanges
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Cancels any pending checkpoint timer.
	doc.Engine.Close()
	a.unwatch(doc.Path())
	a.clearRecovery(ctx, doc)

	if err := a.documents.Remove(id); err != nil {
		return err
	}
	a.publish(EventClosed, doc)
	a.log.Debug("closed document", "id", doc.ID, "path", doc.Path())
	return nil
}

// CloseActive is Close on the active document.
func (a *Application) CloseActive(ctx context.Context, force bool) error {
	doc, err := a.active()
	if err != nil {
		return err
	}
	return a.Close(ctx, doc.ID, force)
}

// Quit shuts the application down.
// Returns ErrUnsavedChanges if there are unsaved changes and force is false.
func (a *Application) Quit(ctx context.Context, force bool) error {
	if !force && a.documents.HasModified() {
		return ErrUnsavedChanges
	}
	return a.Shutdown(ctx)
}

// Shutdown writes a last recovery checkpoint and closes every document
// engine. It is safe to call more than once.
func (a *Application) Shutdown(ctx context.Context) error {
	if a.shutdown.Swap(true) {
		return nil
	}

	err := a.checkpoint(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, doc := range a.documents.All() {
		doc.Engine.Close()
		a.unwatch(doc.Path())
	}

	a.log.Info("shut down", "documents", a.documents.Count())
	return err
}

func (a *Application) checkRunning() error {
	if a.shutdown.Load() {
		return ErrShutdown
	}
	return nil
}

func (a *Application) watch(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	if err := a.watcher.Add(path); err != nil {
		a.log.Warn("watch failed", "path", path, "error", err)
	}
}

func (a *Application) unwatch(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	if err := a.watcher.Remove(path); err != nil {
		a.log.Debug("unwatch failed", "path", path, "error", err)
	}
}

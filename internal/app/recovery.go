package app

import (
	"context"
	"errors"

	"github.com/dshills/quillpad/internal/engine"
	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/recovery"
)

// Checkpoint writes a recovery copy of every modified document whose
// revision changed since its last copy. Documents that are no longer
// modified have their copy cleared.
func (a *Application) Checkpoint(ctx context.Context) error {
	if err := a.checkRunning(); err != nil {
		return err
	}
	return a.checkpoint(ctx)
}

func (a *Application) checkpoint(ctx context.Context) error {
	if a.recovery == nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, doc := range a.documents.All() {
		if !doc.IsModified() {
			a.clearRecovery(ctx, doc)
			continue
		}

		rev := doc.Engine.RevisionID()
		doc.mu.RLock()
		fresh := doc.hasRecovery && doc.recoveredRev == rev
		entry := recovery.Entry{
			DocID:    doc.ID,
			Path:     doc.path,
			Style:    doc.style,
			Format:   doc.format,
			Revision: uint64(rev),
		}
		doc.mu.RUnlock()
		if fresh {
			continue
		}

		entry.Content = doc.Content()
		if err := a.recovery.Write(ctx, doc.ID, entry); err != nil {
			errs = append(errs, NewOperationError("checkpoint", doc.Name(), err))
			continue
		}

		doc.mu.Lock()
		doc.recoveredRev = rev
		doc.hasRecovery = true
		doc.mu.Unlock()
		a.metrics.checkpoints.Add(1)
		a.log.Debug("wrote recovery copy", "id", doc.ID, "revision", rev)
	}
	return errors.Join(errs...)
}

func (a *Application) clearRecovery(ctx context.Context, doc *Document) {
	if a.recovery == nil {
		return
	}

	doc.mu.Lock()
	had := doc.hasRecovery
	doc.hasRecovery = false
	doc.recoveredRev = 0
	doc.mu.Unlock()
	if !had {
		return
	}

	if err := a.recovery.Clear(ctx, doc.ID); err != nil {
		a.log.Warn("clear recovery copy failed", "id", doc.ID, "error", err)
	}
}

// Recover reopens every document found in the recovery store. Recovered
// documents keep their ID and count as modified until saved. A copy whose
// content matches the file on disk is discarded.
func (a *Application) Recover(ctx context.Context) ([]*Document, error) {
	if err := a.checkRunning(); err != nil {
		return nil, err
	}
	if a.recovery == nil {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	entries, err := a.recovery.ReadAll(ctx)
	if err != nil {
		return nil, NewOperationError("recover", "", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if _, open := a.documents.Get(entry.DocID); open {
			continue
		}

		doc := newDocument(entry.DocID, entry.Path, entry.Format, entry.Style.WithDefaults(),
			engine.New(a.engineOptions(entry.Content)...))
		doc.hasRecovery = true
		doc.savedText = ""
		doc.savedStyle = doc.style

		if entry.Path != "" {
			loaded, err := a.store.Open(ctx, entry.Path)
			if err == nil {
				content := buffer.NormalizeLineEndings(loaded.Content, doc.Engine.LineEnding())
				if content == entry.Content {
					doc.Engine.Close()
					a.log.Debug("discarding stale recovery copy", "id", entry.DocID, "path", entry.Path)
					if err := a.recovery.Clear(ctx, entry.DocID); err != nil {
						a.log.Warn("clear recovery copy failed", "id", entry.DocID, "error", err)
					}
					continue
				}
				doc.savedText = content
				doc.savedStyle = loaded.Style.WithDefaults()
			} else {
				a.log.Warn("recovered file is unreadable", "path", entry.Path, "error", err)
			}
		}

		a.documents.Add(doc)
		a.watch(entry.Path)
		a.metrics.recovered.Add(1)
		a.publish(EventRecovered, doc)
		docs = append(docs, doc)
		a.log.Info("recovered document", "id", entry.DocID, "title", entry.Title())
	}
	return docs, nil
}

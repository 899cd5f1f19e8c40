package app

import (
	"context"
	"time"

	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/watcher"
)

// HandleExternalChange reacts to another program changing an open file.
// An unmodified document is reloaded; a modified one is flagged as
// conflicting and keeps its text.
func (a *Application) HandleExternalChange(ctx context.Context, ev watcher.Event) error {
	if err := a.checkRunning(); err != nil {
		return err
	}

	doc, ok := a.documents.FindByPath(ev.Path)
	if !ok {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if ev.Op.Gone() {
		doc.conflict.Store(true)
		a.metrics.conflicts.Add(1)
		a.publish(EventConflict, doc)
		a.log.Warn("open file removed", "path", ev.Path, "op", ev.Op.String())
		return nil
	}

	loaded, err := a.store.Open(ctx, ev.Path)
	if err != nil {
		return NewOperationError("reload", ev.Path, err)
	}
	content := buffer.NormalizeLineEndings(loaded.Content, doc.Engine.LineEnding())
	if content == doc.savedContent() {
		return nil
	}

	if doc.IsModified() {
		doc.conflict.Store(true)
		a.metrics.conflicts.Add(1)
		a.publish(EventConflict, doc)
		a.log.Warn("file changed on disk with unsaved edits", "path", ev.Path)
		return nil
	}

	if err := doc.Engine.Reset(content); err != nil {
		return NewOperationError("reload", ev.Path, err)
	}
	style := loaded.Style.WithDefaults()
	doc.SetStyle(style)
	doc.markSaved(loaded.Path, content, style)
	a.metrics.reloads.Add(1)
	a.publish(EventReloaded, doc)

	a.log.Info("reloaded document", "path", ev.Path)
	return nil
}

// Run writes recovery checkpoints on the configured interval and applies
// watcher events until ctx is canceled.
func (a *Application) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if a.recovery != nil && a.config.Recovery.Enabled && a.config.RecoveryInterval() > 0 {
		ticker := time.NewTicker(a.config.RecoveryInterval())
		defer ticker.Stop()
		tick = ticker.C
	}

	var events <-chan watcher.Event
	if a.watcher != nil {
		events = a.watcher.Events()
	}

	a.log.Debug("run loop started", "recovery", tick != nil, "watching", events != nil)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-tick:
			if err := a.Checkpoint(ctx); err != nil {
				a.log.Warn("checkpoint failed", "error", err)
			}

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := a.HandleExternalChange(ctx, ev); err != nil {
				a.log.Warn("external change", "path", ev.Path, "error", err)
			}
		}
	}
}

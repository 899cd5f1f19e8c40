package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/document"
	"github.com/dshills/quillpad/internal/recovery"
	"github.com/dshills/quillpad/internal/watcher"
)

// Picker is supplied by the host shell and shows the native file dialogs.
// Both methods return ErrCanceled when the user dismisses the dialog.
type Picker interface {
	OpenPath(ctx context.Context) (string, error)
	SavePath(ctx context.Context, suggested string) (string, error)
}

// DocumentStore reads and writes document files.
type DocumentStore interface {
	Open(ctx context.Context, path string) (*document.Loaded, error)
	Save(ctx context.Context, path, content string, style rtf.Style) error
}

// RecoveryStore persists crash-recovery copies of modified documents.
type RecoveryStore interface {
	Write(ctx context.Context, docID uuid.UUID, e recovery.Entry) error
	ReadAll(ctx context.Context) ([]recovery.Entry, error)
	Clear(ctx context.Context, docID uuid.UUID) error
}

// Watcher reports changes other programs make to open files.
type Watcher interface {
	Add(path string) error
	Remove(path string) error
	Events() <-chan watcher.Event
}

var (
	_ DocumentStore = (*document.Store)(nil)
	_ RecoveryStore = (*recovery.Store)(nil)
	_ Watcher       = (*watcher.FileWatcher)(nil)
)

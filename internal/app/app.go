// Package app holds the explicit application state of quillpad: the open
// documents, the active document and the collaborators that load, save and
// recover them. Hosts create one Application and route UI callbacks into it.
package app

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/config"
	"github.com/dshills/quillpad/internal/document"
	"github.com/dshills/quillpad/internal/engine"
	"github.com/dshills/quillpad/internal/engine/buffer"
	"github.com/dshills/quillpad/internal/engine/history"
	"github.com/dshills/quillpad/internal/logger"
)

// Application is the central coordinator for open documents.
type Application struct {
	// mu serializes load, save, close and recovery round-trips.
	mu sync.Mutex

	config    *config.Config
	documents *DocumentManager
	store     DocumentStore
	recovery  RecoveryStore
	picker    Picker
	watcher   Watcher
	scheduler history.Scheduler
	log       *slog.Logger
	metrics   *Metrics
	events    events

	shutdown atomic.Bool
}

// Option configures an Application.
type Option func(*Application)

// WithConfig sets the settings. The default is config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(a *Application) {
		if cfg != nil {
			a.config = cfg
		}
	}
}

// WithStore sets the document store. The default reads and writes the
// host file system.
func WithStore(s DocumentStore) Option {
	return func(a *Application) {
		a.store = s
	}
}

// WithRecovery sets the recovery store. Without one, checkpoints are skipped.
func WithRecovery(r RecoveryStore) Option {
	return func(a *Application) {
		a.recovery = r
	}
}

// WithPicker sets the host file dialogs.
func WithPicker(p Picker) Option {
	return func(a *Application) {
		a.picker = p
	}
}

// WithWatcher sets the external change watcher.
func WithWatcher(w Watcher) Option {
	return func(a *Application) {
		a.watcher = w
	}
}

// WithScheduler sets the timer source used by every document's history.
func WithScheduler(s history.Scheduler) Option {
	return func(a *Application) {
		a.scheduler = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) {
		a.log = l
	}
}

// New creates an Application.
func New(opts ...Option) *Application {
	a := &Application{
		config:    config.Default(),
		documents: NewDocumentManager(),
		metrics:   NewMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.log = logger.WithComponent(logger.Or(a.log), "app")
	if a.store == nil {
		a.store = document.NewStore(document.WithLogger(a.log))
	}
	return a
}

// Config returns the settings in use.
func (a *Application) Config() *config.Config {
	return a.config
}

// Documents returns the document manager.
func (a *Application) Documents() *DocumentManager {
	return a.documents
}

// Metrics returns the operation counters.
func (a *Application) Metrics() *Metrics {
	return a.metrics
}

// ActiveDocument returns the focused document, or nil.
func (a *Application) ActiveDocument() *Document {
	return a.documents.Active()
}

// DefaultStyle returns the style new documents start with.
func (a *Application) DefaultStyle() rtf.Style {
	s := a.config.Style
	return rtf.Style{
		FontFamily: s.FontFamily,
		FontSize:   s.FontSize,
		FontColor:  s.FontColor,
	}.WithDefaults()
}

func (a *Application) engineOptions(content string) []engine.Option {
	opts := []engine.Option{
		engine.WithContent(content),
		engine.WithDebounce(a.config.Debounce()),
		engine.WithMaxUndoEntries(a.config.Editor.MaxUndoEntries),
		engine.WithLineEnding(a.lineEnding(content)),
	}
	if a.scheduler != nil {
		opts = append(opts, engine.WithScheduler(a.scheduler))
	}
	return opts
}

// lineEnding maps the configured setting to the style content is
// normalized to when it is loaded.
func (a *Application) lineEnding(content string) buffer.LineEnding {
	switch a.config.Editor.LineEnding {
	case config.LineEndingLF:
		return buffer.LineEndingLF
	case config.LineEndingCRLF:
		return buffer.LineEndingCRLF
	case config.LineEndingAuto:
		return buffer.DetectLineEnding(content)
	default:
		return buffer.LineEndingPreserve
	}
}

// NewDocument creates an empty untitled document and makes it active.
func (a *Application) NewDocument() *Document {
	doc := newDocument(uuid.New(), "", document.FormatPlain, a.DefaultStyle(),
		engine.New(a.engineOptions("")...))
	a.documents.Add(doc)
	a.log.Debug("new document", "id", doc.ID)
	return doc
}

func (a *Application) lookup(id uuid.UUID) (*Document, error) {
	doc, ok := a.documents.Get(id)
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (a *Application) active() (*Document, error) {
	doc := a.documents.Active()
	if doc == nil {
		return nil, ErrNoActiveDocument
	}
	return doc, nil
}

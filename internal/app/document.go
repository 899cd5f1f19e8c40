package app

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/document"
	"github.com/dshills/quillpad/internal/engine"
)

// Document represents an open file with its associated editor state.
type Document struct {
	// ID identifies the document for recovery. It survives renames.
	ID uuid.UUID

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	mu     sync.RWMutex
	path   string
	format document.Format
	style  rtf.Style

	// Last content and style written to or read from disk.
	savedText  string
	savedStyle rtf.Style

	// Revision last written to the recovery store.
	recoveredRev engine.RevisionID
	hasRecovery  bool

	conflict atomic.Bool
}

func newDocument(id uuid.UUID, path string, format document.Format, style rtf.Style, eng *engine.Engine) *Document {
	return &Document{
		ID:         id,
		Engine:     eng,
		path:       path,
		format:     format,
		style:      style,
		savedText:  eng.Text(),
		savedStyle: style,
	}
}

// Path returns the absolute file path (empty for scratch documents).
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Format returns the file format chosen by the path extension.
func (d *Document) Format() document.Format {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.format
}

// Name returns the display name (filename or "Untitled").
func (d *Document) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.path == "" {
		return "Untitled"
	}
	return filepath.Base(d.path)
}

// IsScratch returns true if this document has never been saved.
func (d *Document) IsScratch() bool {
	return d.Path() == ""
}

// Style returns the document-wide style.
func (d *Document) Style() rtf.Style {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.style
}

// SetStyle replaces the document-wide style.
func (d *Document) SetStyle(style rtf.Style) {
	d.mu.Lock()
	d.style = style.WithDefaults()
	d.mu.Unlock()
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// IsModified returns true if the text or style differs from what was
// last saved. Undoing back to the saved text clears the flag.
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Engine.Text() != d.savedText || d.style != d.savedStyle
}

// HasConflict reports whether the file changed on disk while the
// document had unsaved changes.
func (d *Document) HasConflict() bool {
	return d.conflict.Load()
}

func (d *Document) markSaved(path, text string, style rtf.Style) {
	d.mu.Lock()
	d.path = path
	d.format = document.FormatFor(path)
	d.savedText = text
	d.savedStyle = style
	d.mu.Unlock()
	d.conflict.Store(false)
}

func (d *Document) savedContent() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.savedText
}

// DocumentManager manages all open documents.
type DocumentManager struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*Document
	active    *Document
	order     []uuid.UUID // tracks open order for navigation
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[uuid.UUID]*Document),
	}
}

// Add registers doc and makes it active.
func (dm *DocumentManager) Add(doc *Document) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if _, exists := dm.documents[doc.ID]; !exists {
		dm.order = append(dm.order, doc.ID)
	}
	dm.documents[doc.ID] = doc
	dm.active = doc
}

// Remove drops a document by ID.
func (dm *DocumentManager) Remove(id uuid.UUID) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, exists := dm.documents[id]
	if !exists {
		return ErrDocumentNotFound
	}

	delete(dm.documents, id)

	for i, o := range dm.order {
		if o == id {
			dm.order = append(dm.order[:i], dm.order[i+1:]...)
			break
		}
	}

	if dm.active == doc {
		if len(dm.order) > 0 {
			dm.active = dm.documents[dm.order[len(dm.order)-1]]
		} else {
			dm.active = nil
		}
	}

	return nil
}

// Active returns the currently active document.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// SetActive sets the active document by ID.
func (dm *DocumentManager) SetActive(id uuid.UUID) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, exists := dm.documents[id]
	if !exists {
		return ErrDocumentNotFound
	}
	dm.active = doc
	return nil
}

// Get returns a document by ID.
func (dm *DocumentManager) Get(id uuid.UUID) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, exists := dm.documents[id]
	return doc, exists
}

// FindByPath returns the open document saved at path.
func (dm *DocumentManager) FindByPath(path string) (*Document, bool) {
	if path == "" {
		return nil, false
	}

	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, id := range dm.order {
		if doc := dm.documents[id]; doc.Path() == path {
			return doc, true
		}
	}
	return nil, false
}

// All returns all open documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.order))
	for _, id := range dm.order {
		docs = append(docs, dm.documents[id])
	}
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

// Modified returns the documents with unsaved changes.
func (dm *DocumentManager) Modified() []*Document {
	var dirty []*Document
	for _, doc := range dm.All() {
		if doc.IsModified() {
			dirty = append(dirty, doc)
		}
	}
	return dirty
}

// HasModified returns true if any document has unsaved changes.
func (dm *DocumentManager) HasModified() bool {
	return len(dm.Modified()) > 0
}

// Next switches to the next document in open order.
func (dm *DocumentManager) Next() *Document {
	return dm.step(1)
}

// Previous switches to the previous document in open order.
func (dm *DocumentManager) Previous() *Document {
	return dm.step(-1)
}

func (dm *DocumentManager) step(delta int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if len(dm.order) == 0 {
		return nil
	}

	idx := 0
	if dm.active != nil {
		for i, id := range dm.order {
			if id == dm.active.ID {
				idx = i
				break
			}
		}
	}

	n := len(dm.order)
	idx = ((idx+delta)%n + n) % n
	dm.active = dm.documents[dm.order[idx]]
	return dm.active
}

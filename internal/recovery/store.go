package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/document"
	"github.com/dshills/quillpad/internal/logger"
)

// ErrNilDocID is returned when an entry has no document ID.
var ErrNilDocID = errors.New("recovery entry has no document id")

// Entry is the recovery copy of one document.
type Entry struct {
	DocID uuid.UUID
	// Path is empty for documents that were never saved.
	Path     string
	Content  string
	Style    rtf.Style
	Format   document.Format
	Revision uint64
	SavedAt  time.Time
}

// Title returns the path, or a placeholder for unsaved documents.
func (e Entry) Title() string {
	if e.Path == "" {
		return "untitled-" + e.DocID.String()[:8]
	}
	return e.Path
}

// Store reads and writes recovery entries.
type Store struct {
	db  *DB
	log *slog.Logger
	now func() time.Time
}

// NewStore creates a store on db. A nil logger uses slog.Default().
func NewStore(db *DB, log *slog.Logger) *Store {
	return &Store{
		db:  db,
		log: logger.WithComponent(log, "recovery"),
		now: time.Now,
	}
}

// Open opens the database at path and returns a store on it.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	return NewStore(db, log), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write stores e as the recovery copy of docID, replacing any earlier one.
// A zero SavedAt is set to the current time.
func (s *Store) Write(ctx context.Context, docID uuid.UUID, e Entry) error {
	if docID == uuid.Nil {
		return ErrNilDocID
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = s.now()
	}

	content, err := compress(e.Content)
	if err != nil {
		return err
	}
	meta, err := encodeMeta(e)
	if err != nil {
		return err
	}

	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO recovery_entries (doc_id, path, content, content_len, meta, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			path = excluded.path,
			content = excluded.content,
			content_len = excluded.content_len,
			meta = excluded.meta,
			saved_at = excluded.saved_at
	`, docID.String(), e.Path, content, len(e.Content), meta, e.SavedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("writing recovery entry %s: %w", docID, err)
	}

	s.log.Debug("wrote recovery entry",
		"doc", docID.String(),
		"path", e.Path,
		"bytes", len(e.Content),
		"compressed", len(content))
	return nil
}

// ReadAll returns every entry, most recently saved first.
// Rows that cannot be decoded are skipped and logged.
func (s *Store) ReadAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT doc_id, path, content, meta, saved_at
		FROM recovery_entries
		ORDER BY saved_at DESC, doc_id
	`)
	if err != nil {
		return nil, fmt.Errorf("reading recovery entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id      string
			e       Entry
			content []byte
			meta    string
			savedAt int64
		)
		if err := rows.Scan(&id, &e.Path, &content, &meta, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning recovery entry: %w", err)
		}

		e.DocID, err = uuid.Parse(id)
		if err != nil {
			s.log.Warn("skipping recovery entry with bad id", "doc", id, "error", err)
			continue
		}
		e.Content, err = decompress(content)
		if err != nil {
			s.log.Warn("skipping unreadable recovery entry", "doc", id, "error", err)
			continue
		}
		decodeMeta(meta, &e)
		e.SavedAt = time.Unix(0, savedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recovery entries: %w", err)
	}
	return entries, nil
}

// Clear removes the entry for docID. Clearing a missing entry is not an error.
func (s *Store) Clear(ctx context.Context, docID uuid.UUID) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM recovery_entries WHERE doc_id = ?`, docID.String()); err != nil {
		return fmt.Errorf("clearing recovery entry %s: %w", docID, err)
	}
	s.log.Debug("cleared recovery entry", "doc", docID.String())
	return nil
}

// ClearAll removes every entry.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM recovery_entries`); err != nil {
		return fmt.Errorf("clearing recovery entries: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recovery_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting recovery entries: %w", err)
	}
	return n, nil
}

// encodeMeta builds the JSON meta column.
func encodeMeta(e Entry) (string, error) {
	meta := "{}"
	var err error
	set := func(path string, value any) {
		if err == nil {
			meta, err = sjson.Set(meta, path, value)
		}
	}
	set("style.fontFamily", e.Style.FontFamily)
	set("style.fontSize", e.Style.FontSize)
	set("style.fontColor", e.Style.FontColor)
	set("format", e.Format.String())
	set("revision", e.Revision)
	if err != nil {
		return "", fmt.Errorf("encoding recovery meta: %w", err)
	}
	return meta, nil
}

// decodeMeta fills e from the JSON meta column. Missing fields keep
// defaults.
func decodeMeta(meta string, e *Entry) {
	style := rtf.DefaultStyle()
	if v := gjson.Get(meta, "style.fontFamily"); v.Exists() {
		style.FontFamily = v.String()
	}
	if v := gjson.Get(meta, "style.fontSize"); v.Exists() {
		style.FontSize = v.Float()
	}
	if v := gjson.Get(meta, "style.fontColor"); v.Exists() {
		style.FontColor = v.String()
	}
	e.Style = style.WithDefaults()
	e.Format = document.ParseFormat(gjson.Get(meta, "format").String())
	e.Revision = gjson.Get(meta, "revision").Uint()
}

// Package recovery keeps crash-recovery copies of unsaved documents.
//
// Copies live in a SQLite database, one row per open document. Content is
// lz4-compressed and the style and bookkeeping fields are stored as a small
// JSON document, so new fields can be added without a schema change.
package recovery

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents a SQLite database connection.
type DB struct {
	conn *sql.DB
	path string
}

// OpenDB opens or creates a recovery database at the given path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// WAL mode lets the CLI read while the editor writes.
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recovery_entries (
		doc_id TEXT PRIMARY KEY,
		path TEXT NOT NULL DEFAULT '',
		content BLOB NOT NULL,
		content_len INTEGER NOT NULL DEFAULT 0,
		meta TEXT NOT NULL DEFAULT '{}',
		saved_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recovery_saved_at ON recovery_entries(saved_at DESC);
	`
	_, err := db.conn.Exec(schema)
	return err
}

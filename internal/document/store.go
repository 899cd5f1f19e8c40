package document

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dshills/quillpad/internal/codec/rtf"
	"github.com/dshills/quillpad/internal/logger"
)

// DefaultMaxFileSize is the largest file Open accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Loaded is a document read from disk.
type Loaded struct {
	// Path is the absolute path the document was read from.
	Path string
	// Content is the plain text.
	Content string
	// Style is the ambient style. Plain text files get the default style.
	Style    rtf.Style
	Format   Format
	Encoding Encoding
	ModTime  time.Time
}

// Store opens and saves documents.
type Store struct {
	fs          FS
	maxFileSize int64
	log         *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the file system. The default is the host file system.
func WithFS(fsys FS) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithMaxFileSize sets the maximum file size. Zero means unlimited.
func WithMaxFileSize(size int64) Option {
	return func(s *Store) {
		s.maxFileSize = size
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates a Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		fs:          OSFS{},
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.WithComponent(s.log, "document")
	return s
}

// Open reads the document at path.
func (s *Store) Open(ctx context.Context, path string) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	absPath, err := s.fs.Abs(path)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	info, err := s.fs.Stat(absPath)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &PathError{Op: "open", Path: path, Err: ErrIsDirectory}
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, &PathError{Op: "open", Path: path, Err: ErrFileTooLarge}
	}

	raw, err := s.fs.ReadFile(absPath)
	if err != nil {
		return nil, &PathError{Op: "open", Path: path, Err: err}
	}

	loaded := &Loaded{
		Path:    absPath,
		Format:  FormatFor(absPath),
		Style:   rtf.DefaultStyle(),
		ModTime: info.ModTime(),
	}

	enc := DetectEncoding(raw)
	if enc != EncodingUTF16LE && enc != EncodingUTF16BE && IsBinary(raw) {
		return nil, &PathError{Op: "open", Path: path, Err: ErrBinaryFile}
	}
	text, enc := DecodeText(raw)
	loaded.Encoding = enc

	if loaded.Format == FormatRTF {
		loaded.Content = rtf.DecodePlain(text)
		loaded.Style = rtf.ExtractStyle(text)
	} else {
		loaded.Content = text
	}

	s.log.Debug("opened document",
		"path", absPath,
		"format", loaded.Format.String(),
		"encoding", string(enc),
		"bytes", len(raw))
	return loaded, nil
}

// Save writes content to path in the format its extension selects.
// Style is only stored for rich formats. The file is replaced atomically
// through a temporary file in the same directory.
func (s *Store) Save(ctx context.Context, path, content string, style rtf.Style) error {
	if err := ctx.Err(); err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	absPath, err := s.fs.Abs(path)
	if err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	data, err := Render(FormatFor(absPath), content, style)
	if err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	if err := s.fs.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	tmp := absPath + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}
	if err := s.fs.Rename(tmp, absPath); err != nil {
		_ = s.fs.Remove(tmp)
		return &PathError{Op: "save", Path: path, Err: err}
	}

	s.log.Debug("saved document", "path", absPath, "bytes", len(data))
	return nil
}

// Render produces the bytes Save writes for the given format.
func Render(format Format, content string, style rtf.Style) ([]byte, error) {
	if !format.IsRich() {
		return []byte(content), nil
	}
	var buf bytes.Buffer
	if err := rtf.EncodeWriter(&buf, content, style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Exists reports whether path names an existing file.
func (s *Store) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

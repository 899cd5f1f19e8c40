package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/quillpad/internal/logger"
)

// FileWatcher watches individual files with fsnotify.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	config  Config
	log     *slog.Logger

	// files are the watched file paths; dirs counts watched files per
	// parent directory.
	files map[string]bool
	dirs  map[string]int

	pending map[string]*pendingEvent

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// pendingEvent tracks a debounced event.
type pendingEvent struct {
	event Event
	timer *time.Timer
}

// New creates a FileWatcher. A nil logger uses slog.Default().
func New(log *slog.Logger, opts ...Option) (*FileWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 100
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		config:  config,
		log:     logger.WithComponent(log, "watcher"),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, config.BufferSize),
		errors:  make(chan error, config.BufferSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add starts watching the file at path. The file need not exist yet, but
// its directory must.
func (w *FileWatcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[absPath] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if _, err := os.Stat(dir); err != nil {
			return err
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true

	w.log.Debug("watching file", "path", absPath)
	return nil
}

// Remove stops watching the file at path.
func (w *FileWatcher) Remove(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[absPath] {
		return ErrNotWatching
	}

	delete(w.files, absPath)
	if p, ok := w.pending[absPath]; ok {
		p.timer.Stop()
		delete(w.pending, absPath)
	}

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		// The directory may already be gone; fsnotify drops it on its own.
		_ = w.watcher.Remove(dir)
	}
	return nil
}

// IsWatching returns true if the file is being watched.
func (w *FileWatcher) IsWatching(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[absPath]
}

// WatchedFiles returns all watched file paths.
func (w *FileWatcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	return paths
}

// Events returns the debounced event channel.
// The channel is closed when the watcher is closed.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
// The channel is closed when the watcher is closed.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and releases resources.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)

	// Cancel all pending timers
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	// Wait for processLoop to finish
	w.closedWg.Wait()

	err := w.watcher.Close()

	close(w.events)
	close(w.errors)
	return err
}

// Flush immediately fires all pending events.
func (w *FileWatcher) Flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path, p := range w.pending {
		p.timer.Stop()
		paths = append(paths, path)
	}
	w.mu.Unlock()

	for _, path := range paths {
		w.fireEvent(path)
	}
}

// PendingCount returns the number of pending events.
func (w *FileWatcher) PendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// processLoop handles incoming fsnotify events.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			w.handleEvent(Event{Path: filepath.Clean(fsEvent.Name), Op: op, Timestamp: time.Now()})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
			w.sendError(err)
		}
	}
}

// handleEvent debounces an event for a watched file. Events for other
// files in the same directory are dropped.
func (w *FileWatcher) handleEvent(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[event.Path] {
		return
	}

	// Coalesce: combine operations and reset timer
	if p, exists := w.pending[event.Path]; exists {
		p.event.Op |= event.Op
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(w.config.DebounceDelay)
		return
	}

	path := event.Path
	p := &pendingEvent{event: event}
	p.timer = time.AfterFunc(w.config.DebounceDelay, func() {
		w.fireEvent(path)
	})
	w.pending[path] = p
}

// fireEvent sends a pending event and removes it from the map. The send
// never blocks, so it is done under the lock to keep it ordered with Close.
func (w *FileWatcher) fireEvent(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, exists := w.pending[path]
	if !exists || w.closed {
		return
	}
	delete(w.pending, path)

	select {
	case w.events <- p.event:
	default:
		w.log.Warn("event channel full, dropping event", "path", path, "op", p.event.Op.String())
	}
}

func (w *FileWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Channel full, drop error
	}
}

// convertOp converts fsnotify.Op to watcher.Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

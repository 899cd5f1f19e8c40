package app

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// EventKind identifies what happened to a document.
type EventKind uint8

const (
	EventOpened EventKind = iota + 1
	EventSaved
	EventClosed
	EventReloaded
	EventConflict
	EventRecovered
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventSaved:
		return "saved"
	case EventClosed:
		return "closed"
	case EventReloaded:
		return "reloaded"
	case EventConflict:
		return "conflict"
	case EventRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Event tells the host shell that a document changed outside of editing,
// so tabs and titles can be refreshed.
type Event struct {
	Kind  EventKind
	DocID uuid.UUID
	Path  string
}

// DefaultEventBuffer is the channel size used by Subscribe for buffer <= 0.
const DefaultEventBuffer = 64

// events fans out Events to subscriber channels. A subscriber whose
// buffer is full misses the event.
type events struct {
	mu      sync.Mutex
	subs    map[uint64]chan Event
	next    uint64
	dropped atomic.Uint64
}

// Subscribe returns a channel of document events and a function that
// ends the subscription and closes the channel.
func (a *Application) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}

	e := &a.events
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.subs == nil {
		e.subs = make(map[uint64]chan Event)
	}
	e.next++
	id := e.next
	ch := make(chan Event, buffer)
	e.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs, id)
			close(ch)
		})
	}
}

// DroppedEvents returns the number of events lost to full subscriber buffers.
func (a *Application) DroppedEvents() uint64 {
	return a.events.dropped.Load()
}

func (a *Application) publish(kind EventKind, doc *Document) {
	ev := Event{Kind: kind, DocID: doc.ID, Path: doc.Path()}

	e := &a.events
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
			e.dropped.Add(1)
		}
	}
}

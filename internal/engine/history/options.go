package history

import "time"

// Option configures a History.
type Option func(*History)

// WithDebounce sets the quiescence window for checkpoint capture.
// A non-positive window commits every request immediately.
func WithDebounce(d time.Duration) Option {
	return func(h *History) {
		h.debounce = d
	}
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(h *History) {
		if s != nil {
			h.scheduler = s
		}
	}
}

// WithMaxEntries caps the undo stack; the oldest checkpoints are dropped.
func WithMaxEntries(max int) Option {
	return func(h *History) {
		if max > 0 {
			h.maxEntries = max
		}
	}
}

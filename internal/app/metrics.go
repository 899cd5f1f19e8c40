package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts application operations.
type Metrics struct {
	opens       atomic.Uint64
	saves       atomic.Uint64
	saveErrors  atomic.Uint64
	edits       atomic.Uint64
	undos       atomic.Uint64
	redos       atomic.Uint64
	checkpoints atomic.Uint64
	recovered   atomic.Uint64
	reloads     atomic.Uint64
	conflicts   atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Opens       uint64
	Saves       uint64
	SaveErrors  uint64
	Edits       uint64
	Undos       uint64
	Redos       uint64
	Checkpoints uint64
	Recovered   uint64
	Reloads     uint64
	Conflicts   uint64
	Uptime      time.Duration
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Opens:       m.opens.Load(),
		Saves:       m.saves.Load(),
		SaveErrors:  m.saveErrors.Load(),
		Edits:       m.edits.Load(),
		Undos:       m.undos.Load(),
		Redos:       m.redos.Load(),
		Checkpoints: m.checkpoints.Load(),
		Recovered:   m.recovered.Load(),
		Reloads:     m.reloads.Load(),
		Conflicts:   m.conflicts.Load(),
		Uptime:      time.Since(m.startTime),
	}
}

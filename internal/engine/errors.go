package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrClosed indicates the engine's document has been closed.
	ErrClosed = errors.New("engine is closed")
)

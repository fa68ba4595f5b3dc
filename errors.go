package granttag

import "errors"

var (
	// ErrUnknownStore is returned when Config.Store names no known backend.
	ErrUnknownStore = errors.New("unknown store backend")

	// ErrPathRequired is returned when a persistent store has no path.
	ErrPathRequired = errors.New("store path required")
)

package cache

import "errors"

// Common errors returned by the snapshot store.
var (
	// ErrBadSnapshot is returned when a snapshot file cannot be parsed.
	ErrBadSnapshot = errors.New("malformed catalog snapshot")
)

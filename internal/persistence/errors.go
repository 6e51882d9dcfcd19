package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrConflict is returned when a write collides with a uniqueness
	// constraint, such as a second active meeting for the same committee,
	// division and date.
	ErrConflict = errors.New("persistence: conflict")
)

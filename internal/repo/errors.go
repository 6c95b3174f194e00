package repo

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row, including lookups
	// scoped to an owner that the caller does not satisfy.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint (username, email) is violated.
	ErrDuplicate = errors.New("already exists")
)

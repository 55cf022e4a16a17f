package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOutOfRange is returned by row/offset queries outside 0..len. Per
	// spec §7 this is an internal condition: callers (the Store's
	// post-dispatch coercion) must prevent it from reaching users.
	ErrOutOfRange = errors.New("buffer: index out of range")

	// ErrInvalidRange is returned when a Range has Start > End.
	ErrInvalidRange = errors.New("buffer: invalid range")
)

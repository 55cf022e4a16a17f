package search

import "errors"

// ErrEmptyPattern is returned by Compile for an empty search pattern.
var ErrEmptyPattern = errors.New("search: empty pattern")

package store

import "errors"

var (
	// ErrNotFound indicates the collection document does not exist.
	ErrNotFound = errors.New("collection not found")
	// ErrInvalidName indicates an empty collection name or one containing a path separator.
	ErrInvalidName = errors.New("invalid collection name")
)

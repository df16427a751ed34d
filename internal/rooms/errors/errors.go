package errors

import "errors"

var (
	ErrNotFound = errors.New("room not found")

	ErrInvalidID = errors.New("invalid room ID format")

	// ErrDuplicateNumber is returned when the unique index on number rejects a write.
	ErrDuplicateNumber = errors.New("room number already exists")
)

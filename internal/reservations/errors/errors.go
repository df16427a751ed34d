package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	// ErrLockHeld means another request is placing a reservation for the same room.
	ErrLockHeld = errors.New("reservation lock already held for room")
)

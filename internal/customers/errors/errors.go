package errors

import "errors"

var (
	ErrNotFound       = errors.New("customer not found")
	ErrInvalidID      = errors.New("invalid customer ID format")
	ErrDuplicateEmail = errors.New("customer email already exists")
)

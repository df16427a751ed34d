// Package sanitizer normalizes guest and room input before validation and storage.
//
// All functions are idempotent. Invalid input is handled by returning an empty
// string rather than an error, leaving the rejection to the validator.
package sanitizer

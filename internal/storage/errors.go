package storage

import "errors"

// Errors shared by every store implementation.
var (
	// ErrNotFound is returned when a requested record does not exist.
	// Callers treat it as "no data", not as a fault.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a record whose key already
	// exists. Historical stores are append-only; updates are not allowed.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation (serial, phone, document).
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates missing or malformed input detected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidArgument indicates an unrecognized enumerated value (e.g. unknown action).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrClientInUse indicates the client still holds equipment and cannot be deleted.
	ErrClientInUse = errors.New("client has equipment in custody")
)

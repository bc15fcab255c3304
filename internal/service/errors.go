package service

import "errors"

var (
	// ErrInvalidInput marks malformed or missing required fields at the
	// collector boundary; surfaced to the caller, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable marks a failed record store operation; surfaced to
	// the caller, retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

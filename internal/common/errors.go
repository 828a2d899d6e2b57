// Package common defines shared sentinel errors used across the server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrStorage reports that the backing store was unreachable or the
	// operation failed. Repositories wrap driver errors into it and
	// propagate without retrying.
	ErrStorage = errors.New("storage error")

	// ErrUnauthorized covers every authentication failure: bad login
	// credentials, missing/malformed/expired/forged tokens, and tokens
	// whose subject is unknown. All of them collapse into this single
	// value so callers cannot tell which check failed.
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrEmptyUpdate = errors.New("no fields to update")

	// ErrHashFormat reports a structurally invalid stored password hash.
	// A plain password mismatch is not an error.
	ErrHashFormat = errors.New("malformed password hash")

	// Configuration errors, fatal at startup.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

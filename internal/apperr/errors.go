// Package apperr defines the error kinds shared by every feature package.
// Repositories and services wrap these sentinels with fmt.Errorf("...: %w"),
// and the HTTP layer maps them to status codes in one place.
package apperr

import "errors"

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotFoundOrForbidden covers both "record missing" and "record exists
	// but the caller may not see it". The two cases are deliberately
	// indistinguishable so the existence of other users' records never leaks.
	ErrNotFoundOrForbidden = errors.New("not found or access denied")

	// ErrConflict marks an insert that would duplicate an existing row.
	ErrConflict = errors.New("conflict")

	// ErrInvalidOperation marks a request that is well-formed but
	// semantically disallowed, e.g. sharing a report with yourself.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password on login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

package domain

import "errors"

// Sentinel errors returned by services and repositories. Handlers match
// them with errors.Is and map them to HTTP status codes; anything that
// wraps none of these surfaces as a 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

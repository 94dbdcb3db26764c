package services

import "errors"

// Request-scoped failures. Controllers map these to HTTP statuses or
// flash messages; nothing here is fatal.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("missing required field")
)

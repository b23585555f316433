package domain

import "errors"

// Recoverable failure kinds surfaced to the API layer. Services wrap these
// with fmt.Errorf("%w: ...") and handlers map them to HTTP status codes with
// errors.Is. None of them is fatal to the process.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrAlreadyExists          = errors.New("already exists")
	ErrValidation             = errors.New("validation failed")
)

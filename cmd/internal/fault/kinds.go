package fault

import "errors"

// Sentinel failure kinds (stable for errors.Is and for mapping to API status codes).
var (
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyExists = errors.New("already_exists")
	ErrNotRegistered = errors.New("not_registered")
	ErrAuthFailed    = errors.New("auth_failed")
	ErrInvalidInput  = errors.New("invalid_input")
	ErrInternal      = errors.New("internal")
)

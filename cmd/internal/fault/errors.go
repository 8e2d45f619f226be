// Package fault defines the failure taxonomy shared by every PostHub service.
//
// Services raise typed failures built from the sentinel kinds in this package;
// the request pipeline is the only place that maps a kind to an HTTP status.
package fault

import (
	"errors"
	"fmt"
)

// OpError is a typed operation error with a stable Op + Kind contract for callers/tests.
// - Kind MUST be one of the sentinel kinds when applicable (ErrNotFound, ErrAlreadyExists, ...).
// - Msg is the user-facing message for client-class kinds; do not include secrets.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

// New builds an OpError for op with the given kind and user-facing message.
func New(op string, kind error, msg string) error {
	return OpError{Op: op, Kind: kind, Msg: msg}
}

// ConflictError reports a uniqueness/constraint conflict for a specific logical field.
// Field should be a stable logical name: "username", "email", ...
type ConflictError struct {
	Op    string
	Field string
}

func (e ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrAlreadyExists)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrAlreadyExists, e.Field)
}

func (e ConflictError) Unwrap() error { return ErrAlreadyExists }

// Message returns the user-facing message carried by err, or "" when err
// carries none. Only OpError messages are considered user-facing; raw error
// text from drivers or the runtime must never reach a client.
func Message(err error) string {
	var oe OpError
	if errors.As(err, &oe) {
		return oe.Msg
	}
	return ""
}

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err represents ErrAlreadyExists (including ConflictError).
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsNotRegistered reports whether err represents ErrNotRegistered.
func IsNotRegistered(err error) bool { return errors.Is(err, ErrNotRegistered) }

// IsAuthFailed reports whether err represents ErrAuthFailed.
func IsAuthFailed(err error) bool { return errors.Is(err, ErrAuthFailed) }

// IsInvalidInput reports whether err represents ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsInternal reports whether err represents ErrInternal.
func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }

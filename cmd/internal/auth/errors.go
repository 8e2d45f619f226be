package auth

import "errors"

var (
	// ErrConfig reports invalid or missing token configuration.
	ErrConfig = errors.New("auth: invalid config")

	// ErrInvalidToken reports a token that failed verification for any
	// reason (bad signature/key, wrong issuer or audience, expired,
	// malformed). Callers get one indistinguishable failure to avoid
	// token probing.
	ErrInvalidToken = errors.New("auth: invalid token")
)

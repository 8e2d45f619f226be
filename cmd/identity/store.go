package identity

import (
	"context"
	"time"
)

// User is PostHub's canonical security principal.
// Immutable after creation except password-hash rotation, which is not
// exposed through this interface.
type User struct {
	ID           string
	Username     string
	UsernameNorm string
	Email        string
	EmailNorm    string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserInput describes a user registration request.
// Password is plaintext for the duration of this single call; the store
// hashes it and never retains it.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Now      time.Time
}

// Store is the credential persistence boundary.
//
// Uniqueness contract:
//   - No two users may share a username or email (after normalization).
//   - Create must be atomic with respect to the uniqueness check: when two
//     concurrent creates collide, exactly one succeeds and the other gets a
//     fault.ConflictError. Callers must treat that conflict the same as a
//     positive pre-check hit.
type Store interface {
	// FindByUsername returns the user for a username, or a fault.ErrNotFound
	// kind when absent.
	FindByUsername(ctx context.Context, username string) (User, error)

	// FindByEmail returns the user for an email, or a fault.ErrNotFound kind
	// when absent.
	FindByEmail(ctx context.Context, email string) (User, error)

	// Create hashes the password and persists a new user. A uniqueness
	// violation surfaces as fault.ConflictError.
	Create(ctx context.Context, in CreateUserInput) (User, error)

	// VerifyPassword reports whether plaintext matches the user's stored hash.
	// A malformed stored hash is an error, not a mismatch.
	VerifyPassword(ctx context.Context, user User, plaintext string) (bool, error)
}

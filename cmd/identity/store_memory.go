package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"posthub/cmd/internal/fault"
)

// MemoryStore is a process-local Store used by tests and DB-less dev mode.
// The mutex makes the uniqueness check and insert a single indivisible step,
// matching the constraint semantics of PostgresStore.
type MemoryStore struct {
	mu         sync.Mutex
	byUsername map[string]User // keyed by UsernameNorm
	byEmail    map[string]User // keyed by EmailNorm
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUsername: make(map[string]User),
		byEmail:    make(map[string]User),
	}
}

// FindByUsername returns the user for a username, or a fault.ErrNotFound kind.
func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (User, error) {
	const op = "identity.FindByUsername"
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byUsername[NormalizeUsername(username)]
	if !ok {
		return User{}, fault.New(op, fault.ErrNotFound, "user not found")
	}
	return u, nil
}

// FindByEmail returns the user for an email, or a fault.ErrNotFound kind.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.FindByEmail"
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, fault.New(op, fault.ErrNotFound, "user not found")
	}
	return u, nil
}

// Create hashes the password and inserts the user, enforcing uniqueness of
// normalized username and email under the same lock.
func (s *MemoryStore) Create(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.Create"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return User{}, fault.New(op, fault.ErrInvalidInput, "username, email and password are required")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	hash, err := HashPassword(in.Password, DefaultArgon2idParams())
	if err != nil {
		return User{}, err
	}

	id, err := NewULID(now)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           id,
		Username:     username,
		UsernameNorm: NormalizeUsername(username),
		Email:        email,
		EmailNorm:    NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[u.UsernameNorm]; ok {
		return User{}, fault.ConflictError{Op: op, Field: "username"}
	}
	if _, ok := s.byEmail[u.EmailNorm]; ok {
		return User{}, fault.ConflictError{Op: op, Field: "email"}
	}

	s.byUsername[u.UsernameNorm] = u
	s.byEmail[u.EmailNorm] = u
	return u, nil
}

// VerifyPassword reports whether plaintext matches the user's stored hash.
func (s *MemoryStore) VerifyPassword(ctx context.Context, user User, plaintext string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return VerifyPassword(plaintext, user.PasswordHash)
}

package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"posthub/cmd/identity"
	"posthub/cmd/internal/fault"
)

// RegisterInput describes a registration request after DTO shape checks.
type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// LoginInput describes a login request after DTO shape checks.
type LoginInput struct {
	Username string
	Password string
}

// Service orchestrates registration and login against the credential store
// and issues session tokens. It raises typed failures and never formats
// HTTP responses.
type Service struct {
	store  identity.Store
	tokens TokenManager
	log    *slog.Logger
}

// NewService constructs the identity core service.
func NewService(store identity.Store, tokens TokenManager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, tokens: tokens, log: log}
}

// Register creates a new user and returns a session token for it.
//
// Failure contract:
//   - password/confirm mismatch: fault.ErrInvalidInput "Passwords do not match"
//     (checked here, before the store is touched)
//   - username or email already taken, whether caught by the pre-check or by
//     the store's unique constraint: fault.ErrAlreadyExists "User already exists"
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	const op = "auth.Register"

	if in.Password != in.ConfirmPassword {
		return "", fault.New(op, fault.ErrInvalidInput, "Passwords do not match")
	}

	if err := s.checkAvailable(ctx, op, in.Username, in.Email); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user, err := s.store.Create(ctx, identity.CreateUserInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Now:      now,
	})
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// store's constraint is the arbiter and its conflict reads the same.
		if fault.IsAlreadyExists(err) {
			return "", fault.New(op, fault.ErrAlreadyExists, "User already exists")
		}
		return "", err
	}

	s.log.Info("auth.register.ok", "user_id", user.ID, "username", user.UsernameNorm)
	return s.issue(op, user, now)
}

// Login authenticates a user by username and password and returns a session
// token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	const op = "auth.Login"

	user, err := s.store.FindByUsername(ctx, in.Username)
	if err != nil {
		if fault.IsNotFound(err) {
			return "", fault.New(op, fault.ErrNotRegistered, "User is not registered")
		}
		return "", err
	}

	ok, err := s.store.VerifyPassword(ctx, user, in.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		s.log.Warn("auth.login.bad_password", "user_id", user.ID)
		return "", fault.New(op, fault.ErrAuthFailed, "Unable to authenticate")
	}

	s.log.Info("auth.login.ok", "user_id", user.ID)
	return s.issue(op, user, time.Now().UTC())
}

func (s *Service) checkAvailable(ctx context.Context, op, username, email string) error {
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return fault.New(op, fault.ErrAlreadyExists, "User already exists")
	} else if !fault.IsNotFound(err) {
		return err
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return fault.New(op, fault.ErrAlreadyExists, "User already exists")
	} else if !fault.IsNotFound(err) {
		return err
	}

	return nil
}

func (s *Service) issue(op string, user identity.User, now time.Time) (string, error) {
	token, _, err := s.tokens.Issue(user.ID, user.Username, now)
	if err != nil {
		s.log.Error("auth.token.issue.fail", "err", err, "user_id", user.ID)
		return "", fault.New(op, fault.ErrInternal, "token issuance failed")
	}
	if strings.TrimSpace(token) == "" {
		return "", fault.New(op, fault.ErrInternal, "empty token")
	}
	return token, nil
}

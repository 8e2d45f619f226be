package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"posthub/cmd/internal/fault"
)

// PostgresStore implements credential persistence over PostgreSQL.
//
// Design notes:
//   - The pgx pool is owned by the caller; this store must NOT close it.
//   - Schema/table identifiers are safely quoted to avoid SQL injection via
//     identifiers.
//   - Uniqueness of username/email is enforced by unique constraints on the
//     normalized columns; a 23505 during Create maps to fault.ConflictError
//     so concurrent registrations collapse to a single winner.
//
// Expected table (schema managed externally):
//
//	users(id, username, username_norm, email, email_norm, password_hash, created_at)
//	with unique constraints uq_users_username_norm, uq_users_email_norm.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the store (default "posthub").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "posthub",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

const userColumns = "id, username, username_norm, email, email_norm, password_hash, created_at"

// FindByUsername returns the user for a username, or a fault.ErrNotFound kind.
func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (User, error) {
	const op = "identity.FindByUsername"
	return s.findBy(ctx, op, "username_norm", NormalizeUsername(username))
}

// FindByEmail returns the user for an email, or a fault.ErrNotFound kind.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (User, error) {
	const op = "identity.FindByEmail"
	return s.findBy(ctx, op, "email_norm", NormalizeEmail(email))
}

func (s *PostgresStore) findBy(ctx context.Context, op, column, value string) (User, error) {
	if s == nil || s.pool == nil {
		return User{}, fault.New(op, fault.ErrInvalidInput, "nil store")
	}
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	if value == "" {
		return User{}, fault.New(op, fault.ErrInvalidInput, "empty lookup value")
	}

	users := pgIdent(s.schema, "users")

	var u User
	err := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM `+users+` WHERE `+column+` = $1`,
		value,
	).Scan(&u.ID, &u.Username, &u.UsernameNorm, &u.Email, &u.EmailNorm, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, fault.New(op, fault.ErrNotFound, "user not found")
		}
		return User{}, err
	}
	return u, nil
}

// Create hashes the password and inserts the user. Unique-constraint
// violations map to fault.ConflictError.
func (s *PostgresStore) Create(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.Create"

	if s == nil || s.pool == nil {
		return User{}, fault.New(op, fault.ErrInvalidInput, "nil store")
	}
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

	users := pgIdent(s.schema, "users")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+users+` (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Username, u.UsernameNorm, u.Email, u.EmailNorm, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return User{}, fault.ConflictError{Op: op, Field: field}
		}
		return User{}, err
	}

	return u, nil
}

// VerifyPassword reports whether plaintext matches the user's stored hash.
func (s *PostgresStore) VerifyPassword(ctx context.Context, user User, plaintext string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return VerifyPassword(plaintext, user.PasswordHash)
}

func pgIdent(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}

func pgClassifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != "23505" { // unique_violation
		return "", false
	}

	// Prefer stable schema constraint names. Fall back to heuristic substring
	// matching.
	c := strings.ToLower(strings.TrimSpace(pgErr.ConstraintName))

	switch c {
	case "uq_users_username_norm":
		return "username", true
	case "uq_users_email_norm":
		return "email", true
	default:
		switch {
		case strings.Contains(c, "username"):
			return "username", true
		case strings.Contains(c, "email"):
			return "email", true
		default:
			return "unique", true
		}
	}
}

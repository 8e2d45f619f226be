// Package identity is PostHub's credential store boundary.
//
// It owns user identity records (username, email, password hash), enforces
// uniqueness of username/email under case-insensitive normalization, and
// performs all password hashing and verification (Argon2id). Callers never
// see plaintext passwords beyond the single Create/VerifyPassword call.
//
// Two Store implementations exist:
//   - MemoryStore: process-local, used by tests and DB-less dev mode.
//   - PostgresStore: pgx-backed, relies on unique constraints to close the
//     check-then-create race between concurrent registrations.
package identity

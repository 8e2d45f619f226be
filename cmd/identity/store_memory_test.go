package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"posthub/cmd/internal/fault"
)

func TestMemoryStoreCreateAndFind(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	created, err := s.Create(ctx, CreateUserInput{
		Username: "TestUser",
		Email:    "User@Example.com",
		Password: "Password1!",
		Now:      now,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.PasswordHash == "" {
		t.Fatalf("incomplete user: %+v", created)
	}
	if created.UsernameNorm != "testuser" || created.EmailNorm != "user@example.com" {
		t.Fatalf("normalization broken: %+v", created)
	}

	// Lookup is case-insensitive per the normalization rule.
	byName, err := s.FindByUsername(ctx, "TESTUSER")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("lookup returned wrong user")
	}

	byEmail, err := s.FindByEmail(ctx, "user@example.COM")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("email lookup returned wrong user")
	}

	ok, err := s.VerifyPassword(ctx, byName, "Password1!")
	if err != nil || !ok {
		t.Fatalf("verify: ok=%v err=%v", ok, err)
	}
	ok, _ = s.VerifyPassword(ctx, byName, "WrongPassword1!")
	if ok {
		t.Fatalf("wrong password verified")
	}
}

func TestMemoryStoreFindAbsentIsNotFound(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	if _, err := s.FindByUsername(context.Background(), "nobody"); !fault.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, err := s.FindByEmail(context.Background(), "nobody@example.com"); !fault.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestMemoryStoreDuplicateConflicts(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "pw-one-1!"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Same username, different case.
	_, err := s.Create(ctx, CreateUserInput{Username: "ALICE", Email: "other@example.com", Password: "pw-two-2!"})
	if !fault.IsAlreadyExists(err) {
		t.Fatalf("expected already_exists for username, got %v", err)
	}

	// Same email, different username.
	_, err = s.Create(ctx, CreateUserInput{Username: "bob", Email: "Alice@Example.com", Password: "pw-two-2!"})
	if !fault.IsAlreadyExists(err) {
		t.Fatalf("expected already_exists for email, got %v", err)
	}
}

func TestMemoryStoreConcurrentCreateSingleWinner(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(ctx, CreateUserInput{
				Username: "racer",
				Email:    "racer@example.com",
				Password: "Password1!",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case fault.IsAlreadyExists(err):
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"posthub/cmd/identity"
	"posthub/cmd/internal/fault"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, *identity.MemoryStore) {
	t.Helper()
	store := identity.NewMemoryStore()
	return NewService(store, newTestManager(t, testTokenConfig()), discardLogger()), store
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        "correct horse battery",
		ConfirmPassword: "correct horse battery",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	regToken, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if regToken == "" {
		t.Fatal("register returned an empty token")
	}

	loginToken, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginToken == "" {
		t.Fatal("login returned an empty token")
	}

	m := newTestManager(t, testTokenConfig())
	claims, err := m.Verify(loginToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("verify login token: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("claims.Username = %q", claims.Username)
	}
	if claims.UserID == "" {
		t.Fatal("claims.UserID is empty")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, store := newTestService(t)

	in := registerInput()
	in.ConfirmPassword = "something else"

	_, err := svc.Register(context.Background(), in)
	if !fault.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
	if msg := fault.Message(err); msg != "Passwords do not match" {
		t.Fatalf("message = %q", msg)
	}

	// The mismatch is caught before the store is touched.
	if _, err := store.FindByUsername(context.Background(), "alice"); !fault.IsNotFound(err) {
		t.Fatalf("user must not exist after mismatch, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"same username", func(in *RegisterInput) { in.Email = "other@example.com" }},
		{"same email", func(in *RegisterInput) { in.Username = "alice2" }},
		{"same username different case", func(in *RegisterInput) {
			in.Email = "third@example.com"
			in.Username = "ALICE"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registerInput()
			tc.mutate(&in)
			_, err := svc.Register(ctx, in)
			if !fault.IsAlreadyExists(err) {
				t.Fatalf("expected AlreadyExists, got %v", err)
			}
			if msg := fault.Message(err); msg != "User already exists" {
				t.Fatalf("message = %q", msg)
			}
		})
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	if !fault.IsNotRegistered(err) {
		t.Fatalf("expected NotRegistered, got %v", err)
	}
	if msg := fault.Message(err); msg != "User is not registered" {
		t.Fatalf("message = %q", msg)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong password"})
	if !fault.IsAuthFailed(err) {
		t.Fatalf("expected AuthFailed, got %v", err)
	}
	if msg := fault.Message(err); msg != "Unable to authenticate" {
		t.Fatalf("message = %q", msg)
	}
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequireAuthRejectsMissingOrBadTokens(t *testing.T) {
	m := newTestManager(t, testTokenConfig())

	expired := newTestManager(t, testTokenConfig())
	staleToken, _, err := expired.Issue("user-1", "alice", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"bearer without token", "Bearer"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + staleToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}), m)

			req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if called {
				t.Fatal("handler must not run without a valid token")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Fatalf("Content-Type = %q", ct)
			}
		})
	}
}

func TestRequireAuthPassesClaims(t *testing.T) {
	m := newTestManager(t, testTokenConfig())
	token, _, err := m.Issue("user-7", "bob", time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got Claims
	var ok bool
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = ClaimsFromContext(r.Context())
	}), m)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !ok {
		t.Fatal("claims missing from context")
	}
	if got.UserID != "user-7" || got.Username != "bob" {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

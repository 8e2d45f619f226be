package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"posthub/cmd/internal/pipeline"
)

func setTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTHUB_TOKEN_SECRET_HEX", strings.Repeat("ab", 32))
	t.Setenv("POSTHUB_TOKEN_ISSUER", "posthub")
	t.Setenv("POSTHUB_TOKEN_AUDIENCE", "posthub-clients")
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	setTokenEnv(t)

	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	if cfg.RatePermits == 0 {
		cfg.RatePermits = 100
	}
	if cfg.RateWindow == 0 {
		cfg.RateWindow = time.Minute
	}

	a, err := New(cfg, NewLogger(cfg.LogLevel))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestHealthAndReadiness(t *testing.T) {
	a := newTestApp(t, Config{})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
	}
}

func TestReadinessRequiresDB(t *testing.T) {
	a := newTestApp(t, Config{ReadinessRequireDB: true})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("readyz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestOpenAPIDocServed(t *testing.T) {
	a := newTestApp(t, Config{})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/openapi.json")
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var doc struct {
		OpenAPI string          `json:"openapi"`
		Paths   json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI == "" || len(doc.Paths) == 0 {
		t.Fatal("descriptor missing openapi version or paths")
	}
}

func TestPipelineStampsCorrelationEverywhere(t *testing.T) {
	a := newTestApp(t, Config{})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.Header.Get(pipeline.CorrelationHeader) == "" {
		t.Fatal("correlation header missing on response")
	}
}

func TestPipelineRateLimits(t *testing.T) {
	a := newTestApp(t, Config{RatePermits: 2, RateWindow: time.Minute})
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	var last *http.Response
	for i := 0; i < 3; i++ {
		resp, err := srv.Client().Get(srv.URL + "/healthz")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if last != nil {
			_ = last.Body.Close()
		}
		last = resp
	}
	defer func() { _ = last.Body.Close() }()

	if last.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.StatusCode)
	}
	if last.Header.Get("Retry-After") == "" {
		t.Fatal("Retry-After missing on rate-limited response")
	}

	var body pipeline.ErrorBody
	if err := json.NewDecoder(last.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CorrelationID == "" {
		t.Fatal("correlationId missing from rate-limit body")
	}
}

func TestValidateSecurityConfig(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		wantOK bool
	}{
		{"valid", strings.Repeat("ab", 32), true},
		{"missing", "", false},
		{"not hex", strings.Repeat("zz", 32), false},
		{"too short", "abcd", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("POSTHUB_TOKEN_SECRET_HEX", tc.secret)
			err := ValidateSecurityConfig(Config{})
			if tc.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

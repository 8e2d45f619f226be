package pipeline

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	var seen string
	h := WithCorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	echoed := rr.Header().Get(CorrelationHeader)
	if echoed == "" {
		t.Fatalf("response must carry a correlation id")
	}
	if len(echoed) != 32 {
		t.Fatalf("generated id should be 32 hex chars, got %q", echoed)
	}
	if seen != echoed {
		t.Fatalf("context id %q != response header %q", seen, echoed)
	}
}

func TestWithCorrelationIDPropagatesInbound(t *testing.T) {
	t.Parallel()

	var seen string
	h := WithCorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set(CorrelationHeader, "client-supplied-id")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get(CorrelationHeader); got != "client-supplied-id" {
		t.Fatalf("inbound id not echoed: %q", got)
	}
	if seen != "client-supplied-id" {
		t.Fatalf("inbound id not propagated to context: %q", seen)
	}
}

func TestCorrelationIDOutsidePipeline(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := CorrelationID(req.Context()); got != "" {
		t.Fatalf("expected empty id outside the pipeline, got %q", got)
	}
}

package pipeline

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CorrelationHeader is the header carrying the per-request correlation id,
// in both directions. No other component may rename or duplicate it.
const CorrelationHeader = "X-Correlation-ID"

type correlationKey struct{}

// WithCorrelationID reads an inbound correlation id or generates a fresh
// one, sets it on the response header and stores it in the request context.
// This must be the outermost stage: every later stage, including rate
// admission and failure translation, formats responses with this id.
func WithCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(CorrelationHeader))
		if id == "" {
			id = newCorrelationID()
		}

		w.Header().Set(CorrelationHeader, id)
		ctx := context.WithValue(r.Context(), correlationKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CorrelationID returns the correlation id for the current request, or ""
// outside the pipeline.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// newCorrelationID returns a 32-char lowercase hex id (a UUID without
// dashes, matching the wire format clients already log).
func newCorrelationID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

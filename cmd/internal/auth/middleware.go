package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"posthub/cmd/internal/pipeline"
)

type claimsKey struct{}

// ClaimsFromContext returns the verified token claims for the current
// request, if the request passed through RequireAuth.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

// RequireAuth is the bearer-authentication boundary: it verifies the
// Authorization bearer token with the same manager that issues tokens and
// stores the claims in the request context. Requests without a valid token
// get 401 in the standard error body shape.
func RequireAuth(next http.Handler, tokens TokenManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			pipeline.WriteError(w, r, http.StatusUnauthorized, "Missing bearer token.")
			return
		}

		claims, err := tokens.Verify(token, time.Now().UTC())
		if err != nil {
			pipeline.WriteError(w, r, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

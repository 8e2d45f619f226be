package pipeline

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"posthub/cmd/internal/fault"
)

// Generic server-class messages. Internal detail is logged, never echoed.
const (
	msgInternal   = "An internal error occurred."
	msgUnexpected = "An unexpected error occurred."
)

// ErrorBody is the fixed error response schema. Serialized field names are
// part of the API contract.
type ErrorBody struct {
	CorrelationID string `json:"correlationId"`
	Message       string `json:"message"`
	StatusCode    int    `json:"statusCode"`
}

// HandlerFunc is an HTTP handler that reports failures as typed errors
// instead of writing error responses itself.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Translate adapts a HandlerFunc into an http.HandlerFunc, mapping any
// returned failure kind to a status code and the standard error body. It is
// the single place that performs this mapping, and the single place that
// logs the failure in full with the correlation id.
func Translate(log *slog.Logger, fn HandlerFunc) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		status, msg := classify(err)
		log.Error("request.fail",
			"err", err,
			"status", status,
			"method", r.Method,
			"path", r.URL.Path,
			"correlation_id", CorrelationID(r.Context()),
		)
		WriteError(w, r, status, msg)
	}
}

// WithRecovery is the last-resort boundary: a panic anywhere downstream is
// logged with a stack trace and answered as an unclassified server error.
// No failure escapes the process unhandled.
func WithRecovery(next http.Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.Error("request.panic",
				"panic", rec,
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
				"correlation_id", CorrelationID(r.Context()),
			)
			WriteError(w, r, http.StatusInternalServerError, msgUnexpected)
		}()
		next.ServeHTTP(w, r)
	})
}

// WriteError writes the standard error body for the current request.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{
		CorrelationID: CorrelationID(r.Context()),
		Message:       message,
		StatusCode:    status,
	})
}

// classify maps a failure kind to status code and user-visible message.
// Client-class failures echo their own message; server-class failures get a
// generic one so internals never leak.
func classify(err error) (int, string) {
	switch {
	case fault.IsNotFound(err):
		return http.StatusNotFound, userMessage(err, "Not found.")
	case fault.IsAlreadyExists(err),
		fault.IsNotRegistered(err),
		fault.IsAuthFailed(err),
		fault.IsInvalidInput(err):
		return http.StatusBadRequest, userMessage(err, "Invalid request.")
	case fault.IsInternal(err):
		return http.StatusInternalServerError, msgInternal
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}

func userMessage(err error, def string) string {
	if msg := fault.Message(err); msg != "" {
		return msg
	}
	return def
}

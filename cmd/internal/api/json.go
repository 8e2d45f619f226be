package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"posthub/cmd/internal/fault"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MiB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	const op = "api.decodeJSON"

	if r.Body == nil {
		return fault.New(op, fault.ErrInvalidInput, "Request body is required.")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fault.New(op, fault.ErrInvalidInput, "Request body is too large.")
		}
		return fault.New(op, fault.ErrInvalidInput, "Invalid request body.")
	}
	// Ensure there is no extra data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fault.New(op, fault.ErrInvalidInput, "Invalid request body.")
	}
	return nil
}

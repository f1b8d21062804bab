package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"genrelay/internal/relay"
	"genrelay/pkg/types"
)

// Client-facing messages.
const (
	msgInvalidMessage = "Message is missing or has an invalid format."
	msgNoFile         = "No file was uploaded"
	msgTooLarge       = "Request body is too large"
	msgInternal       = "An error occurred"
)

// statusFor maps relay errors to HTTP status codes and client messages.
// Anything not a validation error is an internal failure.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, relay.ErrEmptyMessage):
		return http.StatusBadRequest, msgInvalidMessage
	case errors.Is(err, relay.ErrNoFile):
		return http.StatusBadRequest, msgNoFile
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// writeJSON writes v as the whole response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload. detail is omitted when empty.
func writeJSONError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, types.ErrorResponse{Message: msg, Error: detail})
}

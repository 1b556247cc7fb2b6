// Package api contains the HTTP handlers for the PetBnB API server.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/petbnb/petbnb/internal/middleware"
)

// Error codes returned in API error responses.
const (
	// ErrCodeValidation indicates the request parameters failed validation.
	ErrCodeValidation = "validation_error"
	// ErrCodeUpstream indicates an upstream provider (geocoder) failed.
	ErrCodeUpstream = "upstream_error"
	// ErrCodeNotFound indicates the requested resource does not exist.
	ErrCodeNotFound = "not_found"
	// ErrCodeInternal indicates an unexpected server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeRateLimited indicates the client exceeded a rate limit.
	ErrCodeRateLimited = "rate_limited"
)

// ErrorBody is the inner error object in an API error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for all API error responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteError writes a JSON error response and records the error code on the
// request context for access logging.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	middleware.SetErrorCode(r.Context(), code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorBody{Code: code, Message: message}}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// writeJSON writes a JSON success response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/residencyhq/intake/auth"
	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/models"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		next(w, r)

		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// DomainError maps engine error sentinels to HTTP error responses.
// Unrecognized errors are logged and reported as a generic 500 so
// internals never leak to the client.
func DomainError(w http.ResponseWriter, err error) {
	switch err {
	case models.ErrNotFound:
		ErrorResponse(w, http.StatusNotFound, "Not found")
	case models.ErrInvalidEmail:
		ErrorResponse(w, http.StatusBadRequest, "Please enter a valid email address")
	case models.ErrAlreadySubmitted:
		ErrorResponse(w, http.StatusConflict, "Application already submitted")
	case models.ErrInvalidState:
		ErrorResponse(w, http.StatusConflict, "Operation not permitted in current state")
	case models.ErrIncomplete:
		ErrorResponse(w, http.StatusUnprocessableEntity, "Required questions are unanswered")
	case models.ErrNoHomesAvailable:
		ErrorResponse(w, http.StatusServiceUnavailable, "No homes available for matching")
	default:
		slog.Error("internal error", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// IsAdmin reports whether the request carries a valid admin session
// cookie.
func IsAdmin(r *http.Request, cfg cliparse.Config) bool {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil {
		return false
	}
	return auth.ValidateSession(cookie.Value, cfg.AdminSecret, cfg.SessionSalt) == nil
}

// RequireAdmin rejects requests without a valid admin session.
func RequireAdmin(cfg cliparse.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r, cfg) {
			ErrorResponse(w, http.StatusUnauthorized, "Admin session required")
			return
		}
		next(w, r)
	}
}

// CORS middleware allows cross-origin requests from the frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

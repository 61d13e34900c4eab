// Package apierr writes JSON error and success responses and logs
// server-side failures. It is the single place that turns the error
// taxonomy (unauthenticated, not found, store/upload failures) into
// HTTP statuses, so handlers stay small.
package apierr

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// payload is the wire shape for error responses.
type payload struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, payload{Error: msg})
}

// Unauthorized writes a 401. Used when a mutating operation is
// attempted without a signed-in principal; the caller must not have
// touched the store before calling this.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, payload{Error: "sign in required"})
}

// NotFound writes a 404 for a missing record on a direct page load.
func NotFound(w http.ResponseWriter, what string) {
	JSON(w, http.StatusNotFound, payload{Error: what + " not found"})
}

// ErrorLogger logs server-side failures with request context and
// writes the corresponding 5xx response.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps a zap logger for handler use.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// ServerError logs err and answers 500. msg is the operator-facing
// description of what failed, not the client-facing body.
func (l *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	l.log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	JSON(w, http.StatusInternalServerError, payload{Error: "internal error"})
}

// StoreUnavailable logs err and answers 502. Used when the record or
// blob store collaborator fails; the operation has been rolled back or
// never applied.
func (l *ErrorLogger) StoreUnavailable(w http.ResponseWriter, r *http.Request, err error, msg string) {
	l.log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	JSON(w, http.StatusBadGateway, payload{Error: "service temporarily unavailable"})
}

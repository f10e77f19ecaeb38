// Package errs defines the service error taxonomy and its mapping onto HTTP
// responses.
package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error is a service-level failure with a fixed HTTP status. Details carry
// request context surfaced to the client; the wrapped cause stays
// server-side.
type Error struct {
	Status  int
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Unavailable marks a provider transport failure (503).
func Unavailable(message string, cause error, details map[string]any) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Message: message, Details: details, cause: cause}
}

// Validation marks malformed client input or a rejected single-row commit (400).
func Validation(message string, cause error, details map[string]any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Details: details, cause: cause}
}

// NotFound marks a natural-key lookup miss (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Internal marks anything unanticipated (500). The cause is never leaked to
// the client.
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error", cause: cause}
}

// Body is the JSON error envelope returned on every error response.
type Body struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HTTPHandler converts errors into (status, body) pairs for
// httpx.SetErrorHandlerCtx. Unknown error types collapse into a generic 500.
func HTTPHandler(_ context.Context, err error) (int, any) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status, Body{Status: "error", Message: svcErr.Message, Details: svcErr.Details}
	}
	return http.StatusInternalServerError, Body{Status: "error", Message: "Internal server error"}
}

// errors.go - Domain errors that know their HTTP status
//
// Services return these values; the error middleware is the only place that
// turns them into response bodies.

package apierrors

import (
	"errors"
	"net/http"
)

// Error is a failure with an explicit HTTP status and a client-safe message.
type Error struct {
	Status  int    // HTTP status code sent to the client
	Message string // Client-visible message
	Err     error  // Optional cause, logged but never returned
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on status and message so sentinel values work with errors.Is
// even after being wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// New builds an Error with the given status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// Internal hides err behind an opaque 500.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: InternalMessage, Err: err}
}

// InternalMessage is the only text a client ever sees for a 500.
const InternalMessage = "an unexpected error occurred, please try again"

var (
	ErrUsernameTaken      = BadRequest("username is already in use")
	ErrInvalidCredentials = Unauthorized("invalid username or password")
	ErrUnauthenticated    = Unauthorized("missing or invalid token")
	ErrCommandNotFound    = BadRequest("command not found or not owned by user")
	ErrTooManyRequests    = New(http.StatusTooManyRequests, "too many requests, slow down")
)

// StatusOf returns the status carried by err, or 0 when err is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "validation_failed"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeServer       = "server_error"
)

// Error is the transport-facing error. Status and Code drive the response,
// Err carries the client-safe message, Fields holds per-field validation detail.
type Error struct {
	Status int
	Code   string
	Err    error
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(fields map[string]string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   CodeValidation,
		Err:    errors.New("validation failed"),
		Fields: fields,
	}
}

// ValidationField is shorthand for a single-field validation failure.
func ValidationField(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, errors.New("authentication required"))
}

func Forbidden() *Error {
	return New(http.StatusForbidden, CodeForbidden, errors.New("forbidden"))
}

func NotFound(entity string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", entity))
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, CodeConflict, errors.New(msg))
}

// Server hides cause from the client. Callers log cause before returning.
func Server() *Error {
	return New(http.StatusInternalServerError, CodeServer, errors.New("internal server error"))
}

// As extracts an *Error from err. Anything unclassified becomes a server error.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e
	}
	return Server()
}

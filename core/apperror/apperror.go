package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an application error.
type Type string

const (
	// TypeNotFound indicates the requested entity does not exist.
	TypeNotFound Type = "NOT_FOUND"
	// TypeValidation indicates malformed input or filters.
	TypeValidation Type = "VALIDATION"
	// TypeProviderUnavailable indicates an external metadata provider failed.
	// It is logged and degraded, never returned to API callers.
	TypeProviderUnavailable Type = "PROVIDER_UNAVAILABLE"
	// TypeConflict indicates a uniqueness or state conflict.
	TypeConflict Type = "CONFLICT"
	// TypeInternal indicates an unexpected failure.
	TypeInternal Type = "INTERNAL"
)

// Error is an application error carrying a Type.
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new application error.
func New(t Type, message string) error {
	return &Error{Type: t, Message: message}
}

// Wrap wraps err with an application error.
func Wrap(t Type, message string, err error) error {
	return &Error{Type: t, Message: message, Err: err}
}

// NotFound creates a not found error.
func NotFound(format string, args ...any) error {
	return New(TypeNotFound, fmt.Sprintf(format, args...))
}

// Validation creates a validation error.
func Validation(format string, args ...any) error {
	return New(TypeValidation, fmt.Sprintf(format, args...))
}

// TypeOf returns the Type of the first application error in err's chain,
// or TypeInternal when there is none.
func TypeOf(err error) Type {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// Is reports whether err carries the given Type.
func Is(err error, t Type) bool {
	return err != nil && TypeOf(err) == t
}

// StatusCode maps err to an HTTP status code.
func StatusCode(err error) int {
	switch TypeOf(err) {
	case TypeNotFound:
		return http.StatusNotFound
	case TypeValidation:
		return http.StatusBadRequest
	case TypeConflict:
		return http.StatusConflict
	case TypeProviderUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

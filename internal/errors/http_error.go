package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func BadRequest(format string, args ...any) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Validation(fields []FieldError) *HTTPError {
	return &HTTPError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func Unauthorized(msg string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, msg)
}

func NotFound(resource string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, resource+" not found")
}

func Conflict(format string, args ...any) *HTTPError {
	return NewHTTPError(http.StatusConflict, fmt.Sprintf(format, args...))
}

// Internal hides the cause from clients; it stays reachable through Unwrap for logging.
func Internal(err error) *HTTPError {
	return &HTTPError{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

// Wrap keeps an existing *HTTPError as is and turns anything else into Internal.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	return Internal(err)
}

// As extracts the *HTTPError carried by err, or nil.
func As(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

func StatusCode(err error) int {
	if httpErr := As(err); httpErr != nil {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

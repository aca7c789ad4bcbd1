// Package apierrors defines the error taxonomy surfaced to API callers.
// Validation and conflict errors carry enough detail to correct the input;
// internal errors hide storage internals behind a generic message.
package apierrors

import (
	"fmt"
	"net/http"
)

// Code identifies an error category on the wire.
type Code string

const (
	CodeValidation           Code = "validation_error"
	CodeInvalidCredentials   Code = "invalid_credentials"
	CodeUnauthorized         Code = "unauthorized"
	CodeAlreadyAuthenticated Code = "already_authenticated"
	CodeConflict             Code = "conflict"
	CodeNotFound             Code = "not_found"
	CodeInternal             Code = "internal_error"
)

// APIError is an error with a wire code, an HTTP status and, for validation
// failures, per-field messages.
type APIError struct {
	Code       Code
	Message    string
	Fields     map[string]string
	HTTPStatus int
	cause      error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewValidation reports field-scoped, client-correctable input errors.
func NewValidation(fields map[string]string) *APIError {
	return &APIError{
		Code:       CodeValidation,
		Message:    "invalid input",
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidCredentials is deliberately identical for unknown email and
// wrong password to prevent account enumeration.
func NewInvalidCredentials() *APIError {
	return &APIError{
		Code:       CodeInvalidCredentials,
		Message:    "invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

func NewUnauthorized() *APIError {
	return &APIError{
		Code:       CodeUnauthorized,
		Message:    "authentication required",
		HTTPStatus: http.StatusUnauthorized,
	}
}

func NewAlreadyAuthenticated() *APIError {
	return &APIError{
		Code:       CodeAlreadyAuthenticated,
		Message:    "already authenticated, log out first",
		HTTPStatus: http.StatusConflict,
	}
}

func NewEmailIsTaken(email string) *APIError {
	return &APIError{
		Code:       CodeConflict,
		Message:    fmt.Sprintf("an account with email %s already exists", email),
		HTTPStatus: http.StatusConflict,
	}
}

func NewConflict(message string) *APIError {
	return &APIError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func NewNotFound(message string) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

func NewInternal(cause error) *APIError {
	return &APIError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

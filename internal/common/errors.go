package common

import (
	"errors"
	"net/http"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// ValidationError reports a 400 failure carrying field-level messages.
func ValidationError(message string, fieldErrors []string) *AppError {
	return &AppError{
		Code:       "VALIDATION",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"errors": fieldErrors},
	}
}

// Unauthorized reports a failed anti-forgery check.
func Unauthorized(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusForbidden}
}

// NotFound reports a missing product or variation.
func NotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}

// Unavailable reports an out-of-stock variation or an impossible attribute combination.
func Unavailable(message string) *AppError {
	return &AppError{Code: "UNAVAILABLE", Message: message, HTTPStatus: http.StatusBadRequest}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

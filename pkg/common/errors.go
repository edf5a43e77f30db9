package common

import (
	"fmt"
	"net/http"
)

// AppError is an application error that maps to an HTTP status code
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, StatusCode: http.StatusNotFound}
}

// NewBadRequestError creates a 400 error
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: message, StatusCode: http.StatusBadRequest}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message, StatusCode: http.StatusUnauthorized}
}

// NewConflictError creates a 409 error
func NewConflictError(message string) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, StatusCode: http.StatusConflict}
}

// NewInternalError creates a 500 error wrapping an underlying cause
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: message, StatusCode: http.StatusInternalServerError, Err: err}
}

// Package errors provides custom error types for the StockFinder API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "User not known or password incorrect", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Dataset errors. A failed load is fatal for the session; the server refuses
// to start rather than serve partial views.
var (
	ErrDatasetUnavailable = &AppError{Code: "DATASET_UNAVAILABLE", Message: "Dataset could not be loaded", StatusCode: http.StatusServiceUnavailable}
)

// Instrument errors.
var (
	ErrInstrumentNotFound = &AppError{Code: "INSTRUMENT_NOT_FOUND", Message: "Instrument not found", StatusCode: http.StatusNotFound}
)

// Screener errors.
var (
	ErrInvalidRange = &AppError{Code: "INVALID_RANGE", Message: "Range minimum exceeds maximum", StatusCode: http.StatusBadRequest}
)

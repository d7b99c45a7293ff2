package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the domain error the API error was built from
func (e *APIError) Unwrap() error {
	return e.cause
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes
const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeNotFound               = "NOT_FOUND"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeRateLimitExceeded      = "RATE_LIMIT_EXCEEDED"
	CodeInternal               = "INTERNAL_SERVER_ERROR"
	CodeSourceUnavailable      = "SOURCE_UNAVAILABLE"
	CodeWorkshopColumnNotFound = "WORKSHOP_COLUMN_NOT_FOUND"
	CodeUnknownWorkshop        = "UNKNOWN_WORKSHOP"
)

// Predefined error types for common scenarios
var (
	ErrUnauthorized      = New(http.StatusUnauthorized, CodeUnauthorized, "Access code required")
	ErrNotFound          = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")
	ErrInternalServer    = New(http.StatusInternalServerError, CodeInternal, "Internal server error")
)

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NotFoundError creates a not found error with details
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", resource), resource)
}

// UnknownWorkshop reports a workshop selector outside the catalog
func UnknownWorkshop(raw string, cause error) *APIError {
	e := NewWithDetails(http.StatusBadRequest, CodeUnknownWorkshop,
		fmt.Sprintf("unknown workshop %q", raw),
		ValidationError{Field: "workshop", Message: "must be 1-6 or todos"})
	e.cause = cause
	return e
}

// SourceUnavailable reports that the response sheet could not be loaded
func SourceUnavailable(cause error) *APIError {
	e := New(http.StatusBadGateway, CodeSourceUnavailable, "The response sheet could not be loaded")
	e.cause = cause
	return e
}

// WorkshopColumnNotFound reports a workshop whose attendance column is absent
// from the sheet, with the columns that looked like workshop columns.
func WorkshopColumnNotFound(workshop int, candidates []string, cause error) *APIError {
	if candidates == nil {
		candidates = []string{}
	}
	e := NewWithDetails(http.StatusNotFound, CodeWorkshopColumnNotFound,
		fmt.Sprintf("no column found for Taller %d", workshop),
		map[string]interface{}{
			"workshop":   workshop,
			"candidates": candidates,
		})
	e.cause = cause
	return e
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/LinFrancis/escuela-aucca/internal/infrastructure"
)

// Common error types following RFC 7807
const (
	TypeValidation   = "/errors/validation"
	TypeNotFound     = "/errors/not-found"
	TypeUnauthorized = "/errors/unauthorized"
	TypeRateLimit    = "/errors/rate-limit"
	TypeInternal     = "/errors/internal"
	TypeTimeout      = "/errors/timeout"
	TypeMethod       = "/errors/method-not-allowed"
)

// Domain-specific error types
const (
	TypeSourceUnavailable      = "/errors/data/source-unavailable"
	TypeWorkshopColumnNotFound = "/errors/data/workshop-column-not-found"
	TypeUnknownWorkshop        = "/errors/data/unknown-workshop"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())
	problem := h.ErrorToProblem(err, r)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem.WithExtension("trace_id", traceID)
	if h.includeStack && problem.Status >= http.StatusInternalServerError {
		problem.WithExtension("stack", getStackTrace())
	}

	WriteProblem(w, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeNetwork, ErrTypeParsing:
			return NewProblemDetails(http.StatusBadGateway, TypeSourceUnavailable,
				"Source Unavailable", appErr.Message, r.URL.Path)
		case ErrTypeValidation:
			return NewProblemDetails(http.StatusBadRequest, TypeValidation,
				"Validation Failed", appErr.Message, r.URL.Path)
		case ErrTypeNotFound:
			return NewProblemDetails(http.StatusNotFound, TypeNotFound,
				"Resource Not Found", appErr.Message, r.URL.Path)
		case ErrTypeAccess:
			return NewProblemDetails(http.StatusUnauthorized, TypeUnauthorized,
				"Unauthorized", appErr.Message, r.URL.Path)
		}
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing your request",
		r.URL.Path,
	)
}

// apiErrorToProblem converts APIError to ProblemDetails
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case CodeValidationFailed:
		problemType = TypeValidation
	case CodeNotFound:
		problemType = TypeNotFound
	case CodeUnauthorized:
		problemType = TypeUnauthorized
	case CodeRateLimitExceeded:
		problemType = TypeRateLimit
	case CodeSourceUnavailable:
		problemType = TypeSourceUnavailable
	case CodeWorkshopColumnNotFound:
		problemType = TypeWorkshopColumnNotFound
	case CodeUnknownWorkshop:
		problemType = TypeUnknownWorkshop
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	switch details := apiErr.Details.(type) {
	case nil:
	case map[string]interface{}:
		for k, v := range details {
			problem.WithExtension(k, v)
		}
	default:
		problem.WithExtension("details", details)
	}

	return problem
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := h.ErrorToProblem(NewNotFoundError("route "+r.URL.Path), r).
		WithExtension("trace_id", infrastructure.GetTraceID(r.Context()))

	WriteProblem(w, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethod,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", infrastructure.GetTraceID(r.Context()))

	WriteProblem(w, problem)
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

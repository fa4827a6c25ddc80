package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/darkodi/alias-buddy/internal/model"
)

// AppError represents an application error with HTTP context
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    string            `json:"details,omitempty"`
	Fields     model.FieldErrors `json:"fields,omitempty"`
	StatusCode int               `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// ErrorResponse is the JSON response format for errors
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// WriteJSON writes the error as JSON response
func (e *AppError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: e})
}

// ============================================================
// ERROR CONSTRUCTORS
// ============================================================

// Request Errors (400)
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func InvalidJSON(details string) *AppError {
	return &AppError{
		Code:       "INVALID_JSON",
		Message:    "Invalid JSON in request body",
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

func MissingField(field string) *AppError {
	return &AppError{
		Code:       "MISSING_FIELD",
		Message:    fmt.Sprintf("Required field '%s' is missing", field),
		StatusCode: http.StatusBadRequest,
	}
}

func UnsupportedFormat(format string) *AppError {
	return &AppError{
		Code:       "UNSUPPORTED_FORMAT",
		Message:    fmt.Sprintf("Export format '%s' is not supported", format),
		Details:    "use csv or json",
		StatusCode: http.StatusBadRequest,
	}
}

// Not Found Errors (404)
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func UnknownPlatform(platform string) *AppError {
	return &AppError{
		Code:       "UNKNOWN_PLATFORM",
		Message:    fmt.Sprintf("Share platform '%s' not found", platform),
		StatusCode: http.StatusNotFound,
	}
}

// Validation Errors (422)
func ValidationFailed(fields model.FieldErrors) *AppError {
	return &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "The request has invalid fields",
		Fields:     fields,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// Rate Limit Error (429)
func RateLimitExceeded() *AppError {
	return &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests, please try again later",
		StatusCode: http.StatusTooManyRequests,
	}
}

// Server Errors (500)
func Internal(details string) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An internal server error occurred",
		Details:    details,
		StatusCode: http.StatusInternalServerError,
	}
}

func StorageError() *AppError {
	return &AppError{
		Code:       "STORAGE_ERROR",
		Message:    "A storage error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}

// Unavailable (503)
func Unavailable(details string) *AppError {
	return &AppError{
		Code:       "UNAVAILABLE",
		Message:    "Service is unavailable",
		Details:    details,
		StatusCode: http.StatusServiceUnavailable,
	}
}

package models

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured API error response
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes that tell specific error kinds apart. The compensation paths in
// the services use them to tell "cover image missing" apart from every other
// not-found.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeAlbumNotFound    = "ALBUM_NOT_FOUND"
	CodeMusicFileMissing = "MUSIC_FILE_NOT_FOUND"
	CodeImageFileMissing = "IMAGE_FILE_NOT_FOUND"
	CodeQueueNotFound    = "QUEUE_NOT_FOUND"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeInvalidStart     = "INVALID_START"
)

// Common API errors
var (
	ErrUnauthorized = &APIError{
		Code:       "UNAUTHORIZED",
		Message:    "Authentication is required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrInvalidToken = &APIError{
		Code:       "UNAUTHORIZED",
		Message:    "The session token is invalid or expired",
		StatusCode: http.StatusUnauthorized,
	}

	ErrForbidden = &APIError{
		Code:       "FORBIDDEN",
		Message:    "You do not have permission to modify this resource",
		StatusCode: http.StatusForbidden,
	}

	ErrBadRequest = &APIError{
		Code:       "BAD_REQUEST",
		Message:    "The request was invalid",
		StatusCode: http.StatusBadRequest,
	}

	ErrInvalidCredentials = &APIError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid credentials",
		StatusCode: http.StatusBadRequest,
	}

	ErrInternalServer = &APIError{
		Code:       "INTERNAL_ERROR",
		Message:    "An internal server error occurred",
		StatusCode: http.StatusInternalServerError,
	}

	ErrInvalidRangeUnit = &APIError{
		Code:       "INVALID_RANGE",
		Message:    "Only byte ranges are supported",
		StatusCode: http.StatusBadRequest,
	}

	ErrMalformedRange = &APIError{
		Code:       "INVALID_RANGE",
		Message:    "The Range header is malformed",
		StatusCode: http.StatusBadRequest,
	}
)

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewValidationError creates a validation error with details
func NewValidationError(details any) *APIError {
	return &APIError{
		Code:       "VALIDATION_ERROR",
		Message:    "The request failed validation",
		Details:    details,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewNotFoundError creates a not found error for a specific resource
func NewNotFoundError(resource string, id int64) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s '%d' was not found", resource, id),
		StatusCode: http.StatusNotFound,
	}
}

// NewNotFoundErrorWithCode is NewNotFoundError with a caller-chosen code, for
// the not-found kinds the services compensate on.
func NewNotFoundErrorWithCode(code, resource string, id int64) *APIError {
	return &APIError{
		Code:       code,
		Message:    fmt.Sprintf("%s '%d' was not found", resource, id),
		StatusCode: http.StatusNotFound,
	}
}

// NewAlreadyExistsError creates a conflict-style error; per the boundary
// contract duplicates map to 400, not 409.
func NewAlreadyExistsError(resource, key string) *APIError {
	return &APIError{
		Code:       CodeAlreadyExists,
		Message:    fmt.Sprintf("%s '%s' already exists", resource, key),
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidStartError reports a range start at or past the end of the file.
func NewInvalidStartError(start, size int64) *APIError {
	return &APIError{
		Code:       CodeInvalidStart,
		Message:    fmt.Sprintf("range start %d is beyond the file size %d", start, size),
		StatusCode: http.StatusRequestedRangeNotSatisfiable,
	}
}

// HasCode reports whether err is an APIError carrying the given code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsNotFound reports whether err is any of the not-found kinds.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(err *APIError) ErrorResponse {
	return ErrorResponse{Error: err}
}

package models

import "errors"

// APIError represents a standardized error response format for the API.
// @Description APIError is returned on every failed request: a human-readable message, an application-specific code and optional details.
type APIError struct {
	Error   string      `json:"error"`             // Human-readable message describing the error
	Code    string      `json:"code"`              // Application-specific error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Details interface{} `json:"details,omitempty"` // Optional field for additional error details
}

// Predefined application-specific error codes
const (
	// Generic Errors
	ErrorCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorCodeRequestTimeout      = "REQUEST_TIMEOUT"

	// Input Validation & Data Errors
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeInvalidJSON     = "INVALID_JSON"
	ErrorCodeInvalidIDFormat = "INVALID_ID_FORMAT"

	// Authentication
	ErrorCodeUnauthorized       = "UNAUTHORIZED"
	ErrorCodeForbidden          = "FORBIDDEN"
	ErrorCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Resource Specific Errors
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeBookingNotFound = "BOOKING_NOT_FOUND"
	ErrorCodeUserNotFound    = "USER_NOT_FOUND"
	ErrorCodeConflict        = "CONFLICT_ERROR"

	// Upstream platform
	ErrorCodeUpstreamUnreachable = "UPSTREAM_UNREACHABLE"
	ErrorCodeUpstreamEmpty       = "UPSTREAM_EMPTY"
	ErrorCodeNormalization       = "NORMALIZATION_ERROR"
)

// Error kinds shared by the aggregation pipeline. Concrete errors wrap one of
// these so callers can branch with errors.Is.
var (
	// ErrUpstreamUnreachable covers transport failures and non-2xx responses.
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	// ErrUpstreamEmpty is a well-formed upstream answer with zero results.
	ErrUpstreamEmpty = errors.New("upstream returned no results")
	// ErrNotFound means the identifier was absent after a successful query.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed caller input.
	ErrValidation = errors.New("validation error")
	// ErrNormalization marks a raw record that cannot be normalized (missing uuid).
	ErrNormalization = errors.New("normalization error")
)

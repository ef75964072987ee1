package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind represents the category of use case error.
// Each kind maps to exactly one HTTP status code; this table is the single
// source of truth for status codes, no handler hardcodes one.
type ErrorKind int

const (
	// ErrorKindBadRequest represents structural request problems:
	// missing fields, wrong shapes, malformed bodies.
	// Maps to HTTP 400 Bad Request.
	ErrorKindBadRequest ErrorKind = iota

	// ErrorKindValidation represents field-level format violations
	// (id, email, number formats).
	// Maps to HTTP 422 Unprocessable Entity.
	ErrorKindValidation

	// ErrorKindNotFound represents entity not found errors.
	// Maps to HTTP 404 Not Found.
	ErrorKindNotFound

	// ErrorKindConflict represents business rule violations and
	// duplicate-key conflicts.
	// Maps to HTTP 409 Conflict.
	ErrorKindConflict

	// ErrorKindUnauthorized represents missing, expired or malformed
	// credentials. Maps to HTTP 401 Unauthorized.
	ErrorKindUnauthorized

	// ErrorKindForbidden represents policy denials for a valid credential.
	// Maps to HTTP 403 Forbidden.
	ErrorKindForbidden

	// ErrorKindIntegration represents failures of external collaborators
	// (webhooks, brokers). Maps to HTTP 503 Service Unavailable.
	ErrorKindIntegration

	// ErrorKindInternal represents unexpected internal errors.
	// Maps to HTTP 500 Internal Server Error.
	ErrorKindInternal
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindBadRequest:
		return "BAD_REQUEST"
	case ErrorKindValidation:
		return "VALIDATION"
	case ErrorKindNotFound:
		return "NOT_FOUND"
	case ErrorKindConflict:
		return "CONFLICT"
	case ErrorKindUnauthorized:
		return "UNAUTHORIZED"
	case ErrorKindForbidden:
		return "FORBIDDEN"
	case ErrorKindIntegration:
		return "INTEGRATION"
	case ErrorKindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatus returns the HTTP status code for this error kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrorKindBadRequest:
		return http.StatusBadRequest
	case ErrorKindValidation:
		return http.StatusUnprocessableEntity
	case ErrorKindNotFound:
		return http.StatusNotFound
	case ErrorKindConflict:
		return http.StatusConflict
	case ErrorKindUnauthorized:
		return http.StatusUnauthorized
	case ErrorKindForbidden:
		return http.StatusForbidden
	case ErrorKindIntegration:
		return http.StatusServiceUnavailable
	case ErrorKindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// UseCaseError represents an error from a use case execution.
// Errors are tagged values carrying a kind, never ad-hoc types matched by
// message string.
type UseCaseError struct {
	Kind    ErrorKind      `json:"kind"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *UseCaseError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Kind.String(), e.Code, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *UseCaseError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// WithDetail adds a detail to the error and returns it for chaining.
func (e *UseCaseError) WithDetail(key string, value any) *UseCaseError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// BadRequestError creates a new structural-request error.
// Maps to HTTP 400 Bad Request.
func BadRequestError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindBadRequest, Code: code, Message: message, Details: details}
}

// ValidationError creates a new field-format error.
// Maps to HTTP 422 Unprocessable Entity.
func ValidationError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindValidation, Code: code, Message: message, Details: details}
}

// NotFoundError creates a new not found error.
// Maps to HTTP 404 Not Found.
func NotFoundError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindNotFound, Code: code, Message: message, Details: details}
}

// ConflictError creates a new business rule / duplicate conflict error.
// Maps to HTTP 409 Conflict.
func ConflictError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindConflict, Code: code, Message: message, Details: details}
}

// UnauthorizedError creates a new authentication error.
// Maps to HTTP 401 Unauthorized.
func UnauthorizedError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindUnauthorized, Code: code, Message: message, Details: details}
}

// ForbiddenError creates a new policy-denial error.
// Maps to HTTP 403 Forbidden.
func ForbiddenError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindForbidden, Code: code, Message: message, Details: details}
}

// IntegrationError creates a new external-collaborator failure error.
// Maps to HTTP 503 Service Unavailable.
func IntegrationError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindIntegration, Code: code, Message: message, Details: details}
}

// InternalError creates a new internal error.
// Maps to HTTP 500 Internal Server Error.
func InternalError(code, message string, details map[string]any) *UseCaseError {
	return &UseCaseError{Kind: ErrorKindInternal, Code: code, Message: message, Details: details}
}

// Common error codes for reuse across use cases
const (
	// Structural / validation error codes
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeRequired      = "REQUIRED"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeInvalidEmail  = "INVALID_EMAIL"
	ErrCodeInvalidID     = "INVALID_ID"
	ErrCodeInvalidRole   = "INVALID_ROLE"
	ErrCodeNotNumeric    = "NOT_NUMERIC"
	ErrCodeNoUpdatable   = "NO_UPDATABLE_FIELD"
	ErrCodeNotArray      = "NOT_ARRAY"

	// Conflict error codes
	ErrCodeAlreadyExists  = "ALREADY_EXISTS"
	ErrCodeDuplicateEmail = "DUPLICATE_EMAIL"
	ErrCodeInvalidState   = "INVALID_STATE"
	ErrCodeCommitFailed   = "COMMIT_FAILED"

	// Not found error codes
	ErrCodeEntityNotFound  = "ENTITY_NOT_FOUND"
	ErrCodeAccountNotFound = "ACCOUNT_NOT_FOUND"
	ErrCodeTenantNotFound  = "TENANT_NOT_FOUND"

	// Authentication / authorization error codes
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccessDenied       = "ACCESS_DENIED"

	// Integration error codes
	ErrCodeIntegrationFailure = "INTEGRATION_FAILURE"
)

// AsUseCaseError extracts a *UseCaseError from an error chain, if present.
func AsUseCaseError(err error) (*UseCaseError, bool) {
	var uce *UseCaseError
	if errors.As(err, &uce) {
		return uce, true
	}
	return nil, false
}

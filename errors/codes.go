package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication/Authorization errors
const (
	// ErrCodeInvalidCredentials indicates a failed login attempt.
	// Deliberately shared between unknown-email and wrong-password cases.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized indicates the request requires authentication.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the authenticated caller lacks a required role.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeInvalidToken indicates the presented token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenExpired indicates the presented token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the request body failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabaseError indicates a storage-layer failure.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

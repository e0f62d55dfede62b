// Package errors provides unified error handling for the identity service.
// It implements a structured error type with machine-readable codes and
// HTTP status mapping, so handlers and middleware can translate any failure
// into a consistent JSON response.
package errors

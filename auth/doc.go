// Package auth defines the authentication domain types shared across the
// identity service: the immutable Identity derived from a verified token or
// a persisted user record, and the role-to-scope mapping consumed by
// authorization.
//
// Token signing and validation live in auth/jwt, password hashing in
// auth/password, and request-scoped principal propagation in auth/authctx.
package auth

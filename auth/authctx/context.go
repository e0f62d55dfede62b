// Package authctx propagates the request-scoped authentication principal.
//
// The authentication filter writes exactly one Principal per request; the
// authorization policy and handlers read it. A request without a principal
// is anonymous. The principal lives only in the request's context and is
// never shared across requests.
package authctx

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authentication result attached to one request.
// It is read-only to everything downstream of the authentication filter.
type Principal struct {
	// Subject is the authenticated user id.
	Subject uuid.UUID
	// Email is the user's email, empty for refresh-token principals.
	Email string
	// Scopes are the authorization scopes ("ROLE_"-prefixed role names).
	// A refresh-token principal carries none.
	Scopes []string
}

// HasScope reports whether the principal carries the given scope.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// Set stores the principal in the context.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context.
// The second result is false when the request is anonymous.
func Get(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// IsAuthenticated reports whether the context carries a principal.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := Get(ctx)
	return ok
}

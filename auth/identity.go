package auth

import "github.com/google/uuid"

// ScopePrefix is prepended to role names when they are mapped into
// authorization scopes (role "ADMIN" -> scope "ROLE_ADMIN").
const ScopePrefix = "ROLE_"

// Well-known role names.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Identity is the immutable subject of an authenticated request.
// It is created from a verified access token or directly from a persisted
// user record at login time, and is never mutated afterwards.
type Identity struct {
	// ID is the opaque unique user identifier.
	ID uuid.UUID
	// Email is the user's email address.
	Email string
	// Roles is the set of role names attached to the user.
	Roles []string
}

// Scopes maps the identity's roles into authorization scopes.
// A nil role set yields an empty (non-nil) scope set.
func (i Identity) Scopes() []string {
	scopes := make([]string, 0, len(i.Roles))
	for _, role := range i.Roles {
		scopes = append(scopes, ScopePrefix+role)
	}
	return scopes
}

// Scope returns the authorization scope for a role name.
func Scope(role string) string {
	return ScopePrefix + role
}

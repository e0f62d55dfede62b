package jwt

import (
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillsenselab/identity/auth"
)

// Claims is the decoded token payload.
//
// Access tokens carry the full set (idUser, email, roles); refresh tokens
// carry only the registered claims with the subject id. The claim names
// match the original wire format, so tokens minted before the idUser claim
// existed still validate; extraction falls back to "sub".
type Claims struct {
	gojwt.RegisteredClaims

	UserID string   `json:"idUser,omitempty"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

// SubjectID returns the subject user id, preferring the dedicated idUser claim
// and falling back to the registered "sub" field for older tokens.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	raw := c.UserID
	if raw == "" {
		raw = c.RegisteredClaims.Subject
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("jwt: invalid subject id %q: %w", raw, err)
	}
	return id, nil
}

// Identity builds the immutable Identity carried by the claims.
// A missing role list is treated as empty roles, not an error.
func (c *Claims) Identity() (auth.Identity, error) {
	id, err := c.SubjectID()
	if err != nil {
		return auth.Identity{}, err
	}
	roles := c.Roles
	if roles == nil {
		roles = []string{}
	}
	return auth.Identity{ID: id, Email: c.Email, Roles: roles}, nil
}

// Package jwt issues and validates the service's signed bearer tokens.
//
// Two token variants exist: short-lived access tokens carrying the full
// identity, and long-lived refresh tokens carrying only the subject id.
// Each variant is signed with its own HMAC secret; validating a token
// against the wrong variant's secret always fails.
//
// Validation returns a tagged *ValidationError instead of an opaque error,
// so the authentication filter can branch on the reason explicitly rather
// than suppressing exceptions. All reasons collapse to "invalid" at the
// HTTP boundary.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillsenselab/identity/auth"
)

// Variant selects which signing secret a token is issued or validated with.
type Variant string

const (
	// Access tokens are short-lived and carry the full identity.
	Access Variant = "access"
	// Refresh tokens are long-lived and carry only the subject id.
	Refresh Variant = "refresh"
)

// Reason tags why a token failed validation. The distinctions exist for
// diagnostics; callers must treat every reason as the same external outcome.
type Reason string

const (
	// ReasonMalformed covers structural corruption and unparsable tokens.
	ReasonMalformed Reason = "malformed"
	// ReasonSignature covers signature mismatches, including tokens signed
	// with the other variant's secret.
	ReasonSignature Reason = "signature"
	// ReasonExpired covers syntactically valid tokens past their expiry.
	ReasonExpired Reason = "expired"
)

// ValidationError reports a failed token validation with its tagged reason.
type ValidationError struct {
	Reason Reason
	cause  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("jwt: invalid token (%s): %v", e.Reason, e.cause)
}

// Unwrap returns the underlying parser error.
func (e *ValidationError) Unwrap() error { return e.cause }

// AsValidationError extracts a *ValidationError from err, if present.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Service issues and validates both token variants against immutable secrets
// held from construction. It keeps no other state and is safe for concurrent
// use from many requests.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: *cfg}, nil
}

// IssueAccess mints a signed access token embedding the full identity.
// Expiry is issued-at plus the configured access TTL.
func (s *Service) IssueAccess(identity auth.Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
		UserID: identity.ID.String(),
		Email:  identity.Email,
		Roles:  identity.Roles,
	}
	return s.sign(claims, Access)
}

// IssueRefresh mints a signed refresh token carrying only the subject id.
// Expiry is issued-at plus the configured refresh TTL.
func (s *Service) IssueRefresh(subject uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.RefreshTokenTTL)),
		},
	}
	return s.sign(claims, Refresh)
}

// AccessExpiry returns the instant an access token issued now would expire.
// Used by the login handler to report expiresIn as epoch millis.
func (s *Service) AccessExpiry() time.Time {
	return time.Now().Add(s.cfg.AccessTokenTTL)
}

// Validate parses tokenString and checks its signature and expiry against
// the secret for the given variant. On failure it returns a *ValidationError
// tagged with the reason; the claims result is only valid when err is nil.
func (s *Service) Validate(tokenString string, variant Variant) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc(variant),
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, &ValidationError{Reason: classify(err), cause: err}
	}
	if !token.Valid {
		return nil, &ValidationError{Reason: ReasonMalformed, cause: errors.New("token not valid")}
	}
	return claims, nil
}

// sign serializes and signs claims with the variant's secret.
func (s *Service) sign(claims *Claims, variant Variant) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret(variant))
	if err != nil {
		return "", fmt.Errorf("jwt: sign %s token: %w", variant, err)
	}
	return signed, nil
}

// secret returns the signing key for a variant.
func (s *Service) secret(variant Variant) []byte {
	if variant == Refresh {
		return []byte(s.cfg.RefreshSecret)
	}
	return []byte(s.cfg.AccessSecret)
}

// keyFunc returns the gojwt.Keyfunc used during parsing. It re-checks the
// signing method so an attacker cannot downgrade the algorithm.
func (s *Service) keyFunc(variant Variant) gojwt.Keyfunc {
	return func(token *gojwt.Token) (interface{}, error) {
		if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret(variant), nil
	}
}

// classify maps parser errors onto tagged reasons.
func classify(err error) Reason {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ReasonSignature
	default:
		return ReasonMalformed
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity/auth/authctx"
	"github.com/skillsenselab/identity/auth/jwt"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/observability"
)

const bearerPrefix = "Bearer "

// AuthnConfig configures the authentication filter.
type AuthnConfig struct {
	// Tokens validates bearer tokens.
	Tokens *jwt.Service
	// RefreshPath is the one route authenticated by refresh tokens
	// instead of access tokens.
	RefreshPath string
	// SkipPaths bypass the filter entirely, e.g. the login route.
	SkipPaths []string
	// Metrics records rejected tokens. Optional.
	Metrics *observability.Metrics
}

// Authenticate returns the fail-open authentication filter. It never rejects
// a request: a valid bearer token attaches a principal to the request
// context, everything else leaves the request anonymous and lets the
// authorization policy decide. Malformed, expired and forged tokens are
// deliberately indistinguishable from a missing one.
func Authenticate(cfg AuthnConfig) gin.HandlerFunc {
	log := logger.WithComponent("authn")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, bearerPrefix)

		variant := jwt.Access
		if c.Request.Method == http.MethodGet && path == cfg.RefreshPath {
			variant = jwt.Refresh
		}

		claims, err := cfg.Tokens.Validate(raw, variant)
		if err != nil {
			reason := "unknown"
			if verr, ok := jwt.AsValidationError(err); ok {
				reason = string(verr.Reason)
			}
			log.Debug("bearer token rejected", map[string]interface{}{
				"reason": reason,
				"path":   path,
			})
			if cfg.Metrics != nil {
				cfg.Metrics.RecordTokenRejected(c.Request.Context(), reason)
			}
			c.Next()
			return
		}

		principal, ok := principalFromClaims(claims, variant)
		if !ok {
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), principal))
		c.Next()
	}
}

// principalFromClaims maps validated claims onto a request principal.
// Refresh tokens yield a subject-only principal with no scopes, so a
// refresh token can never authorize a role-gated route.
func principalFromClaims(claims *jwt.Claims, variant jwt.Variant) (authctx.Principal, bool) {
	if variant == jwt.Refresh {
		subject, err := claims.SubjectID()
		if err != nil {
			return authctx.Principal{}, false
		}
		return authctx.Principal{Subject: subject, Scopes: []string{}}, true
	}

	identity, err := claims.Identity()
	if err != nil {
		return authctx.Principal{}, false
	}
	return authctx.Principal{
		Subject: identity.ID,
		Email:   identity.Email,
		Scopes:  identity.Scopes(),
	}, true
}

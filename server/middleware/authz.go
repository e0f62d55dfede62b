package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity/auth/authctx"
	"github.com/skillsenselab/identity/authz"
	apperrors "github.com/skillsenselab/identity/errors"
)

// Authorize returns the fail-closed authorization middleware. Every request
// is checked against the static route policy; anonymous requests on guarded
// routes get 401, authenticated requests missing a required role get 403.
func Authorize(policy *authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, authenticated := authctx.Get(c.Request.Context())

		err := policy.Authorize(c.Request.Method, c.Request.URL.Path, principal, authenticated)
		if err != nil {
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				appErr = apperrors.Internal(err)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

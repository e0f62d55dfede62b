package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity/auth"
	"github.com/skillsenselab/identity/auth/authctx"
	"github.com/skillsenselab/identity/auth/jwt"
	"github.com/skillsenselab/identity/errors"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/observability"
	"github.com/skillsenselab/identity/server"
	"github.com/skillsenselab/identity/user"
	"github.com/skillsenselab/identity/validation"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the token pair returned by login and refresh.
// ExpiresIn is the access token's expiry instant as epoch milliseconds.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// AuthHandler serves login and token refresh.
type AuthHandler struct {
	users   *user.Service
	tokens  *jwt.Service
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewAuthHandler creates the auth handler. metrics may be nil.
func NewAuthHandler(users *user.Service, tokens *jwt.Service, metrics *observability.Metrics, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		tokens:  tokens,
		metrics: metrics,
		log:     log.WithComponent("auth"),
	}
}

// Login verifies credentials and issues a fresh token pair.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("Invalid request body"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	u, err := h.users.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		h.recordLogin(c, "failure")
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.issuePair(ctx, user.Identity(u))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.recordLogin(c, "success")
	h.log.Info("login", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	server.RespondOK(c, resp)
}

// Refresh rotates a valid refresh token into a new token pair. The filter
// has already validated the refresh token; here the user is loaded again so
// a deleted account cannot refresh. A vanished account maps to the generic
// 401 to avoid confirming whether it ever existed; any other load failure
// is an internal error and keeps its own status.
// GET /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	principal, ok := authctx.Get(ctx)
	if !ok {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	u, err := h.users.Get(ctx, principal.Subject)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
			err = errors.InvalidToken()
		}
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.issuePair(ctx, user.Identity(u))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("token refreshed", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	server.RespondOK(c, resp)
}

// issuePair mints both token variants for an identity. Refresh always
// rotates: the new refresh token replaces the presented one.
func (h *AuthHandler) issuePair(ctx context.Context, identity auth.Identity) (*TokenResponse, error) {
	access, err := h.tokens.IssueAccess(identity)
	if err != nil {
		return nil, errors.Internal(err)
	}
	refresh, err := h.tokens.IssueRefresh(identity.ID)
	if err != nil {
		return nil, errors.Internal(err)
	}

	if h.metrics != nil {
		h.metrics.RecordTokenIssued(ctx, string(jwt.Access))
		h.metrics.RecordTokenIssued(ctx, string(jwt.Refresh))
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    h.tokens.AccessExpiry().UnixMilli(),
		TokenType:    "Bearer",
	}, nil
}

func (h *AuthHandler) recordLogin(c *gin.Context, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(c.Request.Context(), outcome)
	}
}

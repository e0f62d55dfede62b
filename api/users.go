package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity/auth/authctx"
	"github.com/skillsenselab/identity/errors"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/server"
	"github.com/skillsenselab/identity/store"
	"github.com/skillsenselab/identity/user"
)

// UserResponse is the public shape of an account. The password hash never
// appears here.
type UserResponse struct {
	ID        string    `json:"idUser"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}

// UsersHandler serves account management endpoints.
type UsersHandler struct {
	users *user.Service
	log   *logger.Logger
}

// NewUsersHandler creates the users handler.
func NewUsersHandler(users *user.Service, log *logger.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log.WithComponent("users")}
}

// Create registers a new account. ADMIN only, enforced by the route policy.
// POST /api/users
func (h *UsersHandler) Create(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("Invalid request body"))
		return
	}

	u, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, toUserResponse(u))
}

// List returns every account. ADMIN only, enforced by the route policy.
// GET /api/users/all
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	server.RespondOK(c, resp)
}

// Me returns the authenticated caller's own account.
// GET /api/users/me
func (h *UsersHandler) Me(c *gin.Context) {
	principal, ok := authctx.Get(c.Request.Context())
	if !ok {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	u, err := h.users.Get(c.Request.Context(), principal.Subject)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, toUserResponse(u))
}

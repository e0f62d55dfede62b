package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/identity/auth"
	"github.com/skillsenselab/identity/authz"
)

// Route paths referenced by both the route table and the authentication
// filter configuration.
const (
	LoginPath    = "/api/auth/login"
	RefreshPath  = "/api/auth/refresh"
	UsersPath    = "/api/users"
	UsersAllPath = "/api/users/all"
	UsersMePath  = "/api/users/me"
)

// Policy is the static route authorization table. First match wins;
// anything unlisted requires an authenticated caller.
func Policy() *authz.Policy {
	return authz.NewPolicy(
		authz.Rule{Method: "*", Pattern: "/health", Require: authz.Public()},
		authz.Rule{Method: "*", Pattern: "/info", Require: authz.Public()},
		authz.Rule{Method: http.MethodPost, Pattern: LoginPath, Require: authz.Public()},
		authz.Rule{Method: http.MethodGet, Pattern: RefreshPath, Require: authz.Authenticated()},
		authz.Rule{Method: http.MethodPost, Pattern: UsersPath, Require: authz.Role(auth.RoleAdmin)},
		authz.Rule{Method: http.MethodGet, Pattern: UsersAllPath, Require: authz.Role(auth.RoleAdmin)},
		authz.Rule{Method: http.MethodGet, Pattern: UsersMePath, Require: authz.Authenticated()},
	)
}

// Register mounts all API routes on the engine.
func Register(e *gin.Engine, authH *AuthHandler, usersH *UsersHandler) {
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/login", authH.Login)
		authGroup.GET("/refresh", authH.Refresh)
	}

	usersGroup := e.Group("/api/users")
	{
		usersGroup.POST("", usersH.Create)
		usersGroup.GET("/all", usersH.List)
		usersGroup.GET("/me", usersH.Me)
	}
}

// Package api exposes the HTTP handlers and route table of the identity
// service: login and token refresh under /api/auth, account management
// under /api/users.
package api

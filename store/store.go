package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/observability"
)

// Sentinel errors returned by every backend. Callers branch on these with
// errors.Is and never see driver-specific error types.
var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate record")
)

// UserStore is the persistence contract for users and roles.
type UserStore interface {
	// CreateUser persists a new user with its role associations.
	// Returns ErrDuplicate when the email is already taken.
	CreateUser(ctx context.Context, u *User) error

	// UserByEmail loads a user and its roles by email.
	UserByEmail(ctx context.Context, email string) (*User, error)

	// UserByID loads a user and its roles by id.
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ListUsers returns all users with their roles.
	ListUsers(ctx context.Context) ([]User, error)

	// RoleByName loads a role by its name.
	RoleByName(ctx context.Context, name string) (*Role, error)

	// EnsureRoles creates any of the named roles that do not exist yet.
	EnsureRoles(ctx context.Context, names ...string) error

	// CheckHealth reports the backend's health.
	CheckHealth(ctx context.Context) observability.Health

	// Close releases the backend's resources.
	Close() error
}

// Open creates the store backend selected by cfg.Driver.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (UserStore, error) {
	cfg.ApplyDefaults()

	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return OpenGorm(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

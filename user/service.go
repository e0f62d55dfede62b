package user

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillsenselab/identity/auth"
	"github.com/skillsenselab/identity/auth/password"
	"github.com/skillsenselab/identity/errors"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/store"
	"github.com/skillsenselab/identity/validation"
)

// CreateRequest is the payload for registering a new account.
type CreateRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Service implements account operations.
type Service struct {
	store  store.UserStore
	hasher password.Hasher
	log    *logger.Logger
}

// NewService creates a user service.
func NewService(st store.UserStore, hasher password.Hasher, log *logger.Logger) *Service {
	return &Service{store: st, hasher: hasher, log: log.WithComponent("user")}
}

// Register validates the request, hashes the password and persists the user
// with the default USER role.
func (s *Service) Register(ctx context.Context, req CreateRequest) (*store.User, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	// The default role is seeded at startup; a missing row means the
	// deployment is broken, not that a new role should be invented.
	role, err := s.store.RoleByName(ctx, auth.RoleUser)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.Internal(fmt.Errorf("default role %s is not seeded", auth.RoleUser))
		}
		return nil, errors.DatabaseError(err)
	}

	u := &store.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []store.Role{*role},
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		if stderrors.Is(err, store.ErrDuplicate) {
			return nil, errors.AlreadyExists("user")
		}
		return nil, errors.DatabaseError(err)
	}

	s.log.Info("user registered", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	return u, nil
}

// Get loads a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*store.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.DatabaseError(err)
	}
	return u, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]store.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, errors.DatabaseError(err)
	}
	return users, nil
}

// VerifyCredentials checks an email and password pair against the store.
// Every failure mode collapses into the same generic error so the response
// never reveals whether the account exists.
func (s *Service) VerifyCredentials(ctx context.Context, email, plaintext string) (*store.User, error) {
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.InvalidCredentials()
		}
		return nil, errors.DatabaseError(err)
	}

	ok, err := s.hasher.Verify(plaintext, u.PasswordHash)
	if err != nil {
		s.log.WithError(err).Warn("stored password hash is unreadable", map[string]interface{}{
			"user_id": u.ID.String(),
		})
		return nil, errors.InvalidCredentials()
	}
	if !ok {
		return nil, errors.InvalidCredentials()
	}
	return u, nil
}

// Identity maps a stored user onto its token identity.
func Identity(u *store.User) auth.Identity {
	return auth.Identity{
		ID:    u.ID,
		Email: u.Email,
		Roles: u.RoleNames(),
	}
}

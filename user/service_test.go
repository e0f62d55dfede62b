package user

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/skillsenselab/identity/auth"
	"github.com/skillsenselab/identity/auth/password"
	"github.com/skillsenselab/identity/errors"
	"github.com/skillsenselab/identity/logger"
	"github.com/skillsenselab/identity/store"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	if err := st.EnsureRoles(context.Background(), auth.RoleUser, auth.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	// Minimum bcrypt cost keeps the tests fast.
	svc := NewService(st, password.NewBcryptHasher(4), logger.NewDefault("test"))
	return svc, st
}

func TestRegister_HashesPasswordAndAssignsDefaultRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, CreateRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "s3cret-password" || u.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
	if got := u.RoleNames(); len(got) != 1 || got[0] != auth.RoleUser {
		t.Errorf("roles = %v, want [USER]", got)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing email", CreateRequest{Username: "a", Password: "longenough1"}},
		{"bad email", CreateRequest{Username: "alice", Email: "not-an-email", Password: "longenough1"}},
		{"short password", CreateRequest{Username: "alice", Email: "a@b.co", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			appErr, ok := errors.AsAppError(err)
			if !ok || appErr.HTTPStatus != http.StatusBadRequest {
				t.Errorf("expected 400 validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := CreateRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret-password"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(ctx, req)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %v", err)
	}
}

func TestRegister_MissingDefaultRoleIsInternal(t *testing.T) {
	// No EnsureRoles: the USER role was never seeded. Registration must fail
	// instead of inventing a detached role row.
	svc := NewService(store.NewMemoryStore(), password.NewBcryptHasher(4), logger.NewDefault("test"))

	_, err := svc.Register(context.Background(), CreateRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-password",
	})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500 for unseeded default role, got %v", err)
	}
}

// roleFailStore simulates a backend whose role lookup fails outright.
type roleFailStore struct {
	*store.MemoryStore
}

func (s *roleFailStore) RoleByName(ctx context.Context, name string) (*store.Role, error) {
	return nil, stderrors.New("connection refused")
}

func TestRegister_RoleLookupFailurePropagates(t *testing.T) {
	st := &roleFailStore{store.NewMemoryStore()}
	svc := NewService(st, password.NewBcryptHasher(4), logger.NewDefault("test"))

	_, err := svc.Register(context.Background(), CreateRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-password",
	})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeDatabaseError {
		t.Errorf("expected database error to propagate, got %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, CreateRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-password",
	}); err != nil {
		t.Fatal(err)
	}

	u, err := svc.VerifyCredentials(ctx, "alice@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("wrong user: %s", u.Email)
	}
}

func TestVerifyCredentials_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, CreateRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-password",
	}); err != nil {
		t.Fatal(err)
	}

	_, wrongPassword := svc.VerifyCredentials(ctx, "alice@example.com", "wrong-password")
	_, unknownUser := svc.VerifyCredentials(ctx, "nobody@example.com", "s3cret-password")

	for _, err := range []error{wrongPassword, unknownUser} {
		appErr, ok := errors.AsAppError(err)
		if !ok {
			t.Fatalf("expected AppError, got %v", err)
		}
		if appErr.HTTPStatus != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", appErr.HTTPStatus)
		}
	}

	we, _ := errors.AsAppError(wrongPassword)
	uu, _ := errors.AsAppError(unknownUser)
	if we.Message != uu.Message || we.Code != uu.Code {
		t.Error("failure responses must not reveal whether the account exists")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestIdentity_Mapping(t *testing.T) {
	u := &store.User{Email: "alice@example.com", Roles: []store.Role{{Name: "USER"}, {Name: "ADMIN"}}}
	u.ID = uuid.New()

	id := Identity(u)
	if id.ID != u.ID || id.Email != u.Email {
		t.Error("identity must carry the user's id and email")
	}
	if len(id.Roles) != 2 {
		t.Errorf("roles = %v", id.Roles)
	}
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u := &User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Roles:        []Role{{Name: "USER"}},
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatal("CreateUser must assign an id")
	}

	byEmail, err := s.UserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("email lookup returned wrong user: %s", byEmail.ID)
	}

	byID, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("id lookup returned wrong user: %s", byID.Email)
	}
	if got := byID.RoleNames(); len(got) != 1 || got[0] != "USER" {
		t.Errorf("roles = %v, want [USER]", got)
	}
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateUser(ctx, &User{Email: "bob@example.com"}); err != nil {
		t.Fatal(err)
	}

	err := s.CreateUser(ctx, &User{Email: "BOB@example.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for case-insensitive match, got %v", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.UserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByEmail: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UserByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByID: expected ErrNotFound, got %v", err)
	}
	if _, err := s.RoleByName(ctx, "ADMIN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RoleByName: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_EnsureRolesIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.EnsureRoles(ctx, "USER", "ADMIN"); err != nil {
		t.Fatal(err)
	}
	first, err := s.RoleByName(ctx, "USER")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.EnsureRoles(ctx, "USER"); err != nil {
		t.Fatal(err)
	}
	second, err := s.RoleByName(ctx, "USER")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Error("EnsureRoles must not recreate existing roles")
	}
}

func TestMemoryStore_CloneIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u := &User{Email: "carol@example.com", Roles: []Role{{Name: "USER"}}}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	got, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.Email = "mutated@example.com"
	got.Roles[0].Name = "ADMIN"

	again, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Email != "carol@example.com" || again.Roles[0].Name != "USER" {
		t.Error("store must not expose internal state to callers")
	}
}

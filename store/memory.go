package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/identity/observability"
)

// MemoryStore is an in-memory UserStore for tests and local development.
// Email uniqueness is enforced case-insensitively, matching the unique
// index of the postgres backend with citext-normalized emails.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
	roles map[string]*Role
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uuid.UUID]*User),
		roles: make(map[string]*Role),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	clone := cloneUser(u)
	m.users[u.ID] = &clone
	return nil
}

func (m *MemoryStore) UserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			clone := cloneUser(u)
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UserByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneUser(u)
	return &clone, nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryStore) RoleByName(_ context.Context, name string) (*Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.roles[name]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *MemoryStore) EnsureRoles(_ context.Context, names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range names {
		if _, ok := m.roles[name]; !ok {
			m.roles[name] = &Role{BaseModel: BaseModel{ID: uuid.New()}, Name: name}
		}
	}
	return nil
}

func (m *MemoryStore) CheckHealth(_ context.Context) observability.Health {
	return observability.Health{Name: "memory", Status: observability.HealthStatusUp}
}

func (m *MemoryStore) Close() error { return nil }

func cloneUser(u *User) User {
	clone := *u
	clone.Roles = append([]Role(nil), u.Roles...)
	return clone
}

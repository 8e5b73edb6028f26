package mocks

import (
	"context"
	"sync"

	"storefront/domain/user"
)

// MockUserRepository In-memory implementation of user repository
type MockUserRepository struct {
	users map[string]*user.User
	mu    sync.RWMutex
}

// NewMockUserRepository Create mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*user.User),
	}
}

// Save Save user (create or update)
func (r *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID()] = cloneUser(u)
	return nil
}

// FindByID Find user by ID
func (r *MockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, user.NewUserNotFoundError(id)
	}
	return cloneUser(u), nil
}

// cloneUser snapshots a user so the store never shares mutable state
// with callers.
func cloneUser(u *user.User) *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CartData:  u.CartData(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	})
}

// ClearCart Replace the user's cart with an empty mapping.
// Idempotent: clearing an already-empty cart succeeds and changes nothing.
func (r *MockUserRepository) ClearCart(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[userID]
	if !exists {
		return user.NewUserNotFoundError(userID)
	}
	u.ClearCart()
	return nil
}

// Compile-time interface implementation check
var _ user.Repository = (*MockUserRepository)(nil)

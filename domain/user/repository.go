package user

import "context"

// Repository User repository interface.
type Repository interface {
	// Save persists a user aggregate (create or update).
	Save(ctx context.Context, user *User) error

	// FindByID loads a user; ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (*User, error)

	// ClearCart replaces the user's cart with an empty mapping.
	// Idempotent: clearing an empty cart succeeds and changes nothing,
	// so the checkout workflow can safely retry after a crash between
	// order confirmation and cart reset.
	ClearCart(ctx context.Context, userID string) error
}

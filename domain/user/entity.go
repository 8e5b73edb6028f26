/*
Package user - User subdomain.

In the checkout workflow the user record matters as the owner of the
cart: a per-user mapping from item identity to quantity that the
workflow replaces wholesale with an empty mapping once a checkout
succeeds. Cart clearing is idempotent so a retry after a partial
failure (order confirmed, cart not yet cleared) is always safe.
*/
package user

import (
	"time"

	"github.com/google/uuid"
)

// User User aggregate root. All fields private, behavior through methods.
type User struct {
	id        string
	name      string
	email     string
	cartData  map[string]int // item id -> quantity
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with an empty cart.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, NewInvalidUserError("name is required")
	}
	if email == "" {
		return nil, NewInvalidUserError("email is required")
	}

	now := time.Now()
	return &User{
		id:        "user-" + uuid.New().String(),
		name:      name,
		email:     email,
		cartData:  make(map[string]int),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructionDTO rebuilds a User from storage; repository layer only.
type ReconstructionDTO struct {
	ID        string
	Name      string
	Email     string
	CartData  map[string]int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO reconstructs a User aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *User {
	cart := dto.CartData
	if cart == nil {
		cart = make(map[string]int)
	}
	return &User{
		id:        dto.ID,
		name:      dto.Name,
		email:     dto.Email,
		cartData:  cart,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// CartData returns a copy of the cart mapping.
func (u *User) CartData() map[string]int {
	cart := make(map[string]int, len(u.cartData))
	for k, v := range u.cartData {
		cart[k] = v
	}
	return cart
}

// CartIsEmpty reports whether the cart holds no items.
func (u *User) CartIsEmpty() bool {
	return len(u.cartData) == 0
}

// AddToCart sets the quantity for an item in the cart.
func (u *User) AddToCart(itemID string, quantity int) error {
	if itemID == "" {
		return NewInvalidUserError("cart item id is required")
	}
	if quantity <= 0 {
		return NewInvalidUserError("cart quantity must be positive")
	}
	u.cartData[itemID] = quantity
	u.updatedAt = time.Now()
	return nil
}

// ClearCart replaces the cart wholesale with an empty mapping.
// Clearing an already-empty cart is a no-op.
func (u *User) ClearCart() {
	if len(u.cartData) == 0 {
		return
	}
	u.cartData = make(map[string]int)
	u.updatedAt = time.Now()
}

package order

import "context"

// Repository Order repository interface.
//
// Implementations must make ConfirmPayment a guarded update: the state
// row only moves PENDING -> CONFIRMED when it is still PENDING at write
// time. With two concurrent verifications, exactly one wins; the loser
// sees ErrOrderAlreadyResolved (or ErrOrderNotFound after a concurrent
// discard).
type Repository interface {
	// NextIdentity generates a new order id.
	NextIdentity() string

	// Save persists a new order aggregate.
	Save(ctx context.Context, order *Order) error

	// FindByID loads an order; ErrOrderNotFound when absent.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindAll returns every order in store-native order (admin console).
	// An empty store yields an empty slice, not an error.
	FindAll(ctx context.Context) ([]*Order, error)

	// FindByUserID returns a user's orders; empty slice when none.
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)

	// AttachCheckoutSession records the gateway session id on a pending
	// order after the hosted session has been created.
	AttachCheckoutSession(ctx context.Context, orderID, sessionID string) error

	// ConfirmPayment performs the guarded PENDING -> CONFIRMED update.
	ConfirmPayment(ctx context.Context, orderID string) error

	// UpdateStatus overwrites the fulfillment status;
	// ErrOrderNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, orderID string, status Status) error

	// Remove deletes the order record (discarded checkout attempt).
	Remove(ctx context.Context, orderID string) error
}

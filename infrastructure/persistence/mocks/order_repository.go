package mocks

import (
	"context"
	"sync"

	"storefront/domain/order"

	"github.com/google/uuid"
)

// MockOrderRepository In-memory implementation of order repository.
// Carries the same PENDING-guard semantics as the MySQL implementation:
// the guarded methods check and mutate state under one write lock, so
// concurrent verifications race exactly the way they do against the
// database and tests exercise the real conflict paths.
type MockOrderRepository struct {
	orders map[string]*order.Order
	ids    []string // insertion order, FindAll returns store-native order
	mu     sync.RWMutex
}

// NewMockOrderRepository Create mock order repository
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*order.Order),
	}
}

// cloneOrder snapshots an aggregate through its reconstruction path, so
// the store never shares mutable state with callers - reads behave like
// database reads.
func cloneOrder(o *order.Order) *order.Order {
	items := o.Items()
	itemDTOs := make([]order.ItemDTO, len(items))
	for i, it := range items {
		itemDTOs[i] = order.ItemDTO{Name: it.Name(), Price: it.Price(), Quantity: it.Quantity()}
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:                o.ID(),
		UserID:            o.UserID(),
		Items:             itemDTOs,
		Amount:            o.Amount(),
		Address:           o.Address(),
		PaymentMethod:     o.PaymentMethod(),
		PaymentState:      o.PaymentState(),
		CheckoutSessionID: o.CheckoutSessionID(),
		Status:            o.Status(),
		PlacedAt:          o.PlacedAt(),
	})
}

// NextIdentity Generate new order ID
func (r *MockOrderRepository) NextIdentity() string {
	return "order-" + uuid.New().String()
}

// Save Save order (create or update)
func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID()]; !exists {
		r.ids = append(r.ids, o.ID())
	}
	r.orders[o.ID()] = cloneOrder(o)

	return nil
}

// FindByID Find order by ID
func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return cloneOrder(o), nil
}

// FindAll Find every order in insertion order
func (r *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*order.Order, 0, len(r.ids))
	for _, id := range r.ids {
		if o, exists := r.orders[id]; exists {
			orders = append(orders, cloneOrder(o))
		}
	}
	return orders, nil
}

// FindByUserID Find order list by user ID
func (r *MockOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*order.Order, 0)
	for _, id := range r.ids {
		if o, exists := r.orders[id]; exists && o.UserID() == userID {
			orders = append(orders, cloneOrder(o))
		}
	}
	return orders, nil
}

// AttachCheckoutSession Record the gateway session id on a pending order
func (r *MockOrderRepository) AttachCheckoutSession(ctx context.Context, orderID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.orders[orderID]
	if !exists {
		return order.NewOrderNotFoundError(orderID)
	}
	return o.AttachCheckoutSession(sessionID)
}

// ConfirmPayment Guarded PENDING -> CONFIRMED transition.
// Check and mutation happen under the write lock; a concurrent loser
// observes the already-resolved state, matching the SQL guard.
func (r *MockOrderRepository) ConfirmPayment(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.orders[orderID]
	if !exists {
		return order.NewOrderNotFoundError(orderID)
	}
	return o.ConfirmPayment()
}

// UpdateStatus Overwrite the fulfillment status
func (r *MockOrderRepository) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.orders[orderID]
	if !exists {
		return order.NewOrderNotFoundError(orderID)
	}
	o.SetStatus(status)
	return nil
}

// Remove Delete order record (discarded checkout attempt)
func (r *MockOrderRepository) Remove(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[orderID]; !exists {
		return order.NewOrderNotFoundError(orderID)
	}
	delete(r.orders, orderID)
	for i, id := range r.ids {
		if id == orderID {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Compile-time interface implementation check
var _ order.Repository = (*MockOrderRepository)(nil)

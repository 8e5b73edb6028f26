package order

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequests() []ItemRequest {
	return []ItemRequest{
		{Name: "Item A", Price: 10, Quantity: 2},
		{Name: "Item B", Price: 5.5, Quantity: 1},
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(
		"order-1",
		"user-1",
		validRequests(),
		35.5, // 20 + 5.5 + 10 delivery
		json.RawMessage(`{"city":"Dhaka"}`),
		MethodCOD,
		"24-Jul-2025 07:45 PM",
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, "order-1", o.ID())
	assert.Equal(t, "user-1", o.UserID())
	assert.Equal(t, MethodCOD, o.PaymentMethod())
	assert.Equal(t, PaymentPending, o.PaymentState())
	assert.Equal(t, StatusPlaced, o.Status())
	assert.Equal(t, "24-Jul-2025 07:45 PM", o.PlacedAt())
	assert.True(t, o.IsPending())
	assert.False(t, o.Paid())
	assert.InDelta(t, 25.5, o.ItemsTotal(), 0.001)
	assert.Len(t, o.Items(), 2)
}

func TestNewOrderValidation(t *testing.T) {
	address := json.RawMessage(`{}`)

	tests := []struct {
		name     string
		build    func() (*Order, error)
		sentinel error
	}{
		{
			name: "missing ids",
			build: func() (*Order, error) {
				return NewOrder("", "", validRequests(), 35.5, address, MethodCOD, "date")
			},
			sentinel: ErrInvalidOrder,
		},
		{
			name: "empty items",
			build: func() (*Order, error) {
				return NewOrder("order-1", "user-1", nil, 10, address, MethodCOD, "date")
			},
			sentinel: ErrEmptyOrderItems,
		},
		{
			name: "zero amount",
			build: func() (*Order, error) {
				return NewOrder("order-1", "user-1", validRequests(), 0, address, MethodCOD, "date")
			},
			sentinel: ErrInvalidOrder,
		},
		{
			name: "zero quantity",
			build: func() (*Order, error) {
				requests := []ItemRequest{{Name: "Item A", Price: 10, Quantity: 0}}
				return NewOrder("order-1", "user-1", requests, 20, address, MethodCOD, "date")
			},
			sentinel: ErrInvalidQuantity,
		},
		{
			name: "negative price",
			build: func() (*Order, error) {
				requests := []ItemRequest{{Name: "Item A", Price: -1, Quantity: 1}}
				return NewOrder("order-1", "user-1", requests, 9, address, MethodCOD, "date")
			},
			sentinel: ErrInvalidUnitPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := tt.build()
			assert.Nil(t, o)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.ConfirmPayment())
	assert.True(t, o.Paid())
	assert.False(t, o.IsPending())

	// Confirmed is terminal.
	err := o.ConfirmPayment()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderAlreadyResolved))
}

func TestAttachCheckoutSession(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.AttachCheckoutSession("cs_123"))
	assert.Equal(t, "cs_123", o.CheckoutSessionID())

	// Only one session per order.
	err := o.AttachCheckoutSession("cs_456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOrder))
	assert.Equal(t, "cs_123", o.CheckoutSessionID())

	// Resolved orders reject sessions.
	resolved := newTestOrder(t)
	require.NoError(t, resolved.ConfirmPayment())
	err = resolved.AttachCheckoutSession("cs_789")
	assert.True(t, errors.Is(err, ErrOrderAlreadyResolved))
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []Status{
		StatusPlaced, StatusPacking, StatusShipped, StatusOutForDelivery, StatusDelivered,
	} {
		parsed, err := ParseStatus(string(valid))
		require.NoError(t, err)
		assert.Equal(t, valid, parsed)
	}

	for _, invalid := range []string{"", "shipped", "ORDER PLACED", "Teleported"} {
		_, err := ParseStatus(invalid)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStatus))
	}
}

func TestSameAmount(t *testing.T) {
	// Sums of float major units carry representation noise; cents decide.
	assert.True(t, SameAmount(0.1+0.2+10, 10.3))
	assert.True(t, SameAmount(30, 30.0000001))
	assert.False(t, SameAmount(30, 30.01))
	assert.False(t, SameAmount(25, 30))
}

func TestItemsImmutable(t *testing.T) {
	o := newTestOrder(t)

	items := o.Items()
	items[0] = Item{name: "tampered", price: 1, quantity: 1}

	assert.Equal(t, "Item A", o.Items()[0].Name())
}

func TestRebuildFromDTO(t *testing.T) {
	dto := ReconstructionDTO{
		ID:                "order-9",
		UserID:            "user-9",
		Items:             []ItemDTO{{Name: "Item A", Price: 10, Quantity: 2}},
		Amount:            30,
		Address:           json.RawMessage(`{"city":"Dhaka"}`),
		PaymentMethod:     "Stripe",
		PaymentState:      PaymentConfirmed,
		CheckoutSessionID: "cs_123",
		Status:            StatusShipped,
		PlacedAt:          "24-Jul-2025 07:45 PM",
	}

	o := RebuildFromDTO(dto)

	assert.Equal(t, "order-9", o.ID())
	assert.True(t, o.Paid())
	assert.Equal(t, "cs_123", o.CheckoutSessionID())
	assert.Equal(t, StatusShipped, o.Status())
	assert.Len(t, o.Items(), 1)
}

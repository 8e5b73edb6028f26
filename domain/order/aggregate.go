/*
Package order - Order subdomain, the core of the checkout workflow.

An Order represents one checkout attempt and its resulting fulfillment
record. Its payment side is a two-state machine:

	PENDING -> CONFIRMED   (payment verified against the gateway)
	PENDING -> deleted     (payment failed, the record is discarded)

Both outcomes are terminal. A confirmed order is never discarded and a
discarded order never reappears; repositories enforce the PENDING guard
on the confirming update so concurrent verifications cannot both win.

Domain principles (as elsewhere in this codebase):
1. All fields are private, behavior exposed through methods
2. Factory functions validate invariants at creation
3. Reconstruction from storage goes through ReconstructionDTO only
*/
package order

import (
	"encoding/json"
	"math"
)

// MethodCOD is the payment-method tag for pay-on-delivery orders.
// Gateway-backed orders carry the gateway's name (e.g. "Stripe") instead.
const MethodCOD = "COD"

// PaymentState is the reconciliation state of an order's payment.
type PaymentState string

const (
	PaymentPending   PaymentState = "PENDING"
	PaymentConfirmed PaymentState = "CONFIRMED"
)

// Status is the fulfillment state shown to customers and mutated from
// the admin console. The set is closed; free-form values are rejected.
type Status string

const (
	StatusPlaced         Status = "Order Placed"
	StatusPacking        Status = "Packing"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
)

// ParseStatus validates a fulfillment status value supplied by a caller.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusPacking, StatusShipped, StatusOutForDelivery, StatusDelivered:
		return Status(s), nil
	default:
		return "", NewInvalidStatusError(s)
	}
}

// Order is the order aggregate root.
type Order struct {
	id                string
	userID            string
	items             []Item
	amount            float64
	address           json.RawMessage
	paymentMethod     string
	paymentState      PaymentState
	checkoutSessionID string
	status            Status
	placedAt          string // fixed display timestamp, rendered once at creation
}

// Item is a purchased line item. Items are immutable after the order is
// created; price is in major currency units as submitted at checkout.
type Item struct {
	name     string
	price    float64
	quantity int
}

func (i Item) Name() string   { return i.name }
func (i Item) Price() float64 { return i.price }
func (i Item) Quantity() int  { return i.quantity }

// Subtotal returns price x quantity for the item.
func (i Item) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

// ItemRequest carries caller-submitted line item data into the factory.
type ItemRequest struct {
	Name     string
	Price    float64
	Quantity int
}

// NewOrder creates a new Order aggregate in the PENDING payment state.
// This is the only creation entry point; it enforces the creation-time
// invariants (non-empty items, positive quantities and prices).
//
// amount is the caller-submitted total. The workflow layer validates it
// against the recomputed item total plus the delivery surcharge before
// calling NewOrder, so a constructed Order always satisfies
// amount == sum(items) + surcharge.
func NewOrder(id, userID string, requests []ItemRequest, amount float64, address json.RawMessage, paymentMethod, placedAt string) (*Order, error) {
	if id == "" || userID == "" {
		return nil, NewInvalidOrderError("order id and user id are required")
	}
	if len(requests) == 0 {
		return nil, NewEmptyOrderItemsError()
	}
	if amount <= 0 {
		return nil, NewInvalidOrderError("order amount must be positive")
	}

	items := make([]Item, len(requests))
	for i, req := range requests {
		if req.Quantity <= 0 {
			return nil, NewInvalidQuantityError(req.Name, req.Quantity)
		}
		if req.Price <= 0 {
			return nil, NewInvalidUnitPriceError(req.Name, req.Price)
		}
		items[i] = Item{
			name:     req.Name,
			price:    req.Price,
			quantity: req.Quantity,
		}
	}

	return &Order{
		id:            id,
		userID:        userID,
		items:         items,
		amount:        amount,
		address:       address,
		paymentMethod: paymentMethod,
		paymentState:  PaymentPending,
		status:        StatusPlaced,
		placedAt:      placedAt,
	}, nil
}

// ============================================================================
// Reconstruction - for repository layer use only
// ============================================================================

// ReconstructionDTO rebuilds an Order from storage. Only repository
// implementations may use it; the application layer goes through NewOrder.
type ReconstructionDTO struct {
	ID                string
	UserID            string
	Items             []ItemDTO
	Amount            float64
	Address           json.RawMessage
	PaymentMethod     string
	PaymentState      PaymentState
	CheckoutSessionID string
	Status            Status
	PlacedAt          string
}

// ItemDTO rebuilds a line item from storage.
type ItemDTO struct {
	Name     string
	Price    float64
	Quantity int
}

// RebuildFromDTO reconstructs an Order aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]Item, len(dto.Items))
	for i, it := range dto.Items {
		items[i] = Item{name: it.Name, price: it.Price, quantity: it.Quantity}
	}
	return &Order{
		id:                dto.ID,
		userID:            dto.UserID,
		items:             items,
		amount:            dto.Amount,
		address:           dto.Address,
		paymentMethod:     dto.PaymentMethod,
		paymentState:      dto.PaymentState,
		checkoutSessionID: dto.CheckoutSessionID,
		status:            dto.Status,
		placedAt:          dto.PlacedAt,
	}
}

// ============================================================================
// Accessors
// ============================================================================

func (o *Order) ID() string                 { return o.id }
func (o *Order) UserID() string             { return o.userID }
func (o *Order) Amount() float64            { return o.amount }
func (o *Order) Address() json.RawMessage   { return o.address }
func (o *Order) PaymentMethod() string      { return o.paymentMethod }
func (o *Order) PaymentState() PaymentState { return o.paymentState }
func (o *Order) CheckoutSessionID() string  { return o.checkoutSessionID }
func (o *Order) Status() Status             { return o.status }
func (o *Order) PlacedAt() string           { return o.placedAt }

// Items returns a copy of the line items to preserve immutability.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Paid reports whether payment has been confirmed.
func (o *Order) Paid() bool {
	return o.paymentState == PaymentConfirmed
}

// IsPending reports whether the order still awaits reconciliation.
func (o *Order) IsPending() bool {
	return o.paymentState == PaymentPending
}

// ItemsTotal returns the sum of line item subtotals in major units.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.items {
		total += it.Subtotal()
	}
	return total
}

// ============================================================================
// Behavior
// ============================================================================

// AttachCheckoutSession records the hosted checkout session created for
// this order. Only pending orders may carry a session, and only one.
func (o *Order) AttachCheckoutSession(sessionID string) error {
	if !o.IsPending() {
		return NewOrderAlreadyResolvedError(o.id)
	}
	if o.checkoutSessionID != "" {
		return NewInvalidOrderError("order already has a checkout session")
	}
	o.checkoutSessionID = sessionID
	return nil
}

// ConfirmPayment transitions PENDING -> CONFIRMED. Confirming an order
// that already reached a terminal state is a conflict.
func (o *Order) ConfirmPayment() error {
	if !o.IsPending() {
		return NewOrderAlreadyResolvedError(o.id)
	}
	o.paymentState = PaymentConfirmed
	return nil
}

// SetStatus overwrites the fulfillment status. Validation happens in
// ParseStatus; by the time a Status value exists it is a member of the set.
func (o *Order) SetStatus(s Status) {
	o.status = s
}

// SameAmount compares two totals at cent precision, absorbing float noise
// from summing caller-submitted major-unit prices.
func SameAmount(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}

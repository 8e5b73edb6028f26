/*
Package order - order domain error definitions.

Design principles:
1. Sentinel errors support type-safe errors.Is() checks
2. Constructors capture the stack at creation, locating the origin
3. Every error supports the error chain back to the root cause
4. No HTTP status codes or other non-domain concepts
*/
package order

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrOrderNotFound - no order with the given id exists (it may have
	// been discarded by a failed verification).
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderAlreadyResolved - the order already reached a terminal
	// payment state; the attempted transition is a conflict.
	ErrOrderAlreadyResolved = errors.New("order payment already resolved")

	// ErrEmptyOrderItems - an order must carry at least one line item.
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity - line item quantities must be positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidUnitPrice - line item prices must be positive.
	ErrInvalidUnitPrice = errors.New("unit price must be positive")

	// ErrAmountMismatch - the caller-submitted total does not equal the
	// recomputed item total plus the delivery surcharge.
	ErrAmountMismatch = errors.New("order amount does not match item total")

	// ErrInvalidStatus - the fulfillment status is not a member of the
	// allowed set.
	ErrInvalidStatus = errors.New("invalid fulfillment status")

	// ErrInvalidOrder - catch-all creation/state invariant violation.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrNoCheckoutSession - verification was requested for an order
	// that never opened a hosted checkout session (e.g. a COD order).
	ErrNoCheckoutSession = errors.New("order has no checkout session")
)

// ============================================================================
// Constructors - structured errors with context and stack
// ============================================================================

// NewOrderNotFoundError creates an order-not-found error (with stack).
// The result supports errors.Is(err, ErrOrderNotFound) and
// err.(shared.Stacker).Stack().
func NewOrderNotFoundError(orderID string) error {
	return &domainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewOrderAlreadyResolvedError creates a conflict error for a terminal order.
func NewOrderAlreadyResolvedError(orderID string) error {
	return &domainError{
		sentinel: ErrOrderAlreadyResolved,
		message:  "order " + orderID + " payment already resolved",
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyOrderItemsError creates an empty-items validation error.
func NewEmptyOrderItemsError() error {
	return &domainError{
		sentinel: ErrEmptyOrderItems,
		field:    "items",
		message:  "order must have at least one item",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidQuantityError creates an invalid-quantity validation error.
func NewInvalidQuantityError(itemName string, quantity int) error {
	return &domainError{
		sentinel: ErrInvalidQuantity,
		field:    "items",
		message:  fmt.Sprintf("item %q has non-positive quantity %d", itemName, quantity),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidUnitPriceError creates an invalid-price validation error.
func NewInvalidUnitPriceError(itemName string, price float64) error {
	return &domainError{
		sentinel: ErrInvalidUnitPrice,
		field:    "items",
		message:  fmt.Sprintf("item %q has non-positive price %v", itemName, price),
		stack:    shared.CaptureStack(3),
	}
}

// NewAmountMismatchError creates an amount-mismatch validation error.
// expected is the server-side recomputed total, got the caller's.
func NewAmountMismatchError(expected, got float64) error {
	return &domainError{
		sentinel: ErrAmountMismatch,
		field:    "amount",
		message:  fmt.Sprintf("submitted amount %.2f does not match computed total %.2f", got, expected),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStatusError creates an invalid-status validation error.
func NewInvalidStatusError(status string) error {
	return &domainError{
		sentinel: ErrInvalidStatus,
		field:    "status",
		message:  fmt.Sprintf("%q is not a valid fulfillment status", status),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidOrderError creates a generic invariant-violation error.
func NewInvalidOrderError(message string) error {
	return &domainError{
		sentinel: ErrInvalidOrder,
		message:  message,
		stack:    shared.CaptureStack(3),
	}
}

// NewNoCheckoutSessionError creates an error for verification attempts
// against orders without a hosted session.
func NewNoCheckoutSessionError(orderID string) error {
	return &domainError{
		sentinel: ErrNoCheckoutSession,
		message:  "order " + orderID + " has no checkout session to verify",
		stack:    shared.CaptureStack(3),
	}
}

// ============================================================================
// Internal error type - implements error, Unwrap, shared.Stacker
// ============================================================================

type domainError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *domainError) Error() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.sentinel
}

func (e *domainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}

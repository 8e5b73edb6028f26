/*
Package payment defines the capability interface for hosted-payment
providers and the wire-level types the checkout workflow hands them.

The workflow never talks to a concrete provider: it builds a line-item
manifest in minor currency units, asks the Gateway for a hosted session,
and later asks the Gateway whether that session was actually paid. The
client's redirect-borne success flag is never trusted as the outcome;
the session status reported here is authoritative. New providers plug in
by implementing Gateway, without touching the workflow.
*/
package payment

import "context"

// LineItem is one entry of the gateway manifest. UnitAmount is in the
// gateway's minor-unit convention (integer subunits, e.g. cents).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionRequest carries everything needed to open a hosted session.
// SuccessURL and CancelURL embed the order id and a success flag so the
// verification endpoint can recover context on the return trip.
type SessionRequest struct {
	OrderID    string
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// Session is the provider-hosted checkout transaction as this system
// sees it: an opaque id, the redirect URL for the customer, and whether
// the provider reports it as paid.
type Session struct {
	ID   string
	URL  string
	Paid bool
}

// Gateway is the payment-provider capability.
type Gateway interface {
	// Name is the payment-method tag stamped on orders placed through
	// this gateway (e.g. "Stripe").
	Name() string

	// CreateSession opens a hosted checkout session for the manifest.
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)

	// GetSession fetches the current authoritative state of a session.
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}

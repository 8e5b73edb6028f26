/*
Package stripe implements payment.Gateway on Stripe Checkout Sessions.

The client is a thin adapter: manifest construction and minor-unit
conversion happen in the workflow layer, and this package only maps the
neutral payment types onto the Stripe SDK.
*/
package stripe

import (
	"context"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"storefront/payment"
)

// GatewayName is the payment-method tag stamped on Stripe-paid orders.
const GatewayName = "Stripe"

// Client talks to the Stripe API with a per-instance key, so no global
// SDK state is mutated.
type Client struct {
	api *client.API
}

// New creates a Stripe gateway client with the given secret key.
func New(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

// Name implements payment.Gateway.
func (c *Client) Name() string { return GatewayName }

// CreateSession opens a Checkout Session in payment mode for the manifest.
func (c *Client) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	lineItems := make([]*stripeapi.CheckoutSessionLineItemParams, len(req.LineItems))
	for i, item := range req.LineItems {
		lineItems[i] = &stripeapi.CheckoutSessionLineItemParams{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency: stripeapi.String(req.Currency),
				ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripeapi.String(item.Name),
				},
				UnitAmount: stripeapi.Int64(item.UnitAmount),
			},
			Quantity: stripeapi.Int64(item.Quantity),
		}
	}

	params := &stripeapi.CheckoutSessionParams{
		Params:            stripeapi.Params{Context: ctx},
		Mode:              stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL:        stripeapi.String(req.SuccessURL),
		CancelURL:         stripeapi.String(req.CancelURL),
		ClientReferenceID: stripeapi.String(req.OrderID),
		LineItems:         lineItems,
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	return toSession(session), nil
}

// GetSession fetches the authoritative state of a Checkout Session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	params := &stripeapi.CheckoutSessionParams{
		Params: stripeapi.Params{Context: ctx},
	}

	session, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: get checkout session %s: %w", sessionID, err)
	}

	return toSession(session), nil
}

func toSession(s *stripeapi.CheckoutSession) *payment.Session {
	return &payment.Session{
		ID:   s.ID,
		URL:  s.URL,
		Paid: s.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusPaid,
	}
}

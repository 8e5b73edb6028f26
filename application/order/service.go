/*
Package order Application layer - checkout and order workflow orchestration.

Responsibilities:
1. Receive requests from the API controllers
2. Validate the caller-submitted total against the recomputed one
3. Drive the aggregate and the repositories through the checkout flows
4. Talk to the payment gateway for hosted sessions and reconciliation
5. Convert aggregates into response DTOs

The money-relevant rule lives here: a pending order only transitions on
the gateway's own word. The success flag carried back by the client
redirect is a hint, never the outcome.
*/
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"

	"storefront/domain/order"
	"storefront/domain/user"
	"storefront/payment"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/timefmt"

	"go.uber.org/zap"
)

// deliveryLineName is the manifest line added for the delivery surcharge.
const deliveryLineName = "Delivery Charges"

// Config carries the checkout settings injected at construction.
type Config struct {
	Currency       string  // gateway currency code
	DeliveryCharge float64 // fixed surcharge in major units
}

// ApplicationService orchestrates the order lifecycle and payment
// reconciliation workflow.
type ApplicationService struct {
	orders  order.Repository
	users   user.Repository
	gateway payment.Gateway
	cfg     Config
}

// NewApplicationService creates the order application service.
func NewApplicationService(orders order.Repository, users user.Repository, gateway payment.Gateway, cfg Config) *ApplicationService {
	return &ApplicationService{
		orders:  orders,
		users:   users,
		gateway: gateway,
		cfg:     cfg,
	}
}

// ============================================================================
// DTO definitions
// ============================================================================

// ItemRequest Checkout line item DTO
type ItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest Place order request DTO (both payment paths).
// Origin is an optional fallback for the callback base URL when the
// Origin header is absent; the COD path ignores it.
type PlaceOrderRequest struct {
	UserID  string          `json:"userId" binding:"required"`
	Items   []ItemRequest   `json:"items" binding:"required,min=1,dive"`
	Amount  float64         `json:"amount" binding:"required,gt=0"`
	Address json.RawMessage `json:"address" binding:"required"`
	Origin  string          `json:"origin,omitempty"`
}

// CheckoutResponse Gateway-path placement result
type CheckoutResponse struct {
	OrderID    string `json:"order_id"`
	SessionURL string `json:"session_url"`
}

// VerifyPaymentRequest Payment verification request DTO. Success is the
// stringified flag from the redirect query; it is advisory only.
type VerifyPaymentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Success string `json:"success"`
}

// VerifyPaymentResponse Reconciliation outcome
type VerifyPaymentResponse struct {
	OrderID string `json:"order_id"`
	Paid    bool   `json:"paid"`
}

// UpdateStatusRequest Fulfillment status update DTO
type UpdateStatusRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// OrderResponse Order response DTO
type OrderResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Items         []ItemResponse  `json:"items"`
	Amount        float64         `json:"amount"`
	Address       json.RawMessage `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	Payment       bool            `json:"payment"`
	Status        string          `json:"status"`
	Date          string          `json:"date"`
}

// ItemResponse Order line item response DTO
type ItemResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ============================================================================
// Placement - pay on delivery
// ============================================================================

// PlaceOrder records a pay-on-delivery order and clears the user's cart.
// The order is considered placed immediately; payment stays pending
// until collected at the door.
func (s *ApplicationService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	o, err := s.newOrderFromRequest(req, order.MethodCOD)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.users.ClearCart(ctx, req.UserID); err != nil {
		return nil, err
	}

	logger.Info("order placed",
		zap.String("order_id", o.ID()),
		zap.String("user_id", o.UserID()),
		zap.String("payment_method", o.PaymentMethod()))

	return convertToResponse(o), nil
}

// ============================================================================
// Placement - hosted gateway checkout
// ============================================================================

// Checkout records a pending order and opens a hosted payment session
// for it. The order is persisted before the session exists so its id
// can be embedded in the gateway callback URLs; until VerifyPayment
// resolves it, the record is indeterminate. The cart is NOT cleared
// here - only a verified payment clears it.
func (s *ApplicationService) Checkout(ctx context.Context, req PlaceOrderRequest, origin string) (*CheckoutResponse, error) {
	if origin == "" {
		return nil, errors.Validation("originating site URL is required")
	}

	o, err := s.newOrderFromRequest(req, s.gateway.Name())
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		OrderID:    o.ID(),
		Currency:   s.cfg.Currency,
		LineItems:  s.buildLineItems(o.Items()),
		SuccessURL: callbackURL(origin, o.ID(), true),
		CancelURL:  callbackURL(origin, o.ID(), false),
	})
	if err != nil {
		return nil, errors.PaymentGateway(err, "failed to create checkout session")
	}

	if err := s.orders.AttachCheckoutSession(ctx, o.ID(), session.ID); err != nil {
		return nil, err
	}

	logger.Info("checkout session created",
		zap.String("order_id", o.ID()),
		zap.String("user_id", o.UserID()),
		zap.String("session_id", session.ID))

	return &CheckoutResponse{OrderID: o.ID(), SessionURL: session.URL}, nil
}

// buildLineItems translates order items into the gateway manifest,
// converting prices to minor units and appending the surcharge line.
func (s *ApplicationService) buildLineItems(items []order.Item) []payment.LineItem {
	lineItems := make([]payment.LineItem, 0, len(items)+1)
	for _, item := range items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name(),
			UnitAmount: toMinorUnits(item.Price()),
			Quantity:   int64(item.Quantity()),
		})
	}
	lineItems = append(lineItems, payment.LineItem{
		Name:       deliveryLineName,
		UnitAmount: toMinorUnits(s.cfg.DeliveryCharge),
		Quantity:   1,
	})
	return lineItems
}

// toMinorUnits converts a major-unit price into integer subunits.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// callbackURL builds the return-trip URL embedding the order id and the
// advisory success flag as query parameters.
func callbackURL(origin, orderID string, success bool) string {
	return fmt.Sprintf("%s/verify?success=%t&orderId=%s", origin, success, url.QueryEscape(orderID))
}

// ============================================================================
// Verification / reconciliation
// ============================================================================

// VerifyPayment resolves a pending gateway order to its terminal state.
// It is the single transition point of the order state machine:
//
//	paid (per the gateway) -> confirm payment, clear the cart
//	not paid               -> delete the order record
//
// The repository's guarded update makes the confirmation race-safe: of
// two concurrent calls, one wins and the other reports a conflict. The
// client-supplied success flag is logged but never drives the outcome.
func (s *ApplicationService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	o, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if !o.IsPending() {
		return nil, order.NewOrderAlreadyResolvedError(o.ID())
	}
	if o.CheckoutSessionID() == "" {
		return nil, order.NewNoCheckoutSessionError(o.ID())
	}

	session, err := s.gateway.GetSession(ctx, o.CheckoutSessionID())
	if err != nil {
		// The order stays pending; the caller may retry once the
		// gateway is reachable again.
		return nil, errors.PaymentGateway(err, "failed to verify checkout session")
	}

	if session.Paid != (req.Success == "true") {
		logger.Warn("client success flag disagrees with gateway session state",
			zap.String("order_id", o.ID()),
			zap.String("client_flag", req.Success),
			zap.Bool("session_paid", session.Paid))
	}

	if !session.Paid {
		if err := s.orders.Remove(ctx, o.ID()); err != nil {
			return nil, err
		}
		logger.Info("order discarded, payment not completed",
			zap.String("order_id", o.ID()),
			zap.String("user_id", req.UserID))
		return &VerifyPaymentResponse{OrderID: o.ID(), Paid: false}, nil
	}

	if err := s.orders.ConfirmPayment(ctx, o.ID()); err != nil {
		return nil, err
	}

	// Cart clearing is idempotent; if it fails here the order is already
	// confirmed and a retry of the clear is safe.
	if err := s.users.ClearCart(ctx, req.UserID); err != nil {
		return nil, err
	}

	logger.Info("order payment confirmed",
		zap.String("order_id", o.ID()),
		zap.String("user_id", req.UserID))

	return &VerifyPaymentResponse{OrderID: o.ID(), Paid: true}, nil
}

// ============================================================================
// Read accessors and administrative operations
// ============================================================================

// AllOrders returns every order for the admin console, in store-native
// order. An empty store yields an empty list, not an error.
func (s *ApplicationService) AllOrders(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convertAllToResponse(orders), nil
}

// UserOrders returns the orders of one user.
func (s *ApplicationService) UserOrders(ctx context.Context, userID string) ([]*OrderResponse, error) {
	if userID == "" {
		return nil, errors.Validation("user ID is required")
	}
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return convertAllToResponse(orders), nil
}

// UpdateStatus overwrites an order's fulfillment status from the admin
// console. The value must belong to the closed status set.
func (s *ApplicationService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) error {
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	return s.orders.UpdateStatus(ctx, req.OrderID, status)
}

// ============================================================================
// Helpers
// ============================================================================

// newOrderFromRequest validates the submitted total and builds the
// aggregate. The total must equal the recomputed item sum plus the
// delivery surcharge; the workflow never trusts the caller's arithmetic.
func (s *ApplicationService) newOrderFromRequest(req PlaceOrderRequest, paymentMethod string) (*order.Order, error) {
	requests := make([]order.ItemRequest, len(req.Items))
	var itemTotal float64
	for i, item := range req.Items {
		requests[i] = order.ItemRequest{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
		itemTotal += item.Price * float64(item.Quantity)
	}

	expected := itemTotal + s.cfg.DeliveryCharge
	if !order.SameAmount(expected, req.Amount) {
		return nil, order.NewAmountMismatchError(expected, req.Amount)
	}

	return order.NewOrder(
		s.orders.NextIdentity(),
		req.UserID,
		requests,
		req.Amount,
		req.Address,
		paymentMethod,
		timefmt.Now(),
	)
}

func convertToResponse(o *order.Order) *OrderResponse {
	items := make([]ItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = ItemResponse{
			Name:     item.Name(),
			Price:    item.Price(),
			Quantity: item.Quantity(),
		}
	}
	return &OrderResponse{
		ID:            o.ID(),
		UserID:        o.UserID(),
		Items:         items,
		Amount:        o.Amount(),
		Address:       o.Address(),
		PaymentMethod: o.PaymentMethod(),
		Payment:       o.Paid(),
		Status:        string(o.Status()),
		Date:          o.PlacedAt(),
	}
}

func convertAllToResponse(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = convertToResponse(o)
	}
	return responses
}

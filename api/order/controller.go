/*
Package order - order API controller.

Responsibilities:
1. Parse and bind HTTP requests
2. Delegate to the order application service
3. Emit responses through the response package

Error handling:
1. Binding errors: response.HandleError, straight 400
2. Business errors: response.HandleAppError maps codes to statuses
3. "Payment not completed" is an outcome, not an error: the envelope
   carries success=false with a 200, matching the redirect flow the
   storefront frontend drives
*/
package order

import (
	"net/http"

	orderapp "storefront/application/order"
	"storefront/api/response"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes Register order routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.PlaceOrder)
		orderGroup.POST("/checkout", c.Checkout)
		orderGroup.POST("/verify", c.VerifyPayment)
		orderGroup.GET("", c.AllOrders)
		orderGroup.GET("/user/:userId", c.UserOrders)
		orderGroup.PUT("/:id/status", c.UpdateStatus)
	}
}

// PlaceOrder places a pay-on-delivery order.
// POST /api/v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "Order Placed Successfully")
}

// Checkout places an order paid through the hosted gateway page and
// returns the session redirect URL.
// POST /api/v1/orders/checkout
//
// The callback base URL is taken from the Origin header (the storefront
// frontend's address), matching where the customer will be redirected
// back to; clients that cannot send the header supply an origin field
// in the body instead.
func (c *Controller) Checkout(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	origin := ctx.GetHeader("Origin")
	if origin == "" {
		origin = req.Origin
	}

	result, err := c.orderService.Checkout(ctx.Request.Context(), req, origin)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, result, "checkout session created")
}

// VerifyPayment resolves a pending order on the customer's return trip
// from the gateway.
// POST /api/v1/orders/verify
func (c *Controller) VerifyPayment(ctx *gin.Context) {
	var req orderapp.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.orderService.VerifyPayment(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if !result.Paid {
		response.HandleFailure(ctx, errors.CodePaymentNotCompleted, "payment was not completed, order discarded")
		return
	}

	response.HandleSuccess(ctx, result, "payment verified")
}

// AllOrders lists every order for the admin console.
// GET /api/v1/orders
func (c *Controller) AllOrders(ctx *gin.Context) {
	orders, err := c.orderService.AllOrders(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// UserOrders lists the calling user's orders.
// GET /api/v1/orders/user/:userId
func (c *Controller) UserOrders(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.UserOrders(ctx.Request.Context(), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "user orders retrieved successfully")
}

// updateStatusBody is the request body for UpdateStatus; the order id
// comes from the path.
type updateStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus overwrites an order's fulfillment status.
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var body updateStatusBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	err := c.orderService.UpdateStatus(ctx.Request.Context(), orderapp.UpdateStatusRequest{
		OrderID: orderID,
		Status:  body.Status,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "Status Updated Successfully")
}

package order_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	orderctrl "storefront/api/order"
	orderapp "storefront/application/order"
	"storefront/domain/user"
	"storefront/infrastructure/persistence/mocks"
	"storefront/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

type testServer struct {
	engine  *gin.Engine
	orders  *mocks.MockOrderRepository
	users   *mocks.MockUserRepository
	gateway *payment.MockGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := mocks.NewMockOrderRepository()
	users := mocks.NewMockUserRepository()
	gateway := payment.NewMockGateway()

	u := user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        testUserID,
		Name:      "Test User",
		Email:     "test@example.com",
		CartData:  map[string]int{"item-1": 2},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, users.Save(context.Background(), u))

	service := orderapp.NewApplicationService(orders, users, gateway, orderapp.Config{
		Currency:       "bdt",
		DeliveryCharge: 10,
	})

	engine := gin.New()
	group := engine.Group("/api/v1")
	orderctrl.NewController(service).RegisterRoutes(group)

	return &testServer{engine: engine, orders: orders, users: users, gateway: gateway}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func placeBody() map[string]interface{} {
	return map[string]interface{}{
		"userId": testUserID,
		"items": []map[string]interface{}{
			{"name": "Item A", "price": 10, "quantity": 2},
		},
		"amount":  30,
		"address": map[string]string{"street": "1 Main St", "city": "Dhaka"},
	}
}

func TestPlaceOrderEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/orders", placeBody(), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Order Placed Successfully", env.Message)

	var data orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "COD", data.PaymentMethod)
	assert.Equal(t, "Order Placed", data.Status)
	assert.False(t, data.Payment)
}

func TestPlaceOrderEndpointBadBody(t *testing.T) {
	s := newTestServer(t)

	body := placeBody()
	delete(body, "items")

	w := s.do(t, http.MethodPost, "/api/v1/orders", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestPlaceOrderEndpointAmountMismatch(t *testing.T) {
	s := newTestServer(t)

	body := placeBody()
	body["amount"] = 25

	w := s.do(t, http.MethodPost, "/api/v1/orders", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
}

func TestCheckoutEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/orders/checkout", placeBody(),
		map[string]string{"Origin": "https://shop.example"})

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)

	var data orderapp.CheckoutResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.OrderID)
	assert.NotEmpty(t, data.SessionURL)
}

func TestCheckoutEndpointMissingOrigin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/orders/checkout", placeBody(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutEndpointBodyOriginFallback(t *testing.T) {
	s := newTestServer(t)

	body := placeBody()
	body["origin"] = "https://shop.example"

	w := s.do(t, http.MethodPost, "/api/v1/orders/checkout", body, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, s.gateway.LastRequest)
	assert.Contains(t, s.gateway.LastRequest.SuccessURL, "https://shop.example/verify")
}

// checkout drives the full checkout call and returns the new order id
// and its gateway session id.
func checkout(t *testing.T, s *testServer) (string, string) {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/orders/checkout", placeBody(),
		map[string]string{"Origin": "https://shop.example"})
	require.Equal(t, http.StatusCreated, w.Code)

	var data orderapp.CheckoutResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))

	o, err := s.orders.FindByID(context.Background(), data.OrderID)
	require.NoError(t, err)
	return data.OrderID, o.CheckoutSessionID()
}

func TestVerifyEndpointPaid(t *testing.T) {
	s := newTestServer(t)
	orderID, sessionID := checkout(t, s)
	require.NoError(t, s.gateway.MarkPaid(sessionID))

	w := s.do(t, http.MethodPost, "/api/v1/orders/verify", map[string]string{
		"orderId": orderID,
		"userId":  testUserID,
		"success": "true",
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "payment verified", env.Message)
}

func TestVerifyEndpointUnpaid(t *testing.T) {
	s := newTestServer(t)
	orderID, _ := checkout(t, s)

	w := s.do(t, http.MethodPost, "/api/v1/orders/verify", map[string]string{
		"orderId": orderID,
		"userId":  testUserID,
		"success": "true", // advisory flag lies; the gateway says unpaid
	}, nil)

	// Business outcome, not an error: 200 with success=false.
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "PAYMENT_NOT_COMPLETED", env.Error)
}

func TestVerifyEndpointConflictOnSecondCall(t *testing.T) {
	s := newTestServer(t)
	orderID, sessionID := checkout(t, s)
	require.NoError(t, s.gateway.MarkPaid(sessionID))

	body := map[string]string{"orderId": orderID, "userId": testUserID, "success": "true"}

	w := s.do(t, http.MethodPost, "/api/v1/orders/verify", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/orders/verify", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ORDER_ALREADY_RESOLVED", decode(t, w).Error)
}

func TestVerifyEndpointUnknownOrder(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/orders/verify", map[string]string{
		"orderId": "order-missing",
		"userId":  testUserID,
		"success": "true",
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decode(t, w).Error)
}

func TestListEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/orders", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusCreated,
		s.do(t, http.MethodPost, "/api/v1/orders", placeBody(), nil).Code)

	w = s.do(t, http.MethodGet, "/api/v1/orders", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var all []orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &all))
	assert.Len(t, all, 1)

	w = s.do(t, http.MethodGet, "/api/v1/orders/user/"+testUserID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var mine []orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &mine))
	assert.Len(t, mine, 1)

	w = s.do(t, http.MethodGet, "/api/v1/orders/user/user-2", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var theirs []orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &theirs))
	assert.Empty(t, theirs)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/orders", placeBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &placed))

	path := fmt.Sprintf("/api/v1/orders/%s/status", placed.ID)

	w = s.do(t, http.MethodPut, path, map[string]string{"status": "Shipped"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Status Updated Successfully", decode(t, w).Message)

	// Values outside the closed set are rejected.
	w = s.do(t, http.MethodPut, path, map[string]string{"status": "Teleported"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error)

	// Unknown order ids are a 404.
	w = s.do(t, http.MethodPut, "/api/v1/orders/order-missing/status",
		map[string]string{"status": "Shipped"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decode(t, w).Error)
}

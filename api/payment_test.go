package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelclient/internal/domain"
	"hotelclient/internal/flow/payment"
	"hotelclient/internal/gateway"
)

type MockPaymentAPI struct {
	mock.Mock
}

func (m *MockPaymentAPI) CreatePaymentOrder(ctx context.Context, reference string, amount float64) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, reference, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockPaymentAPI) VerifyPayment(ctx context.Context, attempt domain.PaymentAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func newPaymentRouter(api *MockPaymentAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	merchant := payment.Merchant{Currency: "INR", Name: "ABC Hotel", Description: "Room Booking Payment", ThemeColor: "#007F86"}
	NewPaymentHandler(api, merchant, time.Minute).Register(router.Group("/"))
	return router
}

func enterPayment(t *testing.T, router *gin.Engine) paymentEnterResponse {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/payment/BR123/300", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp paymentEnterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPaymentHandler_EnterCreatesOrder(t *testing.T) {
	api := &MockPaymentAPI{}
	api.On("CreatePaymentOrder", mock.Anything, "BR123", float64(300)).
		Return(&domain.PaymentOrder{OrderID: "order_77", Key: "rzp_test_key"}, nil).Once()

	resp := enterPayment(t, newPaymentRouter(api))

	assert.Equal(t, "BR123", resp.BookingReference)
	assert.Equal(t, float64(300), resp.Amount)
	assert.Equal(t, "order_77", resp.OrderID)
	assert.Equal(t, "rzp_test_key", resp.Key)
	assert.Empty(t, resp.Error)
	api.AssertExpectations(t)
}

func TestPaymentHandler_PayReturnsCheckoutConfig(t *testing.T) {
	api := &MockPaymentAPI{}
	api.On("CreatePaymentOrder", mock.Anything, "BR123", float64(300)).
		Return(&domain.PaymentOrder{OrderID: "order_77", Key: "rzp_test_key"}, nil).Once()

	router := newPaymentRouter(api)
	enterPayment(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/payment/BR123/300/pay", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Checkout gateway.CheckoutOptions `json:"checkout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(30000), resp.Checkout.Amount)
	assert.Equal(t, "INR", resp.Checkout.Currency)
	assert.Equal(t, "order_77", resp.Checkout.OrderID)
}

func TestPaymentHandler_FailureCallbackRedirectsToFailurePage(t *testing.T) {
	api := &MockPaymentAPI{}
	api.On("CreatePaymentOrder", mock.Anything, "BR123", float64(300)).
		Return(&domain.PaymentOrder{OrderID: "order_77", Key: "rzp_test_key"}, nil).Once()
	api.On("VerifyPayment", mock.Anything, mock.MatchedBy(func(a domain.PaymentAttempt) bool {
		return !a.Success && a.FailureReason == "card declined" && a.BookingReference == "BR123"
	})).Return(nil).Once()

	router := newPaymentRouter(api)
	enterPayment(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/payment/BR123/300/pay", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, _ := json.Marshal(gateway.FailureResponse{Error: gateway.FailureError{
		Description: "card declined",
		Metadata:    gateway.FailureMetadata{PaymentID: "pay_9", OrderID: "order_77"},
	}})
	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payment-callback/BR123/failure", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp paymentCallbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/payment-failure/BR123", resp.Redirect)
	api.AssertExpectations(t)
}

func TestPaymentHandler_SuccessCallbackRedirectsToSuccessPage(t *testing.T) {
	api := &MockPaymentAPI{}
	api.On("CreatePaymentOrder", mock.Anything, "BR123", float64(300)).
		Return(&domain.PaymentOrder{OrderID: "order_77", Key: "rzp_test_key"}, nil).Once()
	api.On("VerifyPayment", mock.Anything, mock.MatchedBy(func(a domain.PaymentAttempt) bool {
		return a.Success && a.GatewayPaymentID == "pay_9" && a.GatewaySignature == "sig_a"
	})).Return(nil).Once()

	router := newPaymentRouter(api)
	enterPayment(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/payment/BR123/300/pay", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, _ := json.Marshal(gateway.SuccessResponse{PaymentID: "pay_9", OrderID: "order_77", Signature: "sig_a"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payment-callback/BR123/success", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp paymentCallbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/payment-success/BR123", resp.Redirect)
	api.AssertExpectations(t)
}

func TestPaymentHandler_OutcomePagesRenderParams(t *testing.T) {
	router := newPaymentRouter(&MockPaymentAPI{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/payment-failure/BR123/300", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		BookingReference string  `json:"bookingReference"`
		Amount           float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "BR123", view.BookingReference)
	assert.Equal(t, float64(300), view.Amount)
}

func TestPaymentHandler_CallbackWithoutRunIs404(t *testing.T) {
	router := newPaymentRouter(&MockPaymentAPI{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/payment-callback/UNKNOWN/success", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

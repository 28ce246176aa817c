package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"hotelclient/internal/flow/outcome"
	"hotelclient/internal/flow/payment"
	"hotelclient/internal/gateway"
	"hotelclient/internal/ui"
)

type PaymentHandler struct {
	api      payment.PaymentAPI
	merchant payment.Merchant
	dismiss  time.Duration

	mu   sync.Mutex
	runs map[string]*paymentRun
}

// paymentRun is one payment view occupancy: the flow plus the widget whose
// callbacks the browser will deliver back over HTTP.
type paymentRun struct {
	flow   *payment.Flow
	banner *ui.Banner
	nav    *navRecorder
	widget *deferredWidget
}

type paymentEnterResponse struct {
	BookingReference string  `json:"bookingReference"`
	Amount           float64 `json:"amount"`
	OrderID          string  `json:"orderId,omitempty"`
	Key              string  `json:"key,omitempty"`
	Error            string  `json:"error,omitempty"`
}

type paymentCallbackResponse struct {
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

func NewPaymentHandler(api payment.PaymentAPI, merchant payment.Merchant, dismiss time.Duration) *PaymentHandler {
	return &PaymentHandler{
		api:      api,
		merchant: merchant,
		dismiss:  dismiss,
		runs:     map[string]*paymentRun{},
	}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/payment/:bookingReference/:amount", h.enter)
	router.POST("/payment/:bookingReference/:amount/pay", h.pay)
	router.POST("/payment-callback/:bookingReference/success", h.success)
	router.POST("/payment-callback/:bookingReference/failure", h.failure)
	router.GET("/payment-success/:bookingReference", h.successPage)
	router.GET("/payment-failure/:bookingReference", h.failurePage)
	router.GET("/payment-failure/:bookingReference/:amount", h.failurePage)
}

// enter opens the payment view: it parses the navigation parameters and
// requests a gateway order when both are present.
func (h *PaymentHandler) enter(c *gin.Context) {
	reference := c.Param("bookingReference")
	amount, err := strconv.ParseFloat(c.Param("amount"), 64)
	if err != nil {
		amount = 0
	}

	run := &paymentRun{
		banner: ui.NewBanner(h.dismiss),
		nav:    &navRecorder{},
		widget: &deferredWidget{},
	}
	run.flow = payment.New(h.api, run.widget, run.banner, run.nav, h.merchant)
	run.flow.Enter(c.Request.Context(), reference, amount)

	h.mu.Lock()
	h.runs[reference] = run
	h.mu.Unlock()

	c.JSON(http.StatusOK, paymentEnterResponse{
		BookingReference: reference,
		Amount:           run.flow.Amount(),
		OrderID:          run.flow.OrderID(),
		Key:              run.flow.Key(),
		Error:            run.banner.Message(),
	})
}

// pay opens the widget and hands its checkout configuration to the browser.
func (h *PaymentHandler) pay(c *gin.Context) {
	run, ok := h.run(c.Param("bookingReference"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no payment in progress"})
		return
	}

	run.flow.Pay(c.Request.Context())
	if msg := run.banner.Message(); msg != "" {
		c.JSON(http.StatusOK, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout": run.widget.Options()})
}

func (h *PaymentHandler) success(c *gin.Context) {
	run, ok := h.run(c.Param("bookingReference"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no payment in progress"})
		return
	}

	var resp gateway.SuccessResponse
	if err := c.ShouldBindJSON(&resp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run.widget.DeliverSuccess(resp)
	c.JSON(http.StatusOK, paymentCallbackResponse{
		Redirect: run.nav.Path(),
		Error:    run.banner.Message(),
	})
}

func (h *PaymentHandler) failure(c *gin.Context) {
	run, ok := h.run(c.Param("bookingReference"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no payment in progress"})
		return
	}

	var resp gateway.FailureResponse
	if err := c.ShouldBindJSON(&resp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run.widget.DeliverFailure(resp)
	c.JSON(http.StatusOK, paymentCallbackResponse{
		Redirect: run.nav.Path(),
		Error:    run.banner.Message(),
	})
}

func (h *PaymentHandler) successPage(c *gin.Context) {
	view := outcome.FromParams(c.Param("bookingReference"), c.Param("amount"))
	c.JSON(http.StatusOK, view)
}

func (h *PaymentHandler) failurePage(c *gin.Context) {
	view := outcome.FromParams(c.Param("bookingReference"), c.Param("amount"))
	c.JSON(http.StatusOK, view)
}

func (h *PaymentHandler) run(reference string) (*paymentRun, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	run, ok := h.runs[reference]
	return run, ok
}

// deferredWidget holds the checkout options until the browser-side widget
// reports back through the callback endpoints.
type deferredWidget struct {
	mu   sync.Mutex
	opts *gateway.CheckoutOptions
}

func (w *deferredWidget) Open(opts gateway.CheckoutOptions) error {
	w.mu.Lock()
	w.opts = &opts
	w.mu.Unlock()
	return nil
}

func (w *deferredWidget) Options() *gateway.CheckoutOptions {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts
}

func (w *deferredWidget) DeliverSuccess(resp gateway.SuccessResponse) {
	if opts := w.Options(); opts != nil && opts.Handler != nil {
		opts.Handler(resp)
	}
}

func (w *deferredWidget) DeliverFailure(resp gateway.FailureResponse) {
	if opts := w.Options(); opts != nil && opts.OnFailure != nil {
		opts.OnFailure(resp)
	}
}

var _ gateway.Widget = (*deferredWidget)(nil)

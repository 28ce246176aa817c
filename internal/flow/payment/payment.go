package payment

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"

	"hotelclient/internal/backend"
	"hotelclient/internal/domain"
	"hotelclient/internal/gateway"
	"hotelclient/internal/ui"
)

type PaymentAPI interface {
	CreatePaymentOrder(ctx context.Context, reference string, amount float64) (*domain.PaymentOrder, error)
	VerifyPayment(ctx context.Context, attempt domain.PaymentAttempt) error
}

// Merchant is the fixed metadata shown in the gateway widget.
type Merchant struct {
	Currency    string
	Name        string
	Description string
	ThemeColor  string
}

// Flow drives the payment view: order creation on entry, opening the
// gateway widget, and reconciling its success/failure callbacks into the
// two terminal outcomes.
type Flow struct {
	api      PaymentAPI
	widget   gateway.Widget
	banner   *ui.Banner
	nav      ui.Navigator
	merchant Merchant

	mu         sync.Mutex
	reference  string
	amount     float64
	orderID    string
	gatewayKey string
	processing bool
	attemptID  string
	navigated  bool
}

func New(api PaymentAPI, widget gateway.Widget, banner *ui.Banner, nav ui.Navigator, merchant Merchant) *Flow {
	return &Flow{api: api, widget: widget, banner: banner, nav: nav, merchant: merchant}
}

// Enter reads the booking reference and amount from the navigation context
// and, when both are present, requests a gateway order from the backend.
func (f *Flow) Enter(ctx context.Context, reference string, amount float64) {
	f.reference = reference
	f.amount = amount
	if reference == "" || amount == 0 {
		return
	}

	order, err := f.api.CreatePaymentOrder(ctx, reference, amount)
	if err != nil {
		f.banner.Show(backend.Message(err, "Failed to initialize payment"))
		return
	}
	f.orderID = order.OrderID
	f.gatewayKey = order.Key
}

// Pay opens the gateway widget. All four prerequisites must be present.
// Each call mints a fresh attempt id; callbacks from a superseded attempt
// or delivered after navigation are dropped.
func (f *Flow) Pay(ctx context.Context) {
	if f.reference == "" || f.amount == 0 || f.gatewayKey == "" || f.orderID == "" {
		f.banner.Show("Payment initialization failed")
		return
	}
	f.processing = true

	attemptID := uuid.NewString()
	f.mu.Lock()
	f.attemptID = attemptID
	f.mu.Unlock()

	opts := gateway.CheckoutOptions{
		Key:         f.gatewayKey,
		Amount:      int64(math.Round(f.amount * 100)),
		Currency:    f.merchant.Currency,
		Name:        f.merchant.Name,
		Description: f.merchant.Description,
		OrderID:     f.orderID,
		Notes:       map[string]string{"bookingReference": f.reference},
		ThemeColor:  f.merchant.ThemeColor,
		Handler: func(resp gateway.SuccessResponse) {
			f.handleSuccess(ctx, attemptID, resp)
		},
		OnFailure: func(resp gateway.FailureResponse) {
			f.handleFailure(ctx, attemptID, resp)
		},
	}

	if err := f.widget.Open(opts); err != nil {
		f.processing = false
		f.banner.Show("Unable to open payment widget")
	}
}

func (f *Flow) handleSuccess(ctx context.Context, attemptID string, resp gateway.SuccessResponse) {
	if !f.claim(attemptID) {
		return
	}

	attempt := domain.PaymentAttempt{
		BookingReference: f.reference,
		GatewayPaymentID: resp.PaymentID,
		GatewayOrderID:   resp.OrderID,
		GatewaySignature: resp.Signature,
		Amount:           f.amount,
		Success:          true,
	}

	err := f.api.VerifyPayment(ctx, attempt)
	f.processing = false
	if err != nil {
		f.banner.Show(backend.Message(err, "Payment verification failed"))
		f.navigate("/payment-failure/" + f.reference)
		return
	}
	f.navigate("/payment-success/" + f.reference)
}

// handleFailure reports the failed attempt to the backend and lands on the
// failure view regardless of how that report itself went.
func (f *Flow) handleFailure(ctx context.Context, attemptID string, resp gateway.FailureResponse) {
	if !f.claim(attemptID) {
		return
	}

	attempt := domain.PaymentAttempt{
		BookingReference: f.reference,
		GatewayPaymentID: resp.Error.Metadata.PaymentID,
		GatewayOrderID:   resp.Error.Metadata.OrderID,
		Amount:           f.amount,
		Success:          false,
		FailureReason:    resp.Error.Description,
	}

	err := f.api.VerifyPayment(ctx, attempt)
	f.processing = false
	if err != nil {
		f.banner.Show(backend.Message(err, "Payment verification failed"))
	}
	f.navigate("/payment-failure/" + f.reference)
}

// claim settles the attempt exactly once. Stale attempt ids and callbacks
// arriving after the view navigated away are ignored.
func (f *Flow) claim(attemptID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.navigated || f.attemptID != attemptID {
		return false
	}
	f.attemptID = ""
	return true
}

func (f *Flow) navigate(path string) {
	f.mu.Lock()
	f.navigated = true
	f.mu.Unlock()
	f.nav.NavigateTo(path)
}

func (f *Flow) Reference() string { return f.reference }
func (f *Flow) Amount() float64   { return f.amount }
func (f *Flow) OrderID() string   { return f.orderID }
func (f *Flow) Key() string       { return f.gatewayKey }
func (f *Flow) Processing() bool  { return f.processing }

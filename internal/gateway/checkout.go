package gateway

// CheckoutOptions configures one opening of the third-party payment widget.
// Amount is in minor currency units.
type CheckoutOptions struct {
	Key         string            `json:"key"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OrderID     string            `json:"order_id"`
	Notes       map[string]string `json:"notes"`
	ThemeColor  string            `json:"theme_color"`

	// Handler receives the widget's synchronous success callback; OnFailure
	// receives its payment.failed event.
	Handler   func(SuccessResponse) `json:"-"`
	OnFailure func(FailureResponse) `json:"-"`
}

// SuccessResponse is the widget's success callback payload.
type SuccessResponse struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// FailureResponse is the widget's payment.failed event payload.
type FailureResponse struct {
	Error FailureError `json:"error"`
}

type FailureError struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Metadata    FailureMetadata `json:"metadata"`
}

type FailureMetadata struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
}

// Widget opens the gateway's modal checkout. The production implementation
// hands the options to the browser; tests drive the callbacks directly.
type Widget interface {
	Open(opts CheckoutOptions) error
}

package domain

// PaymentOrder is the gateway order minted by the backend before the
// payment widget is opened.
type PaymentOrder struct {
	OrderID string `json:"orderId"`
	Key     string `json:"key"`
}

// PaymentAttempt is built client-side from gateway callback data and
// submitted exactly once per attempt; the client keeps no attempt history.
type PaymentAttempt struct {
	BookingReference string  `json:"bookingReference"`
	GatewayPaymentID string  `json:"razorpayPaymentId"`
	GatewayOrderID   string  `json:"razorpayOrderId"`
	GatewaySignature string  `json:"razorpaySignature"`
	Amount           float64 `json:"amount"`
	Success          bool    `json:"success"`
	FailureReason    string  `json:"failureReason"`
}

package models

// ConfirmPaymentRequest is the gateway callback body for
// POST /payments/confirm. Signature is hex HMAC-SHA256 over
// "orderId|paymentId" keyed by the webhook secret.
type ConfirmPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// ConfirmPaymentResult reports the confirmation outcome. AlreadyProcessed is
// set when the payment had been captured before this call; the call is still
// a success.
type ConfirmPaymentResult struct {
	Verified         bool   `json:"verified"`
	AlreadyProcessed bool   `json:"alreadyProcessed,omitempty"`
	BookingID        string `json:"bookingId"`
	PaymentID        string `json:"paymentId"`
	Status           string `json:"status"`
}

// InitiatePaymentRequest starts a gateway order for a pending booking's
// advance amount.
type InitiatePaymentRequest struct {
	BookingID string `json:"bookingId"`
}

// InitiatePaymentResult carries the gateway references the client needs to
// complete the charge.
type InitiatePaymentResult struct {
	OrderID      string  `json:"orderId"`
	ClientSecret string  `json:"clientSecret,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

package models

import "time"

// Payment gateway states. A row transitions from created to captured exactly
// once; repeated confirmation callbacks after capture are no-ops.
const (
	PaymentCreated  = "created"
	PaymentCaptured = "captured"
	PaymentGWFailed = "failed"
)

// Payment tracks the advance charged for a booking through the hosted
// gateway. One payment row per booking; GatewayOrderID is the gateway's
// order reference and is unique across rows.
type Payment struct {
	ID               string    `bson:"id" json:"id"`
	BookingID        string    `bson:"booking_id" json:"bookingId"`
	GatewayOrderID   string    `bson:"gateway_order_id" json:"gatewayOrderId"`
	GatewayPaymentID string    `bson:"gateway_payment_id,omitempty" json:"gatewayPaymentId,omitempty"`
	Amount           float64   `bson:"amount" json:"amount"`
	Currency         string    `bson:"currency" json:"currency"`
	Status           string    `bson:"status" json:"status"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

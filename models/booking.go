package models

import "time"

// Booking lifecycle states. A booking only reaches StatusConfirmed through
// the payment confirmation flow, together with PaymentPaid.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Booking is the header record for a studio reservation. Its time ranges
// live in separate Slot rows keyed by the booking id.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	ServiceID      string    `bson:"service_id" json:"serviceId"`
	CustomerName   string    `bson:"customer_name" json:"customerName"`
	CustomerEmail  string    `bson:"customer_email" json:"customerEmail"`
	CustomerPhone  string    `bson:"customer_phone,omitempty" json:"customerPhone,omitempty"`
	TotalAmount    float64   `bson:"total_amount" json:"totalAmount"`
	AdvanceAmount  float64   `bson:"advance_amount" json:"advanceAmount"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	AddOns         []string  `bson:"add_ons,omitempty" json:"addOns,omitempty"`
	Status         string    `bson:"status" json:"status"`
	PaymentStatus  string    `bson:"payment_status" json:"paymentStatus"`
	SlotCount      int       `bson:"slot_count" json:"slotCount"`
	IdempotencyKey string    `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

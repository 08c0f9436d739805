package bookingRepo

import (
	"context"

	"github.com/strumhouse/strumhouse-main-sub001/models"
)

// BookingRepository is the read/write surface over booking headers and their
// slot rows. The store has no cross-collection transactions, so multi-record
// writes are separate calls and the service layer compensates on partial
// failure.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByIdempotencyKey returns (nil, nil) when no booking carries the key.
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error)
	// Delete removes a booking header; used to compensate a failed slot write.
	Delete(ctx context.Context, id string) error

	InsertSlots(ctx context.Context, slots []models.Slot) error
	DeleteSlotsByBooking(ctx context.Context, bookingID string) error
	// ConfirmedSlots returns the slots of confirmed+paid bookings for the
	// service on the given date. Pending bookings do not reserve slots.
	ConfirmedSlots(ctx context.Context, serviceID, date string) ([]models.Slot, error)

	// MarkConfirmedPaid transitions status to confirmed and payment_status to
	// paid. Driven only by the payment confirmation flow.
	MarkConfirmedPaid(ctx context.Context, id string) error
}

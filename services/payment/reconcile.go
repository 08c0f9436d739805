package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeBookingRepair is the task enqueued when a payment was captured but
// the booking-side update failed. The worker retries the booking update
// until the two records agree again.
const TypeBookingRepair = "payment:reconcile"

// RepairPayload identifies the diverged pair.
type RepairPayload struct {
	OrderID   string `json:"orderId"`
	BookingID string `json:"bookingId"`
}

// Reconciler schedules repair of a captured-payment/pending-booking
// divergence.
type Reconciler interface {
	EnqueueBookingRepair(ctx context.Context, orderID, bookingID string) error
}

// AsynqReconciler enqueues repair tasks on the shared Redis-backed queue.
type AsynqReconciler struct {
	Client *asynq.Client
}

func NewAsynqReconciler(client *asynq.Client) *AsynqReconciler {
	return &AsynqReconciler{Client: client}
}

func (r *AsynqReconciler) EnqueueBookingRepair(ctx context.Context, orderID, bookingID string) error {
	payload, err := json.Marshal(RepairPayload{OrderID: orderID, BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to encode repair payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingRepair, payload)
	if _, err := r.Client.EnqueueContext(ctx, task, asynq.MaxRetry(10)); err != nil {
		return fmt.Errorf("failed to enqueue booking repair: %w", err)
	}
	return nil
}

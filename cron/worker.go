package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/booking"
	paymentRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/payment"
	"github.com/strumhouse/strumhouse-main-sub001/models"
	"github.com/strumhouse/strumhouse-main-sub001/services/payment"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartReconcileWorker runs the background queue that repairs bookings left
// pending after their payment was captured. Asynq retries failed handlers
// with backoff, so a temporarily unreachable store resolves itself once the
// store returns.
func StartReconcileWorker(
	redisOpt asynq.RedisClientOpt,
	bookings bookingRepo.BookingRepository,
	payments paymentRepo.PaymentRepository,
	logger *zap.Logger,
) *asynq.Server {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(payment.TypeBookingRepair, handleBookingRepair(bookings, payments, logger))

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			logger.Info("starting reconcile worker", zap.Int("attempt", attempt))
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reconcile worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("reconcile worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()

	return srv
}

func handleBookingRepair(
	bookings bookingRepo.BookingRepository,
	payments paymentRepo.PaymentRepository,
	logger *zap.Logger,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p payment.RepairPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid repair payload", zap.Error(err))
			return fmt.Errorf("invalid repair payload: %v: %w", err, asynq.SkipRetry)
		}

		// Repair only applies while the payment really is captured; anything
		// else means the divergence resolved some other way.
		pay, err := payments.GetByOrderID(ctx, p.OrderID)
		if err != nil {
			return fmt.Errorf("repair lookup for order %s: %w", p.OrderID, err)
		}
		if pay.Status != models.PaymentCaptured {
			logger.Warn("skipping repair, payment not captured",
				zap.String("orderId", p.OrderID),
				zap.String("status", pay.Status))
			return nil
		}

		if err := bookings.MarkConfirmedPaid(ctx, p.BookingID); err != nil {
			return fmt.Errorf("repair booking %s: %w", p.BookingID, err)
		}
		logger.Info("repaired booking after partial payment transition",
			zap.String("bookingId", p.BookingID),
			zap.String("orderId", p.OrderID))
		return nil
	}
}

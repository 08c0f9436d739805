package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	bookingRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/booking"
	paymentRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/payment"
	"github.com/strumhouse/strumhouse-main-sub001/models"
	"github.com/strumhouse/strumhouse-main-sub001/services/notification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service handles gateway order initiation and the asynchronous
// confirmation callback.
type Service interface {
	Confirm(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResult, error)
	Initiate(ctx context.Context, req models.InitiatePaymentRequest) (*models.InitiatePaymentResult, error)
}

// DefaultService verifies the callback signature and performs the
// payment+booking transition idempotently. The two updates have no shared
// transaction; a failure between them is surfaced as an inconsistency and
// handed to the reconciler, never swallowed.
type DefaultService struct {
	Payments paymentRepo.PaymentRepository
	Bookings bookingRepo.BookingRepository
	Gateway  GatewayClient
	// Secret keys the HMAC over the callback; held server-side only.
	Secret     string
	Currency   string
	Events     notification.Publisher
	Reconciler Reconciler
	Logger     *zap.Logger
}

func (s *DefaultService) Confirm(ctx context.Context, req models.ConfirmPaymentRequest) (*models.ConfirmPaymentResult, error) {
	var missing []string
	if req.OrderID == "" {
		missing = append(missing, "orderId")
	}
	if req.PaymentID == "" {
		missing = append(missing, "paymentId")
	}
	if req.Signature == "" {
		missing = append(missing, "signature")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Missing: missing}
	}

	if !verifySignature(s.Secret, req.OrderID, req.PaymentID, req.Signature) {
		return nil, &models.SecurityError{Message: "payment signature verification failed"}
	}

	pay, err := s.Payments.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, &models.NotFoundError{Entity: "payment", Key: req.OrderID}
		}
		return nil, &models.StoreError{Op: "payment lookup", Err: err}
	}

	if pay.Status == models.PaymentCaptured {
		return &models.ConfirmPaymentResult{
			Verified:         true,
			AlreadyProcessed: true,
			BookingID:        pay.BookingID,
			PaymentID:        pay.GatewayPaymentID,
			Status:           models.PaymentCaptured,
		}, nil
	}

	captured, err := s.Payments.Capture(ctx, req.OrderID, req.PaymentID)
	if err != nil {
		return nil, &models.StoreError{Op: "capture payment", Err: err}
	}
	if !captured {
		// A concurrent duplicate callback won the conditional update.
		return &models.ConfirmPaymentResult{
			Verified:         true,
			AlreadyProcessed: true,
			BookingID:        pay.BookingID,
			PaymentID:        req.PaymentID,
			Status:           models.PaymentCaptured,
		}, nil
	}

	if err := s.Bookings.MarkConfirmedPaid(ctx, pay.BookingID); err != nil {
		s.Logger.Error("payment captured but booking update failed",
			zap.String("orderId", req.OrderID),
			zap.String("bookingId", pay.BookingID),
			zap.Error(err))
		if s.Reconciler != nil {
			if enqErr := s.Reconciler.EnqueueBookingRepair(ctx, req.OrderID, pay.BookingID); enqErr != nil {
				s.Logger.Error("failed to enqueue booking repair",
					zap.String("orderId", req.OrderID), zap.Error(enqErr))
			}
		}
		return nil, &models.InconsistencyError{
			Step:      "booking_update",
			BookingID: pay.BookingID,
			PaymentID: req.PaymentID,
			OrderID:   req.OrderID,
			Err:       err,
		}
	}

	if s.Events != nil {
		s.Events.Publish(ctx, "payments", "update", pay.ID)
		s.Events.Publish(ctx, "bookings", "update", pay.BookingID)
	}
	s.Logger.Info("payment confirmed",
		zap.String("orderId", req.OrderID),
		zap.String("bookingId", pay.BookingID))

	return &models.ConfirmPaymentResult{
		Verified:  true,
		BookingID: pay.BookingID,
		PaymentID: req.PaymentID,
		Status:    models.PaymentCaptured,
	}, nil
}

func (s *DefaultService) Initiate(ctx context.Context, req models.InitiatePaymentRequest) (*models.InitiatePaymentResult, error) {
	if req.BookingID == "" {
		return nil, &models.ValidationError{Missing: []string{"bookingId"}}
	}

	booking, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &models.NotFoundError{Entity: "booking", Key: req.BookingID}
		}
		return nil, &models.StoreError{Op: "booking lookup", Err: err}
	}
	if booking.Status != models.StatusPending {
		return nil, &models.ValidationError{Message: "booking is not awaiting payment"}
	}

	existing, err := s.Payments.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, &models.StoreError{Op: "payment lookup", Err: err}
	}
	if existing != nil {
		return nil, &models.ValidationError{Message: "payment already initiated for this booking"}
	}

	orderID, clientSecret, err := s.Gateway.CreateOrder(ctx, booking.AdvanceAmount, s.Currency, map[string]string{
		"booking_id": booking.ID,
	})
	if err != nil {
		return nil, &models.StoreError{Op: "create gateway order", Err: err}
	}

	now := nowUTC()
	pay := &models.Payment{
		ID:             uuid.New().String(),
		BookingID:      booking.ID,
		GatewayOrderID: orderID,
		Amount:         booking.AdvanceAmount,
		Currency:       s.Currency,
		Status:         models.PaymentCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Payments.Create(ctx, pay); err != nil {
		return nil, &models.StoreError{Op: "insert payment", Err: err}
	}

	if s.Events != nil {
		s.Events.Publish(ctx, "payments", "insert", pay.ID)
	}

	return &models.InitiatePaymentResult{
		OrderID:      orderID,
		ClientSecret: clientSecret,
		Amount:       pay.Amount,
		Currency:     pay.Currency,
	}, nil
}

// verifySignature checks hex HMAC-SHA256 over "orderId|paymentId" with a
// constant-time compare so a forged callback learns nothing from timing.
func verifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

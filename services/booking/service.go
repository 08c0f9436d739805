package booking

import (
	"context"
	"time"

	bookingRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/booking"
	serviceRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/service"
	userRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/user"
	"github.com/strumhouse/strumhouse-main-sub001/models"
	"github.com/strumhouse/strumhouse-main-sub001/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService creates bookings as all-or-nothing units.
type BookingService interface {
	Create(ctx context.Context, req models.CreateBookingRequest) (*models.CreateBookingResult, error)
}

// DefaultBookingService validates a request, re-checks availability right
// before the write, and persists the booking header plus its slot rows. The
// store has no cross-collection transactions, so a failed slot write is
// compensated by deleting the just-created header.
type DefaultBookingService struct {
	Users        userRepo.UserRepository
	Services     serviceRepo.ServiceRepository
	Repo         bookingRepo.BookingRepository
	Availability AvailabilityService
	Events       notification.Publisher
	Logger       *zap.Logger
}

func (s *DefaultBookingService) Create(ctx context.Context, req models.CreateBookingRequest) (*models.CreateBookingResult, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.Repo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, &models.StoreError{Op: "idempotency lookup", Err: err}
		}
		if existing != nil {
			return &models.CreateBookingResult{
				BookingID:    existing.ID,
				SlotsWritten: existing.SlotCount,
				Duplicate:    true,
			}, nil
		}
	}

	ok, err := s.Users.Exists(ctx, req.UserID)
	if err != nil {
		return nil, &models.StoreError{Op: "user lookup", Err: err}
	}
	if !ok {
		return nil, &models.ReferenceError{Entity: "user", ID: req.UserID}
	}
	ok, err = s.Services.Exists(ctx, req.ServiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "service lookup", Err: err}
	}
	if !ok {
		return nil, &models.ReferenceError{Entity: "service", ID: req.ServiceID}
	}

	requested := req.RequestedSlots()
	ranges := make([]models.SlotRange, len(requested))
	for i, input := range requested {
		rng, err := input.Range()
		if err != nil {
			return nil, &models.ValidationError{Message: err.Error()}
		}
		ranges[i] = rng
	}

	// Re-check as close to the write as possible. A narrow race window
	// remains between here and the insert; losing racers are caught again
	// at payment confirmation since only paid bookings reserve slots.
	availability, err := s.Availability.Check(ctx, req.ServiceID, requested)
	if err != nil {
		return nil, err
	}
	if !availability.Free {
		return nil, &models.ConflictError{Conflicts: availability.Conflicts}
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		ServiceID:      req.ServiceID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		TotalAmount:    req.TotalAmount,
		AdvanceAmount:  req.AdvanceAmount,
		Notes:          req.Notes,
		AddOns:         req.AddOns,
		Status:         models.StatusPending,
		PaymentStatus:  models.PaymentPending,
		SlotCount:      len(ranges),
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, &models.StoreError{Op: "insert booking", Err: err}
	}

	slots := make([]models.Slot, len(ranges))
	for i, rng := range ranges {
		slots[i] = models.Slot{
			ID:        uuid.New().String(),
			BookingID: booking.ID,
			ServiceID: booking.ServiceID,
			Date:      rng.Date,
			Start:     rng.Start,
			End:       rng.End,
		}
	}
	if err := s.Repo.InsertSlots(ctx, slots); err != nil {
		// Compensate: the insert can partially succeed, so clear any slot
		// rows that made it in, then the header. Orphan slots are harmless
		// on their own but must not outlive the booking.
		if cleanErr := s.Repo.DeleteSlotsByBooking(ctx, booking.ID); cleanErr != nil {
			s.Logger.Warn("failed to clean up slots for rolled-back booking",
				zap.String("bookingId", booking.ID),
				zap.Error(cleanErr))
		}
		if delErr := s.Repo.Delete(ctx, booking.ID); delErr != nil {
			s.Logger.Error("compensating delete failed, stale booking header left behind",
				zap.String("bookingId", booking.ID),
				zap.Error(delErr))
			return nil, &models.InconsistencyError{
				Step:      "booking_rollback",
				BookingID: booking.ID,
				Err:       delErr,
			}
		}
		return nil, &models.StoreError{Op: "insert slots", Err: err}
	}

	if s.Events != nil {
		s.Events.Publish(ctx, "bookings", "insert", booking.ID)
	}
	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("serviceId", booking.ServiceID),
		zap.Int("slots", len(slots)))

	return &models.CreateBookingResult{
		BookingID:    booking.ID,
		SlotsWritten: len(slots),
	}, nil
}

func validateCreateRequest(req models.CreateBookingRequest) error {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if req.ServiceID == "" {
		missing = append(missing, "serviceId")
	}
	if req.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if req.CustomerEmail == "" {
		missing = append(missing, "customerEmail")
	}
	if len(req.Slots) == 0 {
		if req.Date == "" {
			missing = append(missing, "date")
		}
		if req.Start == "" {
			missing = append(missing, "start")
		}
		if req.End == "" {
			missing = append(missing, "end")
		}
	}
	if req.TotalAmount <= 0 {
		missing = append(missing, "totalAmount")
	}
	if req.AdvanceAmount <= 0 {
		missing = append(missing, "advanceAmount")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Missing: missing}
	}
	if req.AdvanceAmount > req.TotalAmount {
		return &models.ValidationError{Message: "advanceAmount cannot exceed totalAmount"}
	}
	return nil
}

package booking

import (
	"context"

	blockedRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/blocked"
	bookingRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/booking"
	"github.com/strumhouse/strumhouse-main-sub001/models"
)

// AvailabilityService decides whether a set of requested intervals is free
// for a service, reporting every conflicting interval when it is not.
type AvailabilityService interface {
	Check(ctx context.Context, serviceID string, slots []models.SlotInput) (*models.AvailabilityResult, error)
}

// DefaultAvailabilityService checks requested slots against the slots of
// confirmed+paid bookings and against admin blackout windows. Pending or
// unpaid bookings do not reserve anything: confirmation state is the gate.
type DefaultAvailabilityService struct {
	Bookings bookingRepo.BookingRepository
	Blocked  blockedRepo.BlockedRepository
}

// Check evaluates every requested slot. A store failure aborts the whole
// check; a partial verdict on partial data would be worse than no verdict.
func (s *DefaultAvailabilityService) Check(ctx context.Context, serviceID string, slots []models.SlotInput) (*models.AvailabilityResult, error) {
	if serviceID == "" {
		return nil, &models.ValidationError{Missing: []string{"serviceId"}}
	}
	if len(slots) == 0 {
		return nil, &models.ValidationError{Missing: []string{"slots"}}
	}

	type dayData struct {
		booked  []models.Slot
		blocked []models.BlockedSlot
	}
	days := make(map[string]*dayData)

	var conflicts []models.SlotConflict
	var accepted []models.SlotRange
	for _, input := range slots {
		rng, err := input.Range()
		if err != nil {
			return nil, &models.ValidationError{Message: err.Error()}
		}

		// The request must not conflict with itself either; two of its own
		// slots overlapping would land as overlapping stored intervals.
		for _, prev := range accepted {
			if prev.Date == rng.Date && Overlaps(rng.Start, rng.End, prev.Start, prev.End) {
				conflicts = append(conflicts, models.SlotConflict{
					Requested: input,
					Date:      rng.Date,
					Start:     models.FormatClock(prev.Start),
					End:       models.FormatClock(prev.End),
					Source:    models.ConflictSourceRequest,
				})
			}
		}
		accepted = append(accepted, rng)

		day, ok := days[rng.Date]
		if !ok {
			booked, err := s.Bookings.ConfirmedSlots(ctx, serviceID, rng.Date)
			if err != nil {
				return nil, &models.StoreError{Op: "fetch confirmed slots", Err: err}
			}
			blocked, err := s.Blocked.ListByDate(ctx, rng.Date)
			if err != nil {
				return nil, &models.StoreError{Op: "fetch blocked slots", Err: err}
			}
			day = &dayData{booked: booked, blocked: blocked}
			days[rng.Date] = day
		}

		for _, slot := range day.booked {
			if Overlaps(rng.Start, rng.End, slot.Start, slot.End) {
				conflicts = append(conflicts, models.SlotConflict{
					Requested: input,
					Date:      rng.Date,
					Start:     models.FormatClock(slot.Start),
					End:       models.FormatClock(slot.End),
					Source:    models.ConflictSourceBooking,
					SourceID:  slot.BookingID,
				})
			}
		}
		for _, block := range day.blocked {
			if !block.AppliesTo(serviceID) {
				continue
			}
			if Overlaps(rng.Start, rng.End, block.Start, block.End) {
				conflicts = append(conflicts, models.SlotConflict{
					Requested: input,
					Date:      rng.Date,
					Start:     models.FormatClock(block.Start),
					End:       models.FormatClock(block.End),
					Source:    models.ConflictSourceBlocked,
					SourceID:  block.BlockID,
					Reason:    block.Reason,
				})
			}
		}
	}

	return &models.AvailabilityResult{
		Free:      len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

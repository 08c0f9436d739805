package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/strumhouse/strumhouse-main-sub001/models"
)

// In-memory fakes for the repository interfaces, shared by the package's
// tests.

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	slots    []models.Slot

	failConfirmedSlots bool
	failInsertSlots    bool
	partialInsert      bool
	failDelete         bool
	deleted            []string
	slotCleanups       []string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByIdempotencyKey(_ context.Context, key string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.IdempotencyKey == key {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	if f.failDelete {
		return errors.New("delete refused")
	}
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBookingRepo) InsertSlots(_ context.Context, slots []models.Slot) error {
	if f.failInsertSlots {
		// An ordered insert can write some rows before erroring.
		if f.partialInsert && len(slots) > 0 {
			f.slots = append(f.slots, slots[0])
		}
		return errors.New("slot insert refused")
	}
	f.slots = append(f.slots, slots...)
	return nil
}

func (f *fakeBookingRepo) DeleteSlotsByBooking(_ context.Context, bookingID string) error {
	f.slotCleanups = append(f.slotCleanups, bookingID)
	kept := f.slots[:0]
	for _, s := range f.slots {
		if s.BookingID != bookingID {
			kept = append(kept, s)
		}
	}
	f.slots = kept
	return nil
}

func (f *fakeBookingRepo) ConfirmedSlots(_ context.Context, serviceID, date string) ([]models.Slot, error) {
	if f.failConfirmedSlots {
		return nil, errors.New("store unavailable")
	}
	var out []models.Slot
	for _, s := range f.slots {
		if s.ServiceID != serviceID || s.Date != date {
			continue
		}
		b, ok := f.bookings[s.BookingID]
		if !ok || b.Status != models.StatusConfirmed || b.PaymentStatus != models.PaymentPaid {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeBookingRepo) MarkConfirmedPaid(_ context.Context, id string) error {
	b, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	b.Status = models.StatusConfirmed
	b.PaymentStatus = models.PaymentPaid
	return nil
}

type fakeBlockedRepo struct {
	blocks   []models.BlockedSlot
	failList bool
}

func (f *fakeBlockedRepo) Create(_ context.Context, block *models.BlockedSlot) error {
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeBlockedRepo) ListByDate(_ context.Context, date string) ([]models.BlockedSlot, error) {
	if f.failList {
		return nil, errors.New("store unavailable")
	}
	var out []models.BlockedSlot
	for _, b := range f.blocks {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, blockID string) error {
	for i, b := range f.blocks {
		if b.BlockID == blockID {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			return nil
		}
	}
	return errors.New("blocked slot not found")
}

type fakeUserRepo struct {
	ids map[string]bool
}

func (f *fakeUserRepo) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

type fakeServiceRepo struct {
	ids map[string]bool
}

func (f *fakeServiceRepo) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

func (f *fakeServiceRepo) ListActive(_ context.Context) ([]models.Service, error) {
	var out []models.Service
	for id := range f.ids {
		out = append(out, models.Service{ID: id, Active: true})
	}
	return out, nil
}

type recordedEvent struct {
	collection, op, id string
}

type fakeEvents struct {
	published []recordedEvent
}

func (f *fakeEvents) Publish(_ context.Context, collection, op, id string) {
	f.published = append(f.published, recordedEvent{collection, op, id})
}

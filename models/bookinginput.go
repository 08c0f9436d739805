package models

// CreateBookingRequest is the typed body of POST /bookings. Either Slots or
// the top-level Date/Start/End shorthand must be supplied; the shorthand is
// treated as a single-slot request.
type CreateBookingRequest struct {
	UserID        string      `json:"userId"`
	ServiceID     string      `json:"serviceId"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone"`
	Date          string      `json:"date"`
	Start         string      `json:"start"`
	End           string      `json:"end"`
	Slots         []SlotInput `json:"slots"`
	TotalAmount   float64     `json:"totalAmount"`
	AdvanceAmount float64     `json:"advanceAmount"`
	Notes         string      `json:"notes"`
	AddOns        []string    `json:"addOns"`
	// Optional caller-supplied key; a retried request with the same key
	// returns the originally created booking instead of writing a duplicate.
	IdempotencyKey string `json:"idempotencyKey"`
}

// RequestedSlots returns the effective slot list, falling back to the
// single-slot shorthand when no explicit sequence is given.
func (r CreateBookingRequest) RequestedSlots() []SlotInput {
	if len(r.Slots) > 0 {
		return r.Slots
	}
	if r.Date == "" && r.Start == "" && r.End == "" {
		return nil
	}
	return []SlotInput{{Date: r.Date, Start: r.Start, End: r.End}}
}

// CreateBookingResult is the success payload of POST /bookings.
type CreateBookingResult struct {
	BookingID    string `json:"bookingId"`
	SlotsWritten int    `json:"slotsWritten"`
	// Duplicate is set when an idempotency key matched a previous request
	// and no new records were written.
	Duplicate bool `json:"duplicate,omitempty"`
}

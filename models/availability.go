package models

// Conflict sources reported by the availability check.
const (
	ConflictSourceBooking = "booking"
	ConflictSourceBlocked = "blocked"
	ConflictSourceRequest = "request"
)

// SlotConflict describes one requested interval clashing with one existing
// interval on the same date.
type SlotConflict struct {
	Requested SlotInput `json:"requested"`
	Date      string    `json:"date"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Source    string    `json:"source"`             // "booking", "blocked" or "request"
	SourceID  string    `json:"sourceId,omitempty"` // booking id or block id
	Reason    string    `json:"reason,omitempty"`   // block reason, when present
}

// AvailabilityResult is the outcome of checking a slot set. Free is true iff
// Conflicts is empty.
type AvailabilityResult struct {
	Free      bool           `json:"free"`
	Conflicts []SlotConflict `json:"conflicts,omitempty"`
}

// AvailabilityRequest is the body of POST /availability.
type AvailabilityRequest struct {
	ServiceID string      `json:"serviceId"`
	Slots     []SlotInput `json:"slots"`
}

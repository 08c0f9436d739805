package models

import (
	"fmt"
	"strings"
)

// Stable error kinds surfaced in JSON responses. Handlers map these to HTTP
// statuses; raw store errors never reach the caller.
const (
	KindValidation    = "validation_error"
	KindReference     = "invalid_reference"
	KindConflict      = "slot_conflict"
	KindSecurity      = "invalid_signature"
	KindNotFound      = "not_found"
	KindStore         = "store_error"
	KindInconsistency = "inconsistency_error"
)

// ValidationError reports missing or malformed input. Missing lists the
// exact absent field names when applicable.
type ValidationError struct {
	Missing []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Message
}

// ReferenceError reports an unknown foreign key in a request.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Entity, e.ID)
}

// ConflictError reports requested intervals clashing with existing bookings
// or blocks. Nothing has been written when it is returned.
type ConflictError struct {
	Conflicts []SlotConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d slot conflict(s)", len(e.Conflicts))
}

// SecurityError reports a failed signature check. The expected signature is
// never included.
type SecurityError struct {
	Message string
}

func (e *SecurityError) Error() string { return e.Message }

// NotFoundError reports a lookup miss for a caller-supplied key.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %q", e.Entity, e.Key)
}

// StoreError wraps a data-service failure. Retryable for pure reads, not
// for writes that were already attempted.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// InconsistencyError marks a partial multi-step write that left stale state
// behind. It carries the ids and the step reached so the record can be
// repaired; it must never be downgraded to a success.
type InconsistencyError struct {
	Step      string
	BookingID string
	PaymentID string
	OrderID   string
	Err       error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent state at %s (booking=%s payment=%s order=%s): %v",
		e.Step, e.BookingID, e.PaymentID, e.OrderID, e.Err)
}

func (e *InconsistencyError) Unwrap() error { return e.Err }

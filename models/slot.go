package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot is a single reserved interval belonging to one booking. Start and End
// are minutes from midnight on Date; the interval is half-open (Start < End).
// ServiceID is denormalized from the booking so availability queries do not
// need a join.
type Slot struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"booking_id" json:"bookingId"`
	ServiceID string `bson:"service_id" json:"serviceId"`
	Date      string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start     int    `bson:"start" json:"start"`
	End       int    `bson:"end" json:"end"`
}

// SlotInput is the wire form of a requested interval: date as "YYYY-MM-DD",
// times as "HH:MM" wall-clock strings.
type SlotInput struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotRange is a parsed SlotInput with times in minutes from midnight.
type SlotRange struct {
	Date  string
	Start int
	End   int
}

// Range parses and validates the input. The interval must be well formed and
// non-empty; back-to-back intervals sharing a boundary are allowed.
func (si SlotInput) Range() (SlotRange, error) {
	if _, err := time.Parse("2006-01-02", si.Date); err != nil {
		return SlotRange{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", si.Date)
	}
	start, err := ParseClock(si.Start)
	if err != nil {
		return SlotRange{}, err
	}
	end, err := ParseClock(si.End)
	if err != nil {
		return SlotRange{}, err
	}
	if start >= end {
		return SlotRange{}, fmt.Errorf("invalid interval %s-%s: start must be before end", si.Start, si.End)
	}
	return SlotRange{Date: si.Date, Start: start, End: end}, nil
}

// ParseClock converts an "HH:MM" wall-clock string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

package booking

// Overlaps reports whether two half-open same-day intervals intersect.
// Times are minutes from midnight. The test is strict: intervals that only
// share a boundary point (endA == startB) do not overlap, so back-to-back
// bookings are fine.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

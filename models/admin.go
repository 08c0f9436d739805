package models

import "time"

// AdminSummary is the read-only rollup served by GET /admin/summary.
type AdminSummary struct {
	TotalUsers        int64     `json:"totalUsers"`
	TotalServices     int64     `json:"totalServices"`
	TotalBookings     int64     `json:"totalBookings"`
	ConfirmedBookings int64     `json:"confirmedBookings"`
	Revenue           float64   `json:"revenue"` // sum of total_amount over paid bookings
	GeneratedAt       time.Time `json:"generatedAt"`
}

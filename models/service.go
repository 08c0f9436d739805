package models

// Service is a bookable studio offering. Referenced by id from bookings;
// immutable as far as the booking engine is concerned.
type Service struct {
	ID           string  `bson:"id" json:"id"`
	Name         string  `bson:"name" json:"name"`
	Description  string  `bson:"description,omitempty" json:"description,omitempty"`
	PricePerHour float64 `bson:"price_per_hour" json:"pricePerHour"`
	AdvanceRate  float64 `bson:"advance_rate" json:"advanceRate"` // fraction of total due up front
	Active       bool    `bson:"active" json:"active"`
}

package models

import "time"

// BlockedSlot is an administrator-imposed unavailable interval, independent
// of any booking. An empty ServiceID blocks every service for the interval.
type BlockedSlot struct {
	BlockID   string    `bson:"block_id" json:"blockId"`
	ServiceID string    `bson:"service_id,omitempty" json:"serviceId,omitempty"`
	Date      string    `bson:"date" json:"date"`
	Start     int       `bson:"start" json:"start"`
	End       int       `bson:"end" json:"end"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// AppliesTo reports whether the block constrains the given service.
func (b BlockedSlot) AppliesTo(serviceID string) bool {
	return b.ServiceID == "" || b.ServiceID == serviceID
}

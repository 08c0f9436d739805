package models

import "time"

// ChangeEvent is published after a successful write so subscribed clients
// can refresh. Delivery is at-most-once; the engine never retries it.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"` // "insert" or "update"
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

package models

import "time"

// BlockedDate marks one night of unavailability for a room that is not
// tied to any reservation (maintenance, private use).
type BlockedDate struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

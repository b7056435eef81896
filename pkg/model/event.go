package model

import "time"

const (
	EventRoomsChanged     = "rooms.changed"
	EventBookingsChanged  = "bookings.changed"
	EventSnapshotReplaced = "snapshot.replaced"
)

// ChangeEvent is the payload carried by change notifications on kafka, redis
// and the websocket stream.
type ChangeEvent struct {
	Type     string    `json:"type"`
	Source   string    `json:"source,omitempty"`
	Rooms    int       `json:"rooms,omitempty"`
	Bookings int       `json:"bookings,omitempty"`
	At       time.Time `json:"at"`
}

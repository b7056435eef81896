package model

import "strings"

type BookingStatus string

const (
	StatusCreated   BookingStatus = "created"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// legacyStatuses maps the vocabulary still written by the hosted backend.
var legacyStatuses = map[string]BookingStatus{
	"criado":    StatusCreated,
	"concluido": StatusCompleted,
	"concluído": StatusCompleted,
	"cancelado": StatusCancelled,
}

// ParseBookingStatus normalizes both the English and the legacy Portuguese
// status names.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch BookingStatus(s) {
	case StatusCreated, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	}
	status, ok := legacyStatuses[s]
	return status, ok
}

// Booking is a reservation as read from the hosted backend. Timestamps are kept
// in their raw wire form; the calendar parses them and tolerates bad values.
type Booking struct {
	ID        string        `json:"id" bson:"_id" validate:"required"`
	RoomID    string        `json:"room_id" bson:"room_id" validate:"required"`
	StartTime string        `json:"start_time" bson:"start_time" validate:"required,timestamp"`
	EndTime   string        `json:"end_time" bson:"end_time" validate:"required,timestamp"`
	Status    BookingStatus `json:"status" bson:"status" validate:"required,oneof=created completed cancelled"`
	CreatedAt string        `json:"created_at" bson:"created_at"`
	UserEmail string        `json:"user_email" bson:"user_email" validate:"omitempty,email"`
	UserPhone string        `json:"user_phone,omitempty" bson:"user_phone,omitempty" validate:"omitempty,e164"`
}

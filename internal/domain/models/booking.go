package models

import (
	"strings"
	"time"

	"hotelapi/internal/domain"
)

// BookingStatus is the single-letter lifecycle marker stored on a booking.
type BookingStatus string

const (
	StatusCheckedIn BookingStatus = "C"
	StatusExecuted  BookingStatus = "E"
	StatusFree      BookingStatus = "F"
	StatusScheduled BookingStatus = "S"
)

var statusLabels = map[BookingStatus]string{
	StatusCheckedIn: "CHECKED-IN",
	StatusExecuted:  "EXECUTED",
	StatusFree:      "FREE",
	StatusScheduled: "SCHEDULED",
}

// legal status transitions; absence means the move is rejected.
// create -> Scheduled is implicit (a new booking starts there).
var statusTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusScheduled: {StatusCheckedIn: true, StatusFree: true},
	StatusCheckedIn: {StatusFree: true},
}

// ParseBookingStatus uppercases raw and reports whether it names a known status.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := statusLabels[s]
	return s, ok
}

// ResolveStatus applies the status-retention rule: a blank input keeps the
// current status untouched, anything else is normalized to uppercase.
func ResolveStatus(current BookingStatus, raw string) BookingStatus {
	if strings.TrimSpace(raw) == "" {
		return current
	}
	return BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
}

// CanTransition reports whether the move from s to target is legal.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	return statusTransitions[s][target]
}

// Label returns the long-form name used on vouchers and logs.
func (s BookingStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Booking references its room and guest by id; the orchestrator resolves
// them explicitly, the model never carries live entity graphs.
type Booking struct {
	ID        domain.ID     `json:"id"`
	RoomID    domain.ID     `json:"room_id"`
	UserID    domain.ID     `json:"user_id"`
	CheckIn   time.Time     `json:"check_in"`
	CheckOut  *time.Time    `json:"check_out,omitempty"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

package models

import (
	"time"

	"hotelapi/internal/domain"
)

const (
	RoomNumberMin = 1
	RoomNumberMax = 1000
)

// Room is a bookable unit. Number is unique across the hotel.
type Room struct {
	ID        domain.ID `json:"id"`
	Number    int       `json:"number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

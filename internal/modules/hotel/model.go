// README: Hotel search results, booking aggregate, and booking status flow.
package hotel

import (
	"errors"
	"time"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrInvalidState     = errors.New("invalid booking state")
	ErrConflict         = errors.New("confirmation number already exists")
)

type Hotel struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PlaceID          string   `json:"place_id"`
	Location         *LatLng  `json:"location,omitempty"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ConfirmationNumber string     `json:"confirmation_number"`
	HotelName          string     `json:"hotel_name"`
	Location           string     `json:"location"`
	CheckInDate        string     `json:"check_in_date"`
	CheckOutDate       string     `json:"check_out_date"`
	NumGuests          int        `json:"num_guests"`
	RoomType           string     `json:"room_type"`
	Status             Status     `json:"status"`
	TotalPrice         float64    `json:"total_price"`
	Currency           string     `json:"currency"`
	BookedAt           time.Time  `json:"booked_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

// AllowedTransitions represents the booking state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusConfirmed: {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// README: Flight offers, search queries, and flight booking records.
package flight

import (
	"errors"
	"time"
)

var (
	ErrBookingNotFound = errors.New("flight booking not found")
	ErrConflict        = errors.New("confirmation number already exists")
	ErrUnknownAirport  = errors.New("unknown airport or city")
	ErrProvider        = errors.New("flight provider error")
)

type Flight struct {
	ID            string  `json:"id"`
	Airline       string  `json:"airline"`
	AirlineCode   string  `json:"airline_code"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Duration      string  `json:"duration"`
	Stops         int     `json:"stops"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	TravelClass   string  `json:"travel_class"`
	Source        string  `json:"source"`
}

// Query is a normalised flight search request.
type Query struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	MaxPrice      float64
	Currency      string
	TravelClass   string
	NonStop       bool
	Adults        int
	Max           int
}

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

type Booking struct {
	ConfirmationNumber string    `json:"confirmation_number"`
	Airline            string    `json:"airline"`
	FlightNumber       string    `json:"flight_number"`
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	DepartureDate      string    `json:"departure_date"`
	DepartureTime      string    `json:"departure_time"`
	ArrivalTime        string    `json:"arrival_time"`
	Price              float64   `json:"price"`
	CurrencyCode       string    `json:"currency_code"`
	TravelClass        string    `json:"travel_class"`
	NumPassengers      int       `json:"num_passengers"`
	PassengerName      string    `json:"passenger_name"`
	TripType           TripType  `json:"trip_type"`
	ReturnDate         string    `json:"return_date,omitempty"`
	ReturnFlightNumber string    `json:"return_flight_number,omitempty"`
	Status             string    `json:"status"`
	BookedAt           time.Time `json:"booked_at"`
}

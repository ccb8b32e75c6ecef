// README: Flight booking adapter (mock reservation with an in-memory registry).
package flight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wayfarer/internal/logger"
	"wayfarer/internal/modules/tool"
	"wayfarer/internal/types"
)

const (
	ConfirmationPrefix = "FLT"
	maxIDAttempts      = 10
)

var BookingSpec = tool.Spec{
	Name: "flight_booking",
	Fields: []tool.Field{
		{Name: "airline", Label: "airline name", Required: true},
		{Name: "flight_number", Label: "flight number", Required: true},
		{Name: "origin", Label: "origin", Required: true},
		{Name: "destination", Label: "destination", Required: true},
		{Name: "departure_date", Label: "departure date", Required: true},
		{Name: "departure_time", Label: "departure time", Required: true},
		{Name: "arrival_time", Label: "arrival time", Required: true},
		{Name: "price", Label: "price", Required: true},
		{Name: "currency_code", Label: "currency", Default: "USD"},
		{Name: "travel_class", Label: "travel class", Default: "ECONOMY"},
		{Name: "num_passengers", Label: "number of passengers", Default: 1},
		{Name: "passenger_name", Label: "passenger name", Default: "Traveler"},
		{Name: "return_date", Label: "return date"},
		{Name: "return_flight_number", Label: "return flight number"},
	},
	MissingFormat: "I need the following information to complete your flight booking: %s. Could you provide that?",
}

type BookingResult struct {
	tool.Result
	Booking *Booking `json:"booking,omitempty"`
}

type BookingService struct {
	store *Store
	newID func() string
	now   func() time.Time
}

func NewBookingService(store *Store) *BookingService {
	return &BookingService{
		store: store,
		newID: func() string { return types.NewConfirmationID(ConfirmationPrefix) },
		now:   time.Now,
	}
}

func (s *BookingService) Execute(ctx context.Context, in map[string]any) BookingResult {
	vals, missing := BookingSpec.Resolve(in)
	if len(missing) > 0 {
		return BookingResult{Result: tool.Fail(BookingSpec.MissingMessage(missing))}
	}

	passengers := vals.Int("num_passengers")
	if passengers < 1 {
		passengers = 1
	}

	b := Booking{
		Airline:       vals.String("airline"),
		FlightNumber:  strings.ToUpper(vals.String("flight_number")),
		Origin:        vals.String("origin"),
		Destination:   vals.String("destination"),
		DepartureDate: vals.String("departure_date"),
		DepartureTime: vals.String("departure_time"),
		ArrivalTime:   vals.String("arrival_time"),
		Price:         vals.Float("price"),
		CurrencyCode:  strings.ToUpper(vals.String("currency_code")),
		TravelClass:   strings.ToUpper(vals.String("travel_class")),
		NumPassengers: passengers,
		PassengerName: vals.String("passenger_name"),
		TripType:      TripOneWay,
		Status:        "confirmed",
		BookedAt:      s.now(),
	}
	if vals.Present("return_date") {
		b.TripType = TripRoundTrip
		b.ReturnDate = vals.String("return_date")
		b.ReturnFlightNumber = strings.ToUpper(vals.String("return_flight_number"))
	}

	if err := s.insert(ctx, &b); err != nil {
		logger.Logger.WithError(err).Error("flight booking insert failed")
		return BookingResult{Result: tool.Fail("There was an error booking your flight. Please try again.")}
	}

	logger.Logger.WithFields(logrus.Fields{
		"tool":                BookingSpec.Name,
		"confirmation_number": b.ConfirmationNumber,
		"flight_number":       b.FlightNumber,
		"trip_type":           b.TripType,
	}).Info("flight booking created")

	return BookingResult{Result: tool.OK("Flight booking confirmed successfully!"), Booking: &b}
}

func (s *BookingService) insert(ctx context.Context, b *Booking) error {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		b.ConfirmationNumber = s.newID()
		err := s.store.Insert(ctx, *b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("allocate confirmation number: %w", ErrConflict)
}

func (s *BookingService) Get(ctx context.Context, id string) (Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *BookingService) List(ctx context.Context) []Booking {
	return s.store.List(ctx)
}

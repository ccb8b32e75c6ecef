// README: Hotel booking adapter; validates input, prices the stay, and manages the registry.
package hotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"wayfarer/internal/logger"
	"wayfarer/internal/modules/pricing"
	"wayfarer/internal/modules/tool"
	"wayfarer/internal/types"
)

const (
	ConfirmationPrefix = "HTL"
	maxIDAttempts      = 10
)

var BookingSpec = tool.Spec{
	Name: "hotel_booking",
	Fields: []tool.Field{
		{Name: "hotel_name", Label: "hotel name", Required: true},
		{Name: "location", Label: "location", Required: true},
		{Name: "check_in_date", Label: "check-in date", Required: true},
		{Name: "check_out_date", Label: "check-out date", Required: true},
		{Name: "num_guests", Label: "number of guests", Default: 1},
		{Name: "room_type", Label: "room type", Default: "Standard"},
	},
	MissingFormat: "I need the following information to complete your booking: %s. Could you provide that?",
}

type BookingResult struct {
	tool.Result
	Booking *Booking `json:"booking,omitempty"`
}

type BookingService struct {
	store   *Store
	pricing *pricing.Service
	newID   func() string
	now     func() time.Time
}

func NewBookingService(store *Store, pricingSvc *pricing.Service) *BookingService {
	if pricingSvc == nil {
		pricingSvc = pricing.NewService(nil)
	}
	return &BookingService{
		store:   store,
		pricing: pricingSvc,
		newID:   func() string { return types.NewConfirmationID(ConfirmationPrefix) },
		now:     time.Now,
	}
}

func (s *BookingService) Execute(ctx context.Context, in map[string]any) BookingResult {
	vals, missing := BookingSpec.Resolve(in)
	if len(missing) > 0 {
		return BookingResult{Result: tool.Fail(BookingSpec.MissingMessage(missing))}
	}

	guests := vals.Int("num_guests")
	if guests < 1 {
		guests = 1
	}
	roomType := vals.String("room_type")

	quote, err := s.pricing.Estimate(ctx, pricing.PricingRequest{RoomType: roomType, Guests: guests})
	if err != nil {
		logger.Logger.WithError(err).Error("hotel pricing failed")
		return BookingResult{Result: tool.Fail("There was an error booking your hotel. Please try again.")}
	}

	b := Booking{
		HotelName:    vals.String("hotel_name"),
		Location:     vals.String("location"),
		CheckInDate:  vals.String("check_in_date"),
		CheckOutDate: vals.String("check_out_date"),
		NumGuests:    guests,
		RoomType:     roomType,
		Status:       StatusConfirmed,
		TotalPrice:   quote.Total.Float(),
		Currency:     quote.Total.Currency,
		BookedAt:     s.now(),
	}

	if err := s.insert(ctx, &b); err != nil {
		logger.Logger.WithError(err).Error("hotel booking insert failed")
		return BookingResult{Result: tool.Fail("There was an error booking your hotel. Please try again.")}
	}

	logger.Logger.WithFields(logrus.Fields{
		"tool":                BookingSpec.Name,
		"confirmation_number": b.ConfirmationNumber,
		"hotel":               b.HotelName,
	}).Info("hotel booking created")

	return BookingResult{Result: tool.OK("Booking confirmed successfully!"), Booking: &b}
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

// Cancel moves a confirmed booking to cancelled. The result is always populated with a
// user-facing message; err carries the sentinel for callers that map it to a status code.
// Cancelling twice reports ErrAlreadyCancelled and leaves the original cancellation time.
func (s *BookingService) Cancel(ctx context.Context, id string) (BookingResult, error) {
	b, err := s.store.UpdateStatus(ctx, id, StatusCancelled, s.now())
	switch {
	case errors.Is(err, ErrBookingNotFound):
		return BookingResult{Result: tool.Fail(fmt.Sprintf(
			"I couldn't find a booking with confirmation number %s. Please check the number and try again.", id))}, err
	case errors.Is(err, ErrInvalidState) && b.Status == StatusCancelled:
		return BookingResult{
			Result:  tool.Fail(fmt.Sprintf("Your booking (confirmation number: %s) has already been cancelled.", id)),
			Booking: &b,
		}, ErrAlreadyCancelled
	case err != nil:
		return BookingResult{Result: tool.Fail(fmt.Sprintf("Booking %s cannot be cancelled.", id))}, err
	}

	logger.Logger.WithField("confirmation_number", id).Info("hotel booking cancelled")
	return BookingResult{
		Result:  tool.OK(fmt.Sprintf("Your booking (confirmation number: %s) has been successfully cancelled.", id)),
		Booking: &b,
	}, nil
}

// README: Slot merge and intent dispatch between extraction and the search/booking adapters.
package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"wayfarer/internal/logger"
	"wayfarer/internal/modules/flight"
	"wayfarer/internal/modules/hotel"
	"wayfarer/internal/modules/session"
	"wayfarer/internal/modules/tool"
)

const (
	msgRouterError  = "I encountered an error processing your request. Could you please try again?"
	msgCancelPrompt = "To cancel a booking, please provide your confirmation number."
	msgModifyPrompt = "To modify a booking, please provide your confirmation number and what you'd like to change."
	msgGeneral      = "I'm here to help you search for flights and hotels, and make bookings. What would you like to do today?"
	msgGreeting     = "Hello! Welcome to your travel assistant. I can help you search for flights and hotels, or make reservations. What are you looking for today?"
	msgFarewell     = "You're welcome! Thank you for using our travel service. Have a wonderful day and safe travels!"
	msgUnknown      = "I'm not sure I understand. Would you like to search for flights, search for hotels, or make a booking?"

	flightBookingMissing = "I need the following information to book the flight: %s. Which flight would you like to book?"
	hotelBookingMissing  = "I need the following: %s"
	msgCancelConfirm     = "I found your booking %s. To cancel it, please reply with the confirmation number %s."
)

type FlightSearcher interface {
	Execute(ctx context.Context, in map[string]any) flight.SearchResult
}

type FlightBooker interface {
	Execute(ctx context.Context, in map[string]any) flight.BookingResult
	Get(ctx context.Context, id string) (flight.Booking, error)
}

type HotelSearcher interface {
	Execute(ctx context.Context, in map[string]any) hotel.SearchResult
}

type HotelBooker interface {
	Execute(ctx context.Context, in map[string]any) hotel.BookingResult
	Get(ctx context.Context, id string) (hotel.Booking, error)
	Cancel(ctx context.Context, id string) (hotel.BookingResult, error)
}

type Deps struct {
	FlightSearch  FlightSearcher
	FlightBooking FlightBooker
	HotelSearch   HotelSearcher
	HotelBooking  HotelBooker
}

// Result is the router's uniform envelope. Domain data is attached only when non-empty.
type Result struct {
	Intent  Intent          `json:"intent"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Flights []flight.Flight `json:"flights,omitempty"`
	Hotels  []hotel.Hotel   `json:"hotels,omitempty"`
	Booking any             `json:"booking,omitempty"`
}

// Router is stateless; all conversational state lives in the session.
type Router struct {
	flightSearch  FlightSearcher
	flightBooking FlightBooker
	hotelSearch   HotelSearcher
	hotelBooking  HotelBooker
}

func NewRouter(deps Deps) *Router {
	return &Router{
		flightSearch:  deps.FlightSearch,
		flightBooking: deps.FlightBooking,
		hotelSearch:   deps.HotelSearch,
		hotelBooking:  deps.HotelBooking,
	}
}

// Route merges extracted slots into the session, then dispatches on the intent label.
// Any label outside the closed intent set is handled as Unknown. Panics inside a handler
// are converted into a failure result.
func (r *Router) Route(ctx context.Context, label string, extracted map[string]any, sess *session.Session) (res Result) {
	intent := ParseIntent(label)
	log := logger.Logger.WithFields(logrus.Fields{"session_id": sess.ID(), "intent": intent})

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("intent handler failed")
			res = Result{Intent: intent, Success: false, Message: msgRouterError}
		}
	}()

	sess.MergeSlots(extracted)
	slots := map[string]any(sess.Slots())

	switch intent {
	case FlightSearch:
		res = r.flightSearchHandler(ctx, slots, sess)
	case FlightBooking:
		res = r.flightBookingHandler(ctx, slots, sess)
	case HotelSearch:
		res = r.hotelSearchHandler(ctx, slots, sess)
	case HotelBooking:
		res = r.hotelBookingHandler(ctx, slots, sess)
	case CancelBooking:
		res = r.cancelHandler(ctx, extracted, slots)
	case ModifyBooking:
		res = r.modifyHandler(ctx, slots)
	case GeneralQuery:
		res = Result{Success: true, Message: msgGeneral}
	case Greeting:
		res = Result{Success: true, Message: msgGreeting}
	case Farewell:
		res = Result{Success: true, Message: msgFarewell}
	default:
		res = Result{Success: false, Message: msgUnknown}
	}
	res.Intent = intent

	log.WithField("success", res.Success).Info("intent routed")
	return res
}

func (r *Router) flightSearchHandler(ctx context.Context, slots map[string]any, sess *session.Session) Result {
	if missing := flight.SearchSpec.Missing(slots); len(missing) > 0 {
		return fail(flight.SearchSpec.MissingMessage(missing))
	}
	out := r.flightSearch.Execute(ctx, slots)
	res := fromEnvelope(out.Result)
	if out.Success && len(out.Flights) > 0 {
		res.Flights = out.Flights
		sess.MergeSlots(map[string]any{session.SlotFlightsFound: true})
	}
	return res
}

func (r *Router) flightBookingHandler(ctx context.Context, slots map[string]any, sess *session.Session) Result {
	if missing := flight.BookingSpec.Missing(slots); len(missing) > 0 {
		return fail(fmt.Sprintf(flightBookingMissing, tool.JoinLabels(missing)))
	}
	out := r.flightBooking.Execute(ctx, slots)
	res := fromEnvelope(out.Result)
	if out.Success && out.Booking != nil {
		res.Booking = out.Booking
		sess.MergeSlots(map[string]any{session.SlotConfirmationNumber: out.Booking.ConfirmationNumber})
	}
	return res
}

func (r *Router) hotelSearchHandler(ctx context.Context, slots map[string]any, sess *session.Session) Result {
	if missing := hotel.SearchSpec.Missing(slots); len(missing) > 0 {
		return fail(hotel.SearchSpec.MissingMessage(missing))
	}
	out := r.hotelSearch.Execute(ctx, slots)
	res := fromEnvelope(out.Result)
	if out.Success && len(out.Hotels) > 0 {
		res.Hotels = out.Hotels
		sess.MergeSlots(map[string]any{session.SlotHotelsFound: true})
	}
	return res
}

func (r *Router) hotelBookingHandler(ctx context.Context, slots map[string]any, sess *session.Session) Result {
	if missing := hotel.BookingSpec.Missing(slots); len(missing) > 0 {
		return fail(fmt.Sprintf(hotelBookingMissing, tool.JoinLabels(missing)))
	}
	out := r.hotelBooking.Execute(ctx, slots)
	res := fromEnvelope(out.Result)
	if out.Success && out.Booking != nil {
		res.Booking = out.Booking
		sess.MergeSlots(map[string]any{session.SlotConfirmationNumber: out.Booking.ConfirmationNumber})
	}
	return res
}

// cancelHandler only cancels a booking named in the current turn. A confirmation number
// remembered from an earlier turn is echoed back and must be repeated to take effect.
func (r *Router) cancelHandler(ctx context.Context, extracted, slots map[string]any) Result {
	id := confirmationNumber(extracted)
	if id == "" {
		return r.confirmCancel(ctx, confirmationNumber(slots))
	}
	switch {
	case strings.HasPrefix(id, hotel.ConfirmationPrefix+"-"):
		out, _ := r.hotelBooking.Cancel(ctx, id)
		res := fromEnvelope(out.Result)
		if out.Booking != nil {
			res.Booking = out.Booking
		}
		return res
	case strings.HasPrefix(id, flight.ConfirmationPrefix+"-"):
		b, err := r.flightBooking.Get(ctx, id)
		if errors.Is(err, flight.ErrBookingNotFound) {
			return fail(notFoundMessage(id))
		}
		if err != nil {
			return fail(msgRouterError)
		}
		res := fail(fmt.Sprintf("Flight booking %s can't be cancelled here. Please contact %s to cancel it.", id, b.Airline))
		res.Booking = &b
		return res
	}
	return fail(notFoundMessage(id))
}

func (r *Router) confirmCancel(ctx context.Context, remembered string) Result {
	if remembered == "" {
		return fail(msgCancelPrompt)
	}
	booking := r.lookup(ctx, remembered)
	if booking == nil {
		return fail(msgCancelPrompt)
	}
	res := fail(fmt.Sprintf(msgCancelConfirm, remembered, remembered))
	res.Booking = booking
	return res
}

func (r *Router) lookup(ctx context.Context, id string) any {
	switch {
	case strings.HasPrefix(id, hotel.ConfirmationPrefix+"-"):
		if b, err := r.hotelBooking.Get(ctx, id); err == nil {
			return &b
		}
	case strings.HasPrefix(id, flight.ConfirmationPrefix+"-"):
		if b, err := r.flightBooking.Get(ctx, id); err == nil {
			return &b
		}
	}
	return nil
}

func (r *Router) modifyHandler(ctx context.Context, slots map[string]any) Result {
	id := confirmationNumber(slots)
	if id == "" {
		return fail(msgModifyPrompt)
	}

	booking := r.lookup(ctx, id)
	if booking == nil {
		return fail(notFoundMessage(id))
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("I found your booking %s. What would you like to change?", id),
		Booking: booking,
	}
}

func confirmationNumber(slots map[string]any) string {
	v, _ := slots[session.SlotConfirmationNumber].(string)
	return strings.ToUpper(strings.TrimSpace(v))
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("I couldn't find a booking with confirmation number %s. Please check the number and try again.", id)
}

func fromEnvelope(r tool.Result) Result {
	return Result{Success: r.Success, Message: r.Message}
}

func fail(msg string) Result {
	return Result{Success: false, Message: msg}
}

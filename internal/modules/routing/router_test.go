package routing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/logger"
	"wayfarer/internal/modules/flight"
	"wayfarer/internal/modules/hotel"
	"wayfarer/internal/modules/session"
)

func init() {
	logger.Silence()
}

type stubProvider struct{ flights []flight.Flight }

func (p stubProvider) Search(_ context.Context, _ flight.Query) ([]flight.Flight, error) {
	return p.flights, nil
}

type panickingSearcher struct{}

func (panickingSearcher) Execute(context.Context, map[string]any) hotel.SearchResult {
	panic("boom")
}

func newTestRouter() *Router {
	provider := stubProvider{flights: []flight.Flight{
		{Airline: "American Airlines", FlightNumber: "AA100", Origin: "NYC", Destination: "LAX", Price: 349.99},
	}}
	return NewRouter(Deps{
		FlightSearch:  flight.NewSearchService(provider, nil, 5),
		FlightBooking: flight.NewBookingService(flight.NewStore()),
		HotelSearch:   hotel.NewSearchService(nil, nil, hotel.SearchConfig{}),
		HotelBooking:  hotel.NewBookingService(hotel.NewStore(), nil),
	})
}

func newSession(id string) *session.Session {
	return session.NewStore().GetOrCreate(id)
}

func TestParseIntent(t *testing.T) {
	tests := map[string]Intent{
		"FlightSearch":    FlightSearch,
		"flight_search":   FlightSearch,
		" hotel booking ": HotelBooking,
		"CANCELBOOKING":   CancelBooking,
		"":                Unknown,
		"book me a yacht": Unknown,
		"Unknown":         Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseIntent(in), "ParseIntent(%q)", in)
	}
}

func TestRoute_TotalDispatch(t *testing.T) {
	r := newTestRouter()
	labels := []string{"", "garbage", "{\"intent\":null}", "DROP TABLE sessions"}
	for _, in := range AllIntents {
		labels = append(labels, string(in))
	}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			res := r.Route(context.Background(), label, nil, newSession("total"))
			assert.NotEmpty(t, res.Message)
			assert.Contains(t, AllIntents, res.Intent)
		})
	}
}

func TestRoute_UnknownLabelsUseUnknownHandler(t *testing.T) {
	res := newTestRouter().Route(context.Background(), "SpaceTravel", nil, newSession("u"))
	assert.Equal(t, Unknown, res.Intent)
	assert.False(t, res.Success)
	assert.Equal(t, msgUnknown, res.Message)
}

func TestRoute_FlightSearchRequiresOrigin(t *testing.T) {
	sess := newSession("f1")
	res := newTestRouter().Route(context.Background(), "FlightSearch",
		map[string]any{"destination": "LAX", "departure_date": "2025-06-01"}, sess)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "origin")
	assert.Empty(t, res.Flights)
	assert.Nil(t, sess.Slots()[session.SlotFlightsFound])
}

func TestRoute_FlightSearchSucceeds(t *testing.T) {
	sess := newSession("f2")
	res := newTestRouter().Route(context.Background(), "FlightSearch",
		map[string]any{"origin": "NYC", "destination": "LAX", "departure_date": "2025-06-01"}, sess)
	require.True(t, res.Success)
	require.NotEmpty(t, res.Flights)
	assert.Equal(t, "I found 1 flights from NYC to LAX.", res.Message)
	assert.Equal(t, true, sess.Slots()[session.SlotFlightsFound])
}

func TestRoute_SlotsAccumulateAcrossTurns(t *testing.T) {
	r := newTestRouter()
	sess := newSession("f3")

	first := r.Route(context.Background(), "FlightSearch", map[string]any{"origin": "NYC"}, sess)
	assert.False(t, first.Success)
	assert.Equal(t, "I need the following information: destination city, departure date", first.Message)

	second := r.Route(context.Background(), "FlightSearch",
		map[string]any{"origin": nil, "destination": "LAX", "departure_date": "2025-06-01"}, sess)
	assert.True(t, second.Success)
	assert.Equal(t, "NYC", sess.Slots()[session.SlotOrigin])
}

func TestRoute_InterleavedIntentsShareSlots(t *testing.T) {
	r := newTestRouter()
	sess := newSession("mix")

	hotels := r.Route(context.Background(), "HotelSearch", map[string]any{"location": "Chicago"}, sess)
	require.True(t, hotels.Success)
	assert.Len(t, hotels.Hotels, 2)
	assert.Equal(t, true, sess.Slots()[session.SlotHotelsFound])

	flights := r.Route(context.Background(), "FlightSearch",
		map[string]any{"origin": "NYC", "destination": "Chicago", "departure_date": "2025-06-01"}, sess)
	assert.True(t, flights.Success)
	assert.Equal(t, "Chicago", sess.Slots()[session.SlotLocation])
}

func TestRoute_HotelBookingMissingFields(t *testing.T) {
	res := newTestRouter().Route(context.Background(), "HotelBooking",
		map[string]any{"hotel_name": "Courtyard Chicago"}, newSession("hb"))
	assert.False(t, res.Success)
	assert.Equal(t, "I need the following: location, check-in date, check-out date", res.Message)
	assert.Nil(t, res.Booking)
}

func TestRoute_FlightBookingMissingFields(t *testing.T) {
	res := newTestRouter().Route(context.Background(), "FlightBooking",
		map[string]any{"airline": "Delta", "flight_number": "DL5"}, newSession("fb"))
	assert.False(t, res.Success)
	assert.Equal(t,
		"I need the following information to book the flight: origin, destination, departure date, departure time, arrival time, price. Which flight would you like to book?",
		res.Message)
}

func TestRoute_HotelBookAndCancel(t *testing.T) {
	r := newTestRouter()
	sess := newSession("hc")

	booked := r.Route(context.Background(), "HotelBooking", map[string]any{
		"hotel_name": "Courtyard Chicago", "location": "Chicago",
		"check_in_date": "2025-06-01", "check_out_date": "2025-06-04",
	}, sess)
	require.True(t, booked.Success)
	b, ok := booked.Booking.(*hotel.Booking)
	require.True(t, ok)
	assert.Equal(t, b.ConfirmationNumber, sess.Slots()[session.SlotConfirmationNumber])

	byID := map[string]any{"confirmation_number": strings.ToLower(b.ConfirmationNumber)}
	first := r.Route(context.Background(), "CancelBooking", byID, sess)
	assert.True(t, first.Success)
	assert.Contains(t, first.Message, "successfully cancelled")

	second := r.Route(context.Background(), "CancelBooking", byID, sess)
	assert.False(t, second.Success)
	assert.Contains(t, second.Message, "already been cancelled")

	unknown := r.Route(context.Background(), "CancelBooking",
		map[string]any{"confirmation_number": "htl-zzzzzz"}, newSession("other"))
	assert.False(t, unknown.Success)
	assert.Contains(t, unknown.Message, "HTL-ZZZZZZ")
}

func TestRoute_CancelNeedsConfirmationNumberInTurn(t *testing.T) {
	r := newTestRouter()
	sess := newSession("hc2")
	booked := r.Route(context.Background(), "HotelBooking", map[string]any{
		"hotel_name": "Courtyard Chicago", "location": "Chicago",
		"check_in_date": "2025-06-01", "check_out_date": "2025-06-04",
	}, sess)
	require.True(t, booked.Success)
	b := booked.Booking.(*hotel.Booking)

	res := r.Route(context.Background(), "CancelBooking", nil, sess)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, b.ConfirmationNumber)
	assert.NotContains(t, res.Message, "cancelled")
	echoed, ok := res.Booking.(*hotel.Booking)
	require.True(t, ok)
	assert.Equal(t, hotel.StatusConfirmed, echoed.Status)

	res = r.Route(context.Background(), "CancelBooking", map[string]any{"location": "Chicago"}, sess)
	assert.False(t, res.Success)
	assert.Equal(t, hotel.StatusConfirmed, res.Booking.(*hotel.Booking).Status)
}

func TestRoute_CancelWithoutConfirmation(t *testing.T) {
	res := newTestRouter().Route(context.Background(), "CancelBooking", nil, newSession("c"))
	assert.False(t, res.Success)
	assert.Equal(t, msgCancelPrompt, res.Message)
}

func TestRoute_FlightBookingThenCancelIsRefused(t *testing.T) {
	r := newTestRouter()
	sess := newSession("fc")
	booked := r.Route(context.Background(), "FlightBooking", map[string]any{
		"airline": "American Airlines", "flight_number": "AA100", "origin": "NYC", "destination": "LAX",
		"departure_date": "2025-06-01", "departure_time": "08:00", "arrival_time": "11:30", "price": "349.99",
	}, sess)
	require.True(t, booked.Success)
	id := booked.Booking.(*flight.Booking).ConfirmationNumber

	res := r.Route(context.Background(), "CancelBooking", map[string]any{"confirmation_number": id}, sess)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "American Airlines")
	assert.NotNil(t, res.Booking)
}

func TestRoute_Modify(t *testing.T) {
	r := newTestRouter()
	assert.Equal(t, msgModifyPrompt, r.Route(context.Background(), "ModifyBooking", nil, newSession("m0")).Message)

	sess := newSession("m1")
	booked := r.Route(context.Background(), "HotelBooking", map[string]any{
		"hotel_name": "Moxy", "location": "NYC", "check_in_date": "2025-06-01", "check_out_date": "2025-06-02",
	}, sess)
	require.True(t, booked.Success)

	res := r.Route(context.Background(), "ModifyBooking", nil, sess)
	assert.True(t, res.Success)
	assert.NotNil(t, res.Booking)
}

func TestRoute_HandlerPanicBecomesFailure(t *testing.T) {
	r := NewRouter(Deps{HotelSearch: panickingSearcher{}})
	res := r.Route(context.Background(), "HotelSearch", map[string]any{"location": "Paris"}, newSession("p"))
	assert.False(t, res.Success)
	assert.Equal(t, msgRouterError, res.Message)
	assert.Equal(t, HotelSearch, res.Intent)
}

func TestRoute_MissingAdapterBecomesFailure(t *testing.T) {
	r := NewRouter(Deps{})
	res := r.Route(context.Background(), "FlightSearch",
		map[string]any{"origin": "NYC", "destination": "LAX", "departure_date": "2025-06-01"}, newSession("n"))
	assert.False(t, res.Success)
	assert.Equal(t, msgRouterError, res.Message)
}

func TestRoute_MergeIsMonotonic(t *testing.T) {
	r := newTestRouter()
	sess := newSession("mono")
	r.Route(context.Background(), "Greeting", map[string]any{"location": "Chicago", "num_guests": 2.0}, sess)
	r.Route(context.Background(), "GeneralQuery", map[string]any{"location": nil, "num_guests": nil}, sess)

	slots := sess.Slots()
	assert.Equal(t, "Chicago", slots[session.SlotLocation])
	assert.Equal(t, 2.0, slots[session.SlotNumGuests])
}

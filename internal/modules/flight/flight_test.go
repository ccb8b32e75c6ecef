package flight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/logger"
)

func init() {
	logger.Silence()
}

type fakeProvider struct {
	flights []Flight
	err     error
	calls   int
	last    Query
}

func (p *fakeProvider) Search(_ context.Context, q Query) ([]Flight, error) {
	p.calls++
	p.last = q
	return p.flights, p.err
}

func routeNYCLAX() map[string]any {
	return map[string]any{"origin": "NYC", "destination": "LAX", "departure_date": "2025-06-01"}
}

func TestSearch_RequiresOrigin(t *testing.T) {
	svc := NewSearchService(&fakeProvider{}, nil, 5)
	res := svc.Execute(context.Background(), map[string]any{"destination": "LAX", "departure_date": "2025-06-01"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "origin")
	assert.Equal(t, "I need the following information: origin city", res.Message)
	assert.Empty(t, res.Flights)
}

func TestSearch_ProviderResults(t *testing.T) {
	provider := &fakeProvider{flights: []Flight{
		{FlightNumber: "AA100", Price: 420, Stops: 0},
		{FlightNumber: "DL200", Price: 310, Stops: 1},
	}}
	svc := NewSearchService(provider, nil, 5)
	res := svc.Execute(context.Background(), routeNYCLAX())

	require.True(t, res.Success)
	require.Len(t, res.Flights, 2)
	assert.Equal(t, "DL200", res.Flights[0].FlightNumber)
	assert.Equal(t, "I found 2 flights from NYC to LAX.", res.Message)
	assert.Equal(t, "live", res.Source)
	assert.Equal(t, "USD", provider.last.Currency)
	assert.Equal(t, 1, provider.last.Adults)
}

func TestSearch_ProviderErrorFallsBack(t *testing.T) {
	svc := NewSearchService(&fakeProvider{err: errors.New("timeout")}, nil, 5)
	res := svc.Execute(context.Background(), routeNYCLAX())
	require.True(t, res.Success)
	assert.Equal(t, "synthetic", res.Source)
	assert.NotEmpty(t, res.Flights)
}

func TestSearch_EmptyProviderFallsBack(t *testing.T) {
	svc := NewSearchService(&fakeProvider{}, nil, 5)
	res := svc.Execute(context.Background(), routeNYCLAX())
	require.True(t, res.Success)
	assert.Equal(t, "synthetic", res.Source)
}

func TestSearch_Constraints(t *testing.T) {
	provider := &fakeProvider{flights: []Flight{
		{FlightNumber: "A1", Price: 500, Stops: 0},
		{FlightNumber: "A2", Price: 150, Stops: 1},
		{FlightNumber: "A3", Price: 250, Stops: 0},
		{FlightNumber: "A4", Price: 180, Stops: 0},
	}}
	svc := NewSearchService(provider, nil, 2)

	in := routeNYCLAX()
	in["max_price"] = "300"
	in["non_stop"] = true
	res := svc.Execute(context.Background(), in)

	require.True(t, res.Success)
	require.Len(t, res.Flights, 2)
	assert.Equal(t, "A4", res.Flights[0].FlightNumber)
	assert.Equal(t, "A3", res.Flights[1].FlightNumber)
}

func TestSearch_ConstraintsExcludeEverything(t *testing.T) {
	svc := NewSearchService(nil, nil, 5)
	in := routeNYCLAX()
	in["max_price"] = 1.0
	res := svc.Execute(context.Background(), in)
	assert.False(t, res.Success)
	assert.Equal(t, "I couldn't find any flights from NYC to LAX on that date.", res.Message)
}

func TestFallbackFlights_Deterministic(t *testing.T) {
	q := Query{Origin: "New York", Destination: "Los Angeles", DepartureDate: "2025-06-01"}
	a := FallbackFlights(q)
	b := FallbackFlights(Query{Origin: "new york", Destination: "LAX", DepartureDate: "2025-06-01"})
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Equal(t, "NYC", a[0].Origin)
	assert.Equal(t, "ECONOMY", a[0].TravelClass)

	other := FallbackFlights(Query{Origin: "NYC", Destination: "LAX", DepartureDate: "2025-06-02"})
	assert.NotEqual(t, a, other)
}

func TestFallbackFlights_BusinessCostsMore(t *testing.T) {
	eco := FallbackFlights(Query{Origin: "BOS", Destination: "SEA", DepartureDate: "2025-07-04"})
	biz := FallbackFlights(Query{Origin: "BOS", Destination: "SEA", DepartureDate: "2025-07-04", TravelClass: "business"})
	for i := range eco {
		assert.Greater(t, biz[i].Price, eco[i].Price)
	}
}

type memCache struct{ data map[string][]Flight }

func (c *memCache) Get(_ context.Context, ns, key string, dest any) (bool, error) {
	v, ok := c.data[ns+key]
	if ok {
		*(dest.(*[]Flight)) = v
	}
	return ok, nil
}

func (c *memCache) Set(_ context.Context, ns, key string, v any) error {
	c.data[ns+key] = v.([]Flight)
	return nil
}

func TestSearch_CachesLiveOffers(t *testing.T) {
	provider := &fakeProvider{flights: []Flight{{FlightNumber: "UA1", Price: 200}}}
	svc := NewSearchService(provider, &memCache{data: map[string][]Flight{}}, 5)

	first := svc.Execute(context.Background(), routeNYCLAX())
	second := svc.Execute(context.Background(), routeNYCLAX())
	assert.Equal(t, "live", first.Source)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, 1, provider.calls)
}

func TestResolveCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"jfk", "JFK", false},
		{"New  York", "NYC", false},
		{"Los Angeles", "LAX", false},
		{"Atlantis City", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveCode(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownAirport)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestAmadeusProvider_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"title":"unauthorized","detail":"bad token"}]}`))
			return
		}
		if r.URL.Query().Get("originLocationCode") != "NYC" || r.URL.Query().Get("destinationLocationCode") != "LAX" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"title":"bad request","detail":"codes"}]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data":[{"id":"1","itineraries":[{"duration":"PT6H10M","segments":[
				{"departure":{"iataCode":"JFK","at":"2025-06-01T08:00:00"},"arrival":{"iataCode":"ORD","at":"2025-06-01T10:00:00"},"carrierCode":"AA","number":"100"},
				{"departure":{"iataCode":"ORD","at":"2025-06-01T11:00:00"},"arrival":{"iataCode":"LAX","at":"2025-06-01T14:10:00"},"carrierCode":"AA","number":"200"}]}],
				"price":{"currency":"USD","total":"349.99","grandTotal":"349.99"},
				"travelerPricings":[{"fareDetailsBySegment":[{"cabin":"ECONOMY"}]}]}],
			"dictionaries":{"carriers":{"AA":"AMERICAN AIRLINES"}}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewAmadeusProvider(AmadeusConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret", Timeout: 5 * time.Second})
	flights, err := p.Search(context.Background(), Query{Origin: "New York", Destination: "LAX", DepartureDate: "2025-06-01", Max: 5})
	require.NoError(t, err)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, "American Airlines", f.Airline)
	assert.Equal(t, "AA100", f.FlightNumber)
	assert.Equal(t, "JFK", f.Origin)
	assert.Equal(t, "LAX", f.Destination)
	assert.Equal(t, "08:00", f.DepartureTime)
	assert.Equal(t, "14:10", f.ArrivalTime)
	assert.Equal(t, "6h 10m", f.Duration)
	assert.Equal(t, 1, f.Stops)
	assert.InDelta(t, 349.99, f.Price, 1e-9)
}

func TestAmadeusProvider_HungTokenEndpointTimesOut(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	defer close(release)

	p := NewAmadeusProvider(AmadeusConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret", Timeout: 200 * time.Millisecond})
	start := time.Now()
	_, err := p.Search(context.Background(), Query{Origin: "NYC", Destination: "LAX", DepartureDate: "2025-06-01"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestAmadeusProvider_UnknownCity(t *testing.T) {
	p := NewAmadeusProvider(AmadeusConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := p.Search(context.Background(), Query{Origin: "Atlantis", Destination: "LAX", DepartureDate: "2025-06-01"})
	assert.ErrorIs(t, err, ErrUnknownAirport)
}

func validFlightBooking() map[string]any {
	return map[string]any{
		"airline":        "American Airlines",
		"flight_number":  "aa100",
		"origin":         "NYC",
		"destination":    "LAX",
		"departure_date": "2025-06-01",
		"departure_time": "08:00",
		"arrival_time":   "11:30",
		"price":          349.99,
	}
}

func TestBooking_MissingFields(t *testing.T) {
	svc := NewBookingService(NewStore())
	in := validFlightBooking()
	delete(in, "airline")
	in["price"] = 0.0
	res := svc.Execute(context.Background(), in)
	assert.False(t, res.Success)
	assert.Equal(t,
		"I need the following information to complete your flight booking: airline name, price. Could you provide that?",
		res.Message)
}

func TestBooking_OneWayDefaults(t *testing.T) {
	svc := NewBookingService(NewStore())
	res := svc.Execute(context.Background(), validFlightBooking())
	require.True(t, res.Success)
	b := res.Booking
	assert.Equal(t, "Flight booking confirmed successfully!", res.Message)
	assert.Regexp(t, regexp.MustCompile(`^FLT-[A-Z0-9]{6}$`), b.ConfirmationNumber)
	assert.Equal(t, "AA100", b.FlightNumber)
	assert.Equal(t, TripOneWay, b.TripType)
	assert.Equal(t, "ECONOMY", b.TravelClass)
	assert.Equal(t, "USD", b.CurrencyCode)
	assert.Equal(t, 1, b.NumPassengers)
	assert.Equal(t, "Traveler", b.PassengerName)
	assert.Equal(t, "confirmed", b.Status)

	got, err := svc.Get(context.Background(), b.ConfirmationNumber)
	require.NoError(t, err)
	assert.Equal(t, *b, got)
}

func TestBooking_RoundTrip(t *testing.T) {
	in := validFlightBooking()
	in["return_date"] = "2025-06-08"
	in["return_flight_number"] = "aa101"
	res := NewBookingService(NewStore()).Execute(context.Background(), in)
	require.True(t, res.Success)
	assert.Equal(t, TripRoundTrip, res.Booking.TripType)
	assert.Equal(t, "AA101", res.Booking.ReturnFlightNumber)
}

func TestBooking_UniqueIDs(t *testing.T) {
	svc := NewBookingService(NewStore())
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		res := svc.Execute(context.Background(), validFlightBooking())
		require.True(t, res.Success)
		require.False(t, seen[res.Booking.ConfirmationNumber])
		seen[res.Booking.ConfirmationNumber] = true
	}
	assert.Len(t, svc.List(context.Background()), 300)

	_, err := svc.Get(context.Background(), "FLT-000000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// README: Direct flight search and booking handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/flight"
)

type FlightHandler struct {
	search  *flight.SearchService
	booking *flight.BookingService
}

func NewFlightHandler(search *flight.SearchService, booking *flight.BookingService) *FlightHandler {
	return &FlightHandler{search: search, booking: booking}
}

type flightSearchReq struct {
	Origin        string   `json:"origin" binding:"required"`
	Destination   string   `json:"destination" binding:"required"`
	DepartureDate string   `json:"departureDate" binding:"required,datetime=2006-01-02"`
	ReturnDate    string   `json:"returnDate" binding:"omitempty,datetime=2006-01-02"`
	MaxPrice      *float64 `json:"maxPrice" binding:"omitempty,gt=0"`
	CurrencyCode  string   `json:"currencyCode" binding:"omitempty,len=3"`
	TravelClass   string   `json:"travelClass" binding:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NonStop       *bool    `json:"nonStop"`
}

func (r flightSearchReq) values() map[string]any {
	m := map[string]any{}
	putString(m, "origin", r.Origin)
	putString(m, "destination", r.Destination)
	putString(m, "departure_date", r.DepartureDate)
	putString(m, "return_date", r.ReturnDate)
	putString(m, "currency_code", r.CurrencyCode)
	putString(m, "travel_class", r.TravelClass)
	if r.MaxPrice != nil {
		m["max_price"] = *r.MaxPrice
	}
	if r.NonStop != nil {
		m["non_stop"] = *r.NonStop
	}
	return m
}

// Search handles POST /api/flights/search.
func (h *FlightHandler) Search(c *gin.Context) {
	var req flightSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	res := h.search.Execute(c.Request.Context(), req.values())
	writeJSON(c, http.StatusOK, res)
}

type flightBookReq struct {
	Airline            string  `json:"airline" binding:"required"`
	FlightNumber       string  `json:"flightNumber" binding:"required"`
	Origin             string  `json:"origin" binding:"required"`
	Destination        string  `json:"destination" binding:"required"`
	DepartureDate      string  `json:"departureDate" binding:"required,datetime=2006-01-02"`
	DepartureTime      string  `json:"departureTime" binding:"required"`
	ArrivalTime        string  `json:"arrivalTime" binding:"required"`
	Price              float64 `json:"price" binding:"required,gt=0"`
	CurrencyCode       string  `json:"currencyCode" binding:"omitempty,len=3"`
	TravelClass        string  `json:"travelClass" binding:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NumPassengers      int     `json:"numPassengers" binding:"omitempty,min=1,max=9"`
	PassengerName      string  `json:"passengerName"`
	ReturnDate         string  `json:"returnDate" binding:"omitempty,datetime=2006-01-02"`
	ReturnFlightNumber string  `json:"returnFlightNumber"`
}

func (r flightBookReq) values() map[string]any {
	m := map[string]any{"price": r.Price}
	putString(m, "airline", r.Airline)
	putString(m, "flight_number", r.FlightNumber)
	putString(m, "origin", r.Origin)
	putString(m, "destination", r.Destination)
	putString(m, "departure_date", r.DepartureDate)
	putString(m, "departure_time", r.DepartureTime)
	putString(m, "arrival_time", r.ArrivalTime)
	putString(m, "currency_code", r.CurrencyCode)
	putString(m, "travel_class", r.TravelClass)
	putString(m, "passenger_name", r.PassengerName)
	putString(m, "return_date", r.ReturnDate)
	putString(m, "return_flight_number", r.ReturnFlightNumber)
	if r.NumPassengers > 0 {
		m["num_passengers"] = r.NumPassengers
	}
	return m
}

// Book handles POST /api/flights/book.
func (h *FlightHandler) Book(c *gin.Context) {
	var req flightBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	res := h.booking.Execute(c.Request.Context(), req.values())
	writeJSON(c, resultStatus(res.Success, true), res)
}

func (h *FlightHandler) ListBookings(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"bookings": h.booking.List(c.Request.Context())})
}

func (h *FlightHandler) GetBooking(c *gin.Context) {
	b, err := h.booking.Get(c.Request.Context(), confirmationParam(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

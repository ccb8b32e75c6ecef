// README: Direct hotel search, booking and cancellation handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/hotel"
)

type HotelHandler struct {
	search  *hotel.SearchService
	booking *hotel.BookingService
}

func NewHotelHandler(search *hotel.SearchService, booking *hotel.BookingService) *HotelHandler {
	return &HotelHandler{search: search, booking: booking}
}

type hotelSearchReq struct {
	Location     string `json:"location" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"omitempty,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" binding:"omitempty,datetime=2006-01-02"`
	NumGuests    int    `json:"numGuests" binding:"omitempty,min=1,max=10"`
}

// Search handles POST /api/hotels/search.
func (h *HotelHandler) Search(c *gin.Context) {
	var req hotelSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	in := map[string]any{}
	putString(in, "location", req.Location)
	putString(in, "check_in_date", req.CheckInDate)
	putString(in, "check_out_date", req.CheckOutDate)
	if req.NumGuests > 0 {
		in["num_guests"] = req.NumGuests
	}
	writeJSON(c, http.StatusOK, h.search.Execute(c.Request.Context(), in))
}

type hotelBookReq struct {
	HotelName    string `json:"hotelName" binding:"required"`
	Location     string `json:"location" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" binding:"required,datetime=2006-01-02"`
	NumGuests    int    `json:"numGuests" binding:"omitempty,min=1,max=10"`
	RoomType     string `json:"roomType"`
}

// Book handles POST /api/hotels/book.
func (h *HotelHandler) Book(c *gin.Context) {
	var req hotelBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	in := map[string]any{}
	putString(in, "hotel_name", req.HotelName)
	putString(in, "location", req.Location)
	putString(in, "check_in_date", req.CheckInDate)
	putString(in, "check_out_date", req.CheckOutDate)
	putString(in, "room_type", req.RoomType)
	if req.NumGuests > 0 {
		in["num_guests"] = req.NumGuests
	}
	res := h.booking.Execute(c.Request.Context(), in)
	writeJSON(c, resultStatus(res.Success, true), res)
}

func (h *HotelHandler) ListBookings(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"bookings": h.booking.List(c.Request.Context())})
}

func (h *HotelHandler) GetBooking(c *gin.Context) {
	b, err := h.booking.Get(c.Request.Context(), confirmationParam(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

// Cancel handles POST /api/hotels/bookings/:id/cancel.
func (h *HotelHandler) Cancel(c *gin.Context) {
	res, err := h.booking.Cancel(c.Request.Context(), confirmationParam(c))
	if err != nil {
		writeJSON(c, bookingErrorStatus(err), res)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func confirmationParam(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("id")))
}

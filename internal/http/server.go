// README: API gateway; registers gin routes and delegates to the assistant and tool adapters.
package http

import (
	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/modules/flight"
	"wayfarer/internal/modules/hotel"
	"wayfarer/internal/service"
)

type ServerDeps struct {
	Assistant     *service.Assistant
	FlightSearch  *flight.SearchService
	FlightBooking *flight.BookingService
	HotelSearch   *hotel.SearchService
	HotelBooking  *hotel.BookingService
	Version       string
}

type Server struct {
	chat   *handlers.ChatHandler
	flight *handlers.FlightHandler
	hotel  *handlers.HotelHandler
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		chat:   handlers.NewChatHandler(deps.Assistant, deps.Version),
		flight: handlers.NewFlightHandler(deps.FlightSearch, deps.FlightBooking),
		hotel:  handlers.NewHotelHandler(deps.HotelSearch, deps.HotelBooking),
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS())

	r.GET("/", s.chat.Root)
	r.GET("/health", s.chat.Health)

	api := r.Group("/api")
	api.POST("/chat", s.chat.Chat)
	api.GET("/sessions/:id", s.chat.GetSession)
	api.POST("/sessions/:id/reset", s.chat.ResetSession)
	api.DELETE("/sessions/:id", s.chat.DeleteSession)

	api.POST("/flights/search", s.flight.Search)
	api.POST("/flights/book", s.flight.Book)
	api.GET("/flights/bookings", s.flight.ListBookings)
	api.GET("/flights/bookings/:id", s.flight.GetBooking)

	api.POST("/hotels/search", s.hotel.Search)
	api.POST("/hotels/book", s.hotel.Book)
	api.GET("/hotels/bookings", s.hotel.ListBookings)
	api.GET("/hotels/bookings/:id", s.hotel.GetBooking)
	api.POST("/hotels/bookings/:id/cancel", s.hotel.Cancel)
	return r
}

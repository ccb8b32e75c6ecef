// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/flight"
	"wayfarer/internal/modules/hotel"
	"wayfarer/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID accepts client-chosen session ids: 1-64 chars of letters, digits, '-' or '_'.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, hotel.ErrBookingNotFound), errors.Is(err, flight.ErrBookingNotFound), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, hotel.ErrAlreadyCancelled), errors.Is(err, hotel.ErrInvalidState),
		errors.Is(err, hotel.ErrConflict), errors.Is(err, flight.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeBookingError(c *gin.Context, err error) {
	status := bookingErrorStatus(err)
	if status == http.StatusInternalServerError {
		writeError(c, status, "internal error")
		return
	}
	writeError(c, status, err.Error())
}

// resultStatus picks the status for a tool envelope: 200 or created on success, 422 on a
// reported failure.
func resultStatus(success bool, created bool) int {
	switch {
	case !success:
		return http.StatusUnprocessableEntity
	case created:
		return http.StatusCreated
	default:
		return http.StatusOK
	}
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

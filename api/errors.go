package api

import (
	"errors"
	"net/http"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP statuses: missing records are 404,
// invariant conflicts are 409, everything else is a storage failure.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrBookingAlreadyCancelled),
		errors.Is(err, domain.ErrEmailAlreadyRegistered):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

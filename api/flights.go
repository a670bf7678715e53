package api

import (
	"net/http"
	"strconv"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/galaxium/travels-booking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	FlightID       int64  `json:"flight_id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Price          int64  `json:"price"`
	TotalSeats     int    `json:"total_seats"`
	SeatsAvailable int    `json:"seats_available"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router gin.IRouter) {
	router.GET("/flights", h.list)
	router.GET("/flights/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	listed, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]flightResponse, 0, len(listed))
	for i := range listed {
		responses = append(responses, toFlightResponse(&listed[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		FlightID:       f.FlightID,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Price:          f.Price,
		TotalSeats:     f.TotalSeats,
		SeatsAvailable: f.SeatsAvailable,
	}
}

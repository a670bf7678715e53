package api

import (
	"net/http"
	"strconv"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/galaxium/travels-booking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookFlightRequest struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name" binding:"required"`
	FlightID int64  `json:"flight_id"`
}

type bookingResponse struct {
	BookingID   int64  `json:"booking_id"`
	UserID      int64  `json:"user_id"`
	FlightID    int64  `json:"flight_id"`
	Status      string `json:"status"`
	BookingTime string `json:"booking_time"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router gin.IRouter) {
	router.POST("/book", h.book)
	router.POST("/cancel/:booking_id", h.cancel)
	router.GET("/bookings/:user_id", h.listForUser)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.service.BookFlight(c.Request.Context(), booking.BookFlightInput{
		UserID:   req.UserID,
		Name:     req.Name,
		FlightID: req.FlightID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booked))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func (h *BookingHandler) listForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:   b.BookingID,
		UserID:      b.UserID,
		FlightID:    b.FlightID,
		Status:      string(b.Status),
		BookingTime: b.BookingTime,
	}
}

package domain

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"

	// BookingStatusCompleted only ever appears in seeded historical data.
	// No operation transitions a booking into or out of it.
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	BookingID   int64         `json:"booking_id"`
	UserID      int64         `json:"user_id"`
	FlightID    int64         `json:"flight_id"`
	Status      BookingStatus `json:"status"`
	BookingTime string        `json:"booking_time"`
}

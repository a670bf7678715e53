package domain

// Flight departure and arrival times are kept as the opaque timestamp strings
// stored in the database; no timezone arithmetic is ever performed on them.
type Flight struct {
	FlightID       int64  `json:"flight_id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Price          int64  `json:"price"`
	TotalSeats     int    `json:"total_seats"`
	SeatsAvailable int    `json:"seats_available"`
}

package booking

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/galaxium/travels-booking/internal/kafka"
	"github.com/galaxium/travels-booking/internal/repository"
	"github.com/galaxium/travels-booking/internal/service/flights"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookFlight(ctx context.Context, input BookFlightInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookFlightInput struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	FlightID int64  `json:"flight_id"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	cache              flights.Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the wall clock used to stamp booking times.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	cache flights.Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		users:        users,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookFlight reserves a seat and records the booking. The repository runs
// the whole thing as one transaction; validation order (flight, seats, user
// identity) is part of its contract, so the first failing check decides the
// error with no state touched.
func (s *BookingService) BookFlight(ctx context.Context, input BookFlightInput) (*domain.Booking, error) {
	bookingTime := s.now().UTC().Format(time.RFC3339)

	booking, user, err := s.bookings.Create(ctx, repository.CreateBookingParams{
		UserID:      input.UserID,
		Name:        input.Name,
		FlightID:    input.FlightID,
		BookingTime: bookingTime,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	s.publish(ctx, "booking_created", booking, user.Email)
	return booking, nil
}

// CancelBooking is not idempotent: a second cancel of the same booking fails
// with ErrBookingAlreadyCancelled and the seat is not incremented again.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}

	var email string
	if user, err := s.users.GetByID(ctx, booking.UserID); err == nil {
		email = user.Email
	}
	s.publish(ctx, "booking_cancelled", booking, email)
	return booking, nil
}

// ListUserBookings returns all bookings for the user in any status. An
// unknown user is not an error, just an empty list.
func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		BookingID:   booking.BookingID,
		UserID:      booking.UserID,
		FlightID:    booking.FlightID,
		Email:       email,
		Status:      string(booking.Status),
		BookingTime: booking.BookingTime,
	}
	key := strconv.FormatInt(booking.BookingID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, booking.BookingID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %d: %v", eventType, booking.BookingID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

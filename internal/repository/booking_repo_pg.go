package repository

import (
	"context"
	"errors"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateBookingParams carries everything the booking transaction validates:
// the flight being booked and the claimed identity of the traveller.
type CreateBookingParams struct {
	UserID      int64
	Name        string
	FlightID    int64
	BookingTime string
}

type BookingRepository interface {
	// Create reserves one seat and inserts the booking as a single
	// transaction. It returns the new booking together with the verified
	// user record. Validation order inside the transaction is fixed:
	// flight existence, seat availability, user identity.
	Create(ctx context.Context, params CreateBookingParams) (*domain.Booking, *domain.User, error)
	// Cancel flips a booked booking to cancelled and returns the seat to the
	// flight, atomically. A booking that is not in the booked state is a
	// conflict, so the seat can never be released twice.
	Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, params CreateBookingParams) (*domain.Booking, *domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the flight row so concurrent bookings of the last seat serialize
	// here and the loser sees the decremented count.
	var seats int
	err = tx.QueryRow(ctx, `SELECT seats_available FROM flights WHERE flight_id=$1 FOR UPDATE`, params.FlightID).Scan(&seats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrFlightNotFound
		}
		return nil, nil, err
	}
	if seats < 1 {
		return nil, nil, domain.ErrNoSeatsAvailable
	}

	// Identity guard: id and name must match the same record. A bare
	// foreign-key check would let a spoofed user_id through.
	var user domain.User
	err = tx.QueryRow(ctx, `SELECT user_id, name, email FROM users WHERE user_id=$1 AND name=$2`, params.UserID, params.Name).
		Scan(&user.UserID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - 1 WHERE flight_id=$1`, params.FlightID); err != nil {
		return nil, nil, err
	}

	booking := &domain.Booking{
		UserID:      params.UserID,
		FlightID:    params.FlightID,
		Status:      domain.BookingStatusBooked,
		BookingTime: params.BookingTime,
	}
	err = tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, status, booking_time) VALUES ($1, $2, $3, $4) RETURNING booking_id`,
		booking.UserID, booking.FlightID, booking.Status, booking.BookingTime).Scan(&booking.BookingID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return booking, &user, nil
}

func (r *PGBookingRepository) Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var b domain.Booking
	err = tx.QueryRow(ctx, `SELECT booking_id, user_id, flight_id, status, booking_time FROM bookings WHERE booking_id=$1 FOR UPDATE`, bookingID).
		Scan(&b.BookingID, &b.UserID, &b.FlightID, &b.Status, &b.BookingTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status != domain.BookingStatusBooked {
		return nil, domain.ErrBookingAlreadyCancelled
	}

	if _, err := tx.Exec(ctx, `UPDATE bookings SET status=$1 WHERE booking_id=$2`, domain.BookingStatusCancelled, bookingID); err != nil {
		return nil, err
	}

	// A flight that no longer exists is tolerated: the status transition
	// still commits, there is just no seat counter to return the seat to.
	if _, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available + 1 WHERE flight_id=$1`, b.FlightID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatusCancelled
	return &b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT booking_id, user_id, flight_id, status, booking_time FROM bookings WHERE user_id=$1 ORDER BY booking_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.BookingID, &b.UserID, &b.FlightID, &b.Status, &b.BookingTime); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)

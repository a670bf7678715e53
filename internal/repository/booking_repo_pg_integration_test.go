//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/galaxium/travels-booking/internal/seed"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a live Postgres; point TEST_DATABASE_DSN at one and run
// with -tags integration.

func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, seed.EnsureSchema(ctx, pool))
	return pool
}

func insertFlight(t *testing.T, pool *pgxpool.Pool, seats int) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO flights (origin, destination, departure_time, arrival_time, price, total_seats, seats_available)
		 VALUES ('Earth', 'Mars', '2099-01-01T09:00:00Z', '2099-01-01T17:00:00Z', 1000000, $1, $1)
		 RETURNING flight_id`, seats).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertUser(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING user_id`,
		name, uuid.NewString()+"@galaxium.com").Scan(&id)
	require.NoError(t, err)
	return id
}

func seatsAvailable(t *testing.T, pool *pgxpool.Pool, flightID int64) int {
	t.Helper()

	var seats int
	err := pool.QueryRow(context.Background(),
		`SELECT seats_available FROM flights WHERE flight_id=$1`, flightID).Scan(&seats)
	require.NoError(t, err)
	return seats
}

func TestBookingRepository_Create_ValidationOrder(t *testing.T) {
	pool := integrationPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	bookingTime := time.Now().UTC().Format(time.RFC3339)

	// Unknown flight wins over everything else, even an unknown user.
	_, _, err := repo.Create(ctx, CreateBookingParams{UserID: -1, Name: "Nobody", FlightID: -1, BookingTime: bookingTime})
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)

	// A sold-out flight is reported before the identity is even looked at.
	soldOut := insertFlight(t, pool, 0)
	_, _, err = repo.Create(ctx, CreateBookingParams{UserID: -1, Name: "Nobody", FlightID: soldOut, BookingTime: bookingTime})
	assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable)

	// Open flight, but the claimed name does not match the user record.
	open := insertFlight(t, pool, 2)
	userID := insertUser(t, pool, "Zara Quinn")
	_, _, err = repo.Create(ctx, CreateBookingParams{UserID: userID, Name: "Someone Else", FlightID: open, BookingTime: bookingTime})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// The failed attempts must not have touched the counter.
	assert.Equal(t, 2, seatsAvailable(t, pool, open))
}

func TestBookingRepository_Create_LastSeatContention(t *testing.T) {
	pool := integrationPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	flightID := insertFlight(t, pool, 1)
	userID := insertUser(t, pool, "Milo Vance")

	const callers = 8
	results := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = repo.Create(ctx, CreateBookingParams{
				UserID:      userID,
				Name:        "Milo Vance",
				FlightID:    flightID,
				BookingTime: time.Now().UTC().Format(time.RFC3339),
			})
		}(i)
	}
	wg.Wait()

	var booked, refused int
	for i, err := range results {
		switch {
		case err == nil:
			booked++
		case assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable, fmt.Sprintf("caller %d", i)):
			refused++
		}
	}

	assert.Equal(t, 1, booked)
	assert.Equal(t, callers-1, refused)
	assert.Equal(t, 0, seatsAvailable(t, pool, flightID))
}

func TestBookingRepository_CancelReturnsSeat(t *testing.T) {
	pool := integrationPool(t)
	repo := NewBookingRepository(pool)
	ctx := context.Background()

	flightID := insertFlight(t, pool, 3)
	userID := insertUser(t, pool, "Ivy Note")

	booking, user, err := repo.Create(ctx, CreateBookingParams{
		UserID:      userID,
		Name:        "Ivy Note",
		FlightID:    flightID,
		BookingTime: time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.UserID)
	assert.Equal(t, domain.BookingStatusBooked, booking.Status)
	assert.Equal(t, 2, seatsAvailable(t, pool, flightID))

	cancelled, err := repo.Cancel(ctx, booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, booking.BookingTime, cancelled.BookingTime)
	assert.Equal(t, 3, seatsAvailable(t, pool, flightID))

	// A second cancel must not release the seat again.
	_, err = repo.Cancel(ctx, booking.BookingID)
	assert.ErrorIs(t, err, domain.ErrBookingAlreadyCancelled)
	assert.Equal(t, 3, seatsAvailable(t, pool, flightID))
}

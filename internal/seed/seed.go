package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// One statement per Exec: pgx's extended protocol does not take
// multi-statement strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		flight_id BIGSERIAL PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_time TEXT NOT NULL,
		arrival_time TEXT NOT NULL,
		price BIGINT NOT NULL,
		total_seats INT NOT NULL,
		seats_available INT NOT NULL,
		CONSTRAINT seats_within_capacity CHECK (seats_available >= 0 AND seats_available <= total_seats)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (user_id),
		flight_id BIGINT NOT NULL REFERENCES flights (flight_id),
		status TEXT NOT NULL,
		booking_time TEXT NOT NULL
	)`,
}

type demoUser struct {
	name  string
	email string
}

type demoFlight struct {
	origin      string
	destination string
	departure   string
	arrival     string
	price       int64
	seats       int
}

var demoUsers = []demoUser{
	{"Alice", "alice@example.com"},
	{"Bob", "bob@example.com"},
	{"Charlie", "charlie@galaxium.com"},
	{"Diana", "diana@moonmail.com"},
	{"Eve", "eve@marsmail.com"},
	{"Frank", "frank@venusmail.com"},
	{"Grace", "grace@jupiter.com"},
	{"Heidi", "heidi@europa.com"},
	{"Ivan", "ivan@asteroidbelt.com"},
	{"Judy", "judy@pluto.com"},
}

var demoFlights = []demoFlight{
	{"Earth", "Mars", "2099-01-01T09:00:00Z", "2099-01-01T17:00:00Z", 1000000, 5},
	{"Earth", "Moon", "2099-01-02T10:00:00Z", "2099-01-02T14:00:00Z", 500000, 3},
	{"Mars", "Earth", "2099-01-03T12:00:00Z", "2099-01-03T20:00:00Z", 950000, 7},
	{"Venus", "Earth", "2099-01-04T08:00:00Z", "2099-01-04T18:00:00Z", 1200000, 2},
	{"Jupiter", "Europa", "2099-01-05T15:00:00Z", "2099-01-05T19:00:00Z", 2000000, 1},
	{"Earth", "Venus", "2099-01-06T07:00:00Z", "2099-01-06T15:00:00Z", 1100000, 4},
	{"Moon", "Mars", "2099-01-07T11:00:00Z", "2099-01-07T19:00:00Z", 800000, 6},
	{"Mars", "Jupiter", "2099-01-08T13:00:00Z", "2099-01-08T23:00:00Z", 2500000, 2},
	{"Europa", "Earth", "2099-01-09T09:00:00Z", "2099-01-09T21:00:00Z", 3000000, 3},
	{"Earth", "Pluto", "2099-01-10T06:00:00Z", "2099-01-11T06:00:00Z", 5000000, 1},
}

var demoStatuses = []domain.BookingStatus{
	domain.BookingStatusBooked,
	domain.BookingStatusCancelled,
	domain.BookingStatusCompleted,
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Run creates the schema and replaces all data with the Galaxium demo set.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	if err := EnsureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"bookings", "users", "flights"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	userIDs := make([]int64, 0, len(demoUsers))
	for _, u := range demoUsers {
		var id int64
		if err := tx.QueryRow(ctx, `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING user_id`, u.name, u.email).Scan(&id); err != nil {
			return fmt.Errorf("seed user %s: %w", u.name, err)
		}
		userIDs = append(userIDs, id)
	}

	flightIDs := make([]int64, 0, len(demoFlights))
	for _, f := range demoFlights {
		var id int64
		err := tx.QueryRow(ctx, `INSERT INTO flights (origin, destination, departure_time, arrival_time, price, total_seats, seats_available)
			VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING flight_id`,
			f.origin, f.destination, f.departure, f.arrival, f.price, f.seats).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed flight %s-%s: %w", f.origin, f.destination, err)
		}
		flightIDs = append(flightIDs, id)
	}

	now := time.Now().UTC()
	for i := 0; i < 20; i++ {
		flightID := flightIDs[rand.Intn(len(flightIDs))]
		status := demoStatuses[rand.Intn(len(demoStatuses))]

		// A seeded booked booking must hold a real seat, or the derived
		// seats_available counter would lie. Sold-out flights get a
		// historical completed booking instead.
		if status == domain.BookingStatusBooked {
			res, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - 1 WHERE flight_id=$1 AND seats_available > 0`, flightID)
			if err != nil {
				return fmt.Errorf("seed booking seat: %w", err)
			}
			if res.RowsAffected() == 0 {
				status = domain.BookingStatusCompleted
			}
		}

		bookingTime := now.Add(-time.Duration(rand.Intn(30*24)+rand.Intn(24)) * time.Hour).Format(time.RFC3339)
		_, err := tx.Exec(ctx, `INSERT INTO bookings (user_id, flight_id, status, booking_time) VALUES ($1, $2, $3, $4)`,
			userIDs[rand.Intn(len(userIDs))],
			flightID,
			status,
			bookingTime)
		if err != nil {
			return fmt.Errorf("seed booking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("database seeded: %d users, %d flights, 20 bookings", len(demoUsers), len(demoFlights))
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetResult reports how many rows an administrative reset removed.
type ResetResult struct {
	UsersDeleted    int64
	BookingsDeleted int64
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error)
	ResetAll(ctx context.Context) (ResetResult, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, user.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailAlreadyRegistered
	}

	err := r.db.QueryRow(ctx, `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING user_id`, user.Name, user.Email).Scan(&user.UserID)
	if err != nil {
		// Lost the race against a concurrent registration with the same email.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT user_id, name, email FROM users WHERE user_id=$1`, id))
}

func (r *PGUserRepository) GetByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT user_id, name, email FROM users WHERE name=$1 AND email=$2`, name, email))
}

// ResetAll removes all bookings, then all users, in one transaction.
// Flights are untouched. Any failure rolls back both deletes.
func (r *PGUserRepository) ResetAll(ctx context.Context) (ResetResult, error) {
	var result ResetResult

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer tx.Rollback(ctx)

	bookings, err := tx.Exec(ctx, `DELETE FROM bookings`)
	if err != nil {
		return result, err
	}
	users, err := tx.Exec(ctx, `DELETE FROM users`)
	if err != nil {
		return result, err
	}
	if err := tx.Commit(ctx); err != nil {
		return result, err
	}

	result.BookingsDeleted = bookings.RowsAffected()
	result.UsersDeleted = users.RowsAffected()
	return result, nil
}

func (r *PGUserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)

package users

import (
	"context"
	"log"
	"strconv"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/galaxium/travels-booking/internal/kafka"
	"github.com/galaxium/travels-booking/internal/repository"
	"github.com/google/uuid"
)

type UserUseCase interface {
	Register(ctx context.Context, name, email string) (*domain.User, error)
	FindByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error)
	ResetUsers(ctx context.Context) (repository.ResetResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type UserService struct {
	users              repository.UserRepository
	producer           Producer
	notificationsTopic string
}

func NewUserService(users repository.UserRepository, producer Producer, notificationsTopic string) *UserService {
	return &UserService{users: users, producer: producer, notificationsTopic: notificationsTopic}
}

// Register creates a user with a unique email. Email comparison is exact and
// case sensitive.
func (s *UserService) Register(ctx context.Context, name, email string) (*domain.User, error) {
	user := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.producer != nil && s.notificationsTopic != "" {
		event := kafka.BookingEvent{
			EventID: uuid.NewString(),
			Type:    "user_registered",
			UserID:  user.UserID,
			Email:   user.Email,
		}
		if err := s.producer.Publish(ctx, s.notificationsTopic, strconv.FormatInt(user.UserID, 10), event); err != nil {
			log.Printf("WARNING: failed to publish user_registered event for user %d: %v", user.UserID, err)
		}
	}
	return user, nil
}

func (s *UserService) FindByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error) {
	return s.users.GetByNameAndEmail(ctx, name, email)
}

// ResetUsers wipes all bookings and users in one transaction, leaving
// flights intact. A failure rolls the whole reset back.
func (s *UserService) ResetUsers(ctx context.Context) (repository.ResetResult, error) {
	return s.users.ResetAll(ctx)
}

var _ UserUseCase = (*UserService)(nil)

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galaxium/travels-booking/config"
	"github.com/galaxium/travels-booking/internal/bootstrap"
	"github.com/galaxium/travels-booking/internal/cache"
	"github.com/galaxium/travels-booking/internal/kafka"
	"github.com/galaxium/travels-booking/internal/repository"
	"github.com/galaxium/travels-booking/internal/seed"
	"github.com/galaxium/travels-booking/internal/service/booking"
	"github.com/galaxium/travels-booking/internal/service/flights"
	"github.com/galaxium/travels-booking/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, pool); err != nil {
			log.Fatalf("seed database: %v", err)
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		userRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	userService := users.NewUserService(userRepo, producer, cfg.Kafka.NotificationsTopic)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, userService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galaxium/travels-booking/config"
	"github.com/galaxium/travels-booking/internal/email"
	"github.com/galaxium/travels-booking/internal/kafka"
)

// The worker consumes the notifications topic and hands every event to the
// email sender.
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

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:           cfg.Kafka.Brokers,
		GroupID:           cfg.Kafka.GroupID,
		Topic:             cfg.Kafka.NotificationsTopic,
		HeartbeatInterval: time.Duration(cfg.Kafka.HeartbeatIntervalSeconds) * time.Second,
		SessionTimeout:    time.Duration(cfg.Kafka.SessionTimeoutSeconds) * time.Second,
	})
	defer consumer.Close()

	emailSender := email.NewSender()

	if err := consumer.Consume(ctx, emailSender.Send); err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}

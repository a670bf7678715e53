package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultHeartbeatInterval = 3 * time.Second
	defaultSessionTimeout    = 30 * time.Second
)

type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
	// Zero durations fall back to the defaults above.
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
}

func newReaderConfig(cfg ConsumerConfig) kafka.ReaderConfig {
	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeatInterval
	}
	session := cfg.SessionTimeout
	if session <= 0 {
		session = defaultSessionTimeout
	}
	return kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		GroupID:           cfg.GroupID,
		Topic:             cfg.Topic,
		HeartbeatInterval: heartbeat,
		SessionTimeout:    session,
	}
}

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	return &Consumer{reader: kafka.NewReader(newReaderConfig(cfg))}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume decodes every message as a BookingEvent and hands it to the
// handler, until the context is cancelled or the handler fails. A payload
// that does not decode is logged and skipped rather than wedging the group.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeEvent(msg)
		if err != nil {
			log.Printf("skip undecodable event at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeEvent(msg kafka.Message) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return BookingEvent{}, err
	}
	return event, nil
}

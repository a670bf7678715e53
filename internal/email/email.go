package email

import (
	"context"
	"fmt"

	"github.com/galaxium/travels-booking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	fmt.Printf("send email to %s about %s for flight %d (booking %d)\n", event.Email, event.Type, event.FlightID, event.BookingID)
	return nil
}

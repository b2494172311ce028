package email

import (
	"context"

	"github.com/Domenick1991/airline-backoffice/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking notifications. The transport is a log line for
// now; the worker owns the consume loop.
type Sender struct {
	log *zap.SugaredLogger
}

func NewSender(log *zap.SugaredLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Infow("sending booking notification",
		"to", event.PassengerEmail,
		"type", event.Type,
		"reference", event.Reference,
		"segments", event.Segments,
		"total_cents", event.TotalCents,
	)
	return nil
}

package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/velopool/bikeshare/internal/kafka"
)

// Sender delivers rider notifications for rental events. The mail
// transport is not wired yet; this logs what would be sent.
type Sender struct {
	logger zerolog.Logger
}

func NewSender(logger zerolog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.RentalEvent) error {
	s.logger.Info().
		Str("event", event.Type).
		Int64("user_id", event.UserID).
		Int64("rental_id", event.RentalID).
		Int64("station_id", event.StationID).
		Msg("notify rider")
	return nil
}

package rental

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/velopool/bikeshare/internal/domain"
	"github.com/velopool/bikeshare/internal/kafka"
	"github.com/velopool/bikeshare/internal/repository"
)

// UseCase is the rental inventory manager. Callers supply an already
// authenticated user id; no authentication happens here.
type UseCase interface {
	Rent(ctx context.Context, userID, stationID int64) (*domain.Rental, error)
	Return(ctx context.Context, userID, rentalID, stationID int64) (*domain.Rental, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.UserRental, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Service struct {
	rentals            repository.RentalRepository
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	logger             zerolog.Logger
}

type ServiceOption func(*Service)

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(rentals repository.RentalRepository, producer Producer, eventsTopic string, opts ...ServiceOption) *Service {
	service := &Service{
		rentals:     rentals,
		producer:    producer,
		eventsTopic: eventsTopic,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) Rent(ctx context.Context, userID, stationID int64) (*domain.Rental, error) {
	if userID <= 0 || stationID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	rental, err := s.rentals.Rent(ctx, userID, stationID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventRentalStarted, rental, stationID)
	return rental, nil
}

func (s *Service) Return(ctx context.Context, userID, rentalID, stationID int64) (*domain.Rental, error) {
	if userID <= 0 || rentalID <= 0 || stationID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	rental, err := s.rentals.Return(ctx, userID, rentalID, stationID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventRentalReturned, rental, stationID)
	return rental, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.UserRental, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.rentals.ListByUser(ctx, userID)
}

// publish is best-effort: the rental is already committed, so event
// delivery failures are logged and never surfaced to the caller.
func (s *Service) publish(ctx context.Context, eventType string, rental *domain.Rental, stationID int64) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}

	event := kafka.RentalEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RentalID:   rental.ID,
		UserID:     rental.UserID,
		StationID:  stationID,
		Status:     string(rental.Status),
		OccurredAt: time.Now(),
	}
	key := strconv.FormatInt(rental.ID, 10)

	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Int64("rental_id", rental.ID).
			Msg("failed to publish rental event")
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.logger.Warn().Err(err).Str("event", eventType).Int64("rental_id", rental.ID).
				Msg("failed to publish notification")
		}
	}
}

var _ UseCase = (*Service)(nil)

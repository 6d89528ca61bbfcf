package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestConsumer_dispatch(t *testing.T) {
	c := &Consumer{logger: zerolog.Nop()}

	event := RentalEvent{
		ID:         "evt-1",
		Type:       EventRentalStarted,
		RentalID:   42,
		UserID:     7,
		StationID:  1,
		Status:     "active",
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	var got RentalEvent
	err = c.dispatch(context.Background(), kafka.Message{Value: payload},
		func(ctx context.Context, e RentalEvent) error {
			got = e
			return nil
		})

	assert.NoError(t, err)
	assert.Equal(t, EventRentalStarted, got.Type)
	assert.Equal(t, int64(42), got.RentalID)
	assert.Equal(t, int64(7), got.UserID)
}

func TestConsumer_dispatch_badPayload(t *testing.T) {
	c := &Consumer{logger: zerolog.Nop()}

	called := false
	err := c.dispatch(context.Background(), kafka.Message{Value: []byte("not json")},
		func(ctx context.Context, e RentalEvent) error {
			called = true
			return nil
		})

	// Undecodable payloads are dropped, never handed to the handler.
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestConsumer_dispatch_handlerError(t *testing.T) {
	c := &Consumer{logger: zerolog.Nop()}

	sentinel := errors.New("send failed")
	payload, err := json.Marshal(RentalEvent{RentalID: 1})
	assert.NoError(t, err)

	err = c.dispatch(context.Background(), kafka.Message{Value: payload},
		func(ctx context.Context, e RentalEvent) error {
			return sentinel
		})

	assert.ErrorIs(t, err, sentinel)
}

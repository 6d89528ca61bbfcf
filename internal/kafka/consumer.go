package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// EventHandler processes one decoded rental event.
type EventHandler func(ctx context.Context, event RentalEvent) error

type Consumer struct {
	reader *kafka.Reader
	logger zerolog.Logger
}

// NewConsumer builds a reader for a rental event topic. Notification volume
// is low, so the reader favors delivery latency over batching.
func NewConsumer(brokers []string, groupID, topic string, logger zerolog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			MinBytes:          1,
			MaxBytes:          1 << 20,
			MaxWait:           500 * time.Millisecond,
			CommitInterval:    time.Second,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads until the context is canceled, decoding each message into a
// RentalEvent before handing it to the handler. Payloads that do not decode
// are logged and skipped so a single bad message cannot wedge the group.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.dispatch(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message, handler EventHandler) error {
	var event RentalEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn().Err(err).
			Str("topic", msg.Topic).
			Int64("offset", msg.Offset).
			Msg("skipping undecodable rental event")
		return nil
	}
	return handler(ctx, event)
}

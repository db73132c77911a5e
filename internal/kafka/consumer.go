package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReservationConsumer reads reservation events from one topic within a
// consumer group. Offsets are committed only after the handler succeeds, so
// an event whose handler failed is delivered again after a restart.
type ReservationConsumer struct {
	reader MessageReader
}

func NewConsumer(brokers []string, groupID, topic string) *ReservationConsumer {
	return NewConsumerWithReader(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}))
}

func NewConsumerWithReader(reader MessageReader) *ReservationConsumer {
	return &ReservationConsumer{reader: reader}
}

func (c *ReservationConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume hands every decoded event to handler until ctx ends or a fetch,
// handler or commit fails. Messages that are not valid events are logged,
// committed and skipped.
func (c *ReservationConsumer) Consume(ctx context.Context, handler func(context.Context, ReservationEvent) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		var event ReservationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("skip undecodable message topic=%s offset=%d: %v", msg.Topic, msg.Offset, err)
		} else if err := handler(ctx, event); err != nil {
			return fmt.Errorf("handle event %s: %w", event.EventID, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

// Package kafka adapts the messaging contracts to segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"molliepay/internal/messaging"
	"molliepay/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

// Publisher implements messaging.Publisher using Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a new Kafka publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Publisher{writer: writer}
}

// Publish sends an envelope to Kafka, carrying the correlation id in a
// message header so the consumer side logs join up.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
	}
	if id := correlation.FromContext(ctx); id != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   correlation.KafkaHeaderName,
			Value: []byte(id),
		})
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish message",
			"topic", p.writer.Topic, "key", env.Key, "error", err)
		return err
	}

	slog.DebugContext(ctx, "message published",
		"topic", p.writer.Topic, "key", env.Key, "event_id", env.EventID)
	return nil
}

// Close closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

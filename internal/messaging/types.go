// Package messaging defines the broker-agnostic contracts for the async
// webhook pipeline. The kafka package implements them; the worker chain
// in the webhook package consumes through them.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageHandler processes one decoded message. A non-nil error tells the
// middleware chain to retry or dead-letter it.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Publisher writes envelopes to the broker.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// Worker pulls messages and feeds them to a handler until ctx is done.
type Worker interface {
	Start(ctx context.Context, handler MessageHandler) error
	Close() error
}

// Envelope is the wire frame every published message travels in. Key doubles
// as the partition key so notifications for one order stay ordered.
type Envelope struct {
	EventID   string          `json:"event_id"`
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope marshals payload and stamps the envelope with a fresh event id.
func NewEnvelope(key, msgType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}

	return Envelope{
		EventID:   uuid.New().String(),
		Key:       key,
		Type:      msgType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}

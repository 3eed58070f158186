// Package correlation propagates a per-request id across HTTP, Kafka
// and log records, so one payment flow can be traced end to end.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is the inbound/outbound HTTP header.
const HeaderName = "X-Correlation-ID"

// KafkaHeaderName carries the id across the webhook broker hop.
const KafkaHeaderName = "X-Correlation-ID"

type contextKey struct{}

// FromContext returns the id stored on the context, or "".
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithID stores the id on the context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// NewID mints a fresh id (UUID v4).
func NewID() string {
	return uuid.New().String()
}

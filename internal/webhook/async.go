package webhook

import (
	"context"
	"fmt"

	"molliepay/internal/messaging"
)

// TypeNotification is the envelope type for payment notifications.
const TypeNotification = "payment.webhook"

// AsyncProcessor acknowledges the notification immediately by
// publishing it to Kafka; a consumer worker does the reconciliation.
type AsyncProcessor struct {
	publisher messaging.Publisher
}

func NewAsyncProcessor(publisher messaging.Publisher) *AsyncProcessor {
	return &AsyncProcessor{publisher: publisher}
}

func (p *AsyncProcessor) ProcessNotification(ctx context.Context, n Notification) error {
	envelope, err := messaging.NewEnvelope(n.MollieOrderID, TypeNotification, n)
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}
	return p.publisher.Publish(ctx, envelope)
}

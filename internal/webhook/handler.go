package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"molliepay/internal/messaging"
	"molliepay/internal/service"
)

// NewNotificationHandler is the consumer side of kafka mode: it decodes
// the envelope and runs the same reconciliation the sync processor does.
func NewNotificationHandler(payments *service.PaymentService) messaging.MessageHandler {
	return func(ctx context.Context, key, value []byte) error {
		var env messaging.Envelope
		if err := json.Unmarshal(value, &env); err != nil {
			// Malformed messages never become processable; dropping is
			// the only exit that does not wedge the partition.
			slog.ErrorContext(ctx, "dropping malformed envelope", "key", string(key), "error", err)
			return nil
		}
		if env.Type != TypeNotification {
			slog.WarnContext(ctx, "dropping envelope of unexpected type",
				"type", env.Type, "event_id", env.EventID)
			return nil
		}

		var n Notification
		if err := json.Unmarshal(env.Payload, &n); err != nil {
			slog.ErrorContext(ctx, "dropping malformed notification payload",
				"event_id", env.EventID, "error", err)
			return nil
		}

		if err := payments.HandleWebhook(ctx, n.MollieOrderID); err != nil {
			return fmt.Errorf("handle webhook %s: %w", n.MollieOrderID, err)
		}
		return nil
	}
}

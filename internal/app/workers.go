package app

import (
	"context"
	"log/slog"

	"molliepay/config"
	"molliepay/internal/external/kafka"
	"molliepay/internal/messaging"
	"molliepay/internal/service"
	"molliepay/internal/webhook"
)

// StartWorkers starts the Kafka consumer for webhook notifications.
// Runs in the background and stops when ctx is cancelled.
func StartWorkers(ctx context.Context, cfg config.Config, payments *service.PaymentService) {
	handler := webhook.NewNotificationHandler(payments)

	dlq := kafka.NewDLQPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksDLQTopic)
	handler = messaging.WithRetry(handler, messaging.DefaultRetryConfig())
	handler = messaging.WithDLQ(handler, dlq)
	handler = messaging.WithMetrics(handler, cfg.KafkaWebhooksTopic, cfg.KafkaWebhooksConsumerGroup)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic, cfg.KafkaWebhooksConsumerGroup)
	runner := messaging.NewRunner([]messaging.Worker{consumer}, handler)

	go func() {
		slog.Info("starting webhook consumer",
			"topic", cfg.KafkaWebhooksTopic, "group", cfg.KafkaWebhooksConsumerGroup)
		if err := runner.Start(ctx); err != nil {
			slog.Error("webhook runner failed", "error", err)
		}
	}()
}

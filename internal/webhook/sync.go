package webhook

import (
	"context"

	"molliepay/internal/service"
)

// SyncProcessor reconciles the notification inline, before the webhook
// request is acknowledged.
type SyncProcessor struct {
	payments *service.PaymentService
}

func NewSyncProcessor(payments *service.PaymentService) *SyncProcessor {
	return &SyncProcessor{payments: payments}
}

func (p *SyncProcessor) ProcessNotification(ctx context.Context, n Notification) error {
	return p.payments.HandleWebhook(ctx, n.MollieOrderID)
}

// Package webhook decouples receiving a Mollie notification from
// processing it. Sync mode reconciles inline; kafka mode acknowledges
// immediately and processes through a consumer worker.
package webhook

import "context"

// Notification is everything a Mollie webhook carries: the gateway
// order id from the form-encoded body. Nothing else in the request may
// be trusted; processing re-fetches the order.
type Notification struct {
	MollieOrderID string `json:"mollie_order_id"`
}

// Processor handles an incoming notification.
type Processor interface {
	ProcessNotification(ctx context.Context, n Notification) error
}

package checkout

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the host's authoritative payment state. Closed set;
// the reconciler never produces anything outside it.
type PaymentStatus string

const (
	StatusPendingExternalSystem PaymentStatus = "pending_external_system"
	StatusAuthorized            PaymentStatus = "authorized"
	StatusCaptured              PaymentStatus = "captured"
	StatusCancelled             PaymentStatus = "cancelled"
	StatusRefunded              PaymentStatus = "refunded"
)

// ParsePaymentStatus validates a raw status value, e.g. one read back
// from storage.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch s := PaymentStatus(raw); s {
	case StatusPendingExternalSystem, StatusAuthorized, StatusCaptured, StatusCancelled, StatusRefunded:
		return s, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
}

// Trigger names the operation that caused a reconciliation, recorded
// with every applied status transition for audit.
type Trigger string

const (
	TriggerStart    Trigger = "start"
	TriggerFetch    Trigger = "fetch"
	TriggerWebhook  Trigger = "webhook"
	TriggerRedirect Trigger = "redirect"
	TriggerCancel   Trigger = "cancel"
	TriggerRefund   Trigger = "refund"
	TriggerCapture  Trigger = "capture"
)

// PaymentForm tells the host where to send the shopper to pay.
type PaymentForm struct {
	URL    string `json:"url"`
	Method string `json:"method"`
}

// TransactionUpdate is the provider's report back to the host after a
// reconciliation: the gateway transaction, the amount it authorized,
// the gateway fee, and the derived payment status.
type TransactionUpdate struct {
	TransactionID    string          `json:"transactionId"`
	AmountAuthorized decimal.Decimal `json:"amountAuthorized"`
	Fee              decimal.Decimal `json:"fee"`
	Status           PaymentStatus   `json:"status"`
}

// PaymentOrder is the persisted payment state of one host order. The
// order number is the host's identifier; MollieOrderID correlates it to
// the gateway and gates webhook notifications.
type PaymentOrder struct {
	OrderNumber      string          `json:"orderNumber"`
	OrderRef         string          `json:"orderRef"`
	MollieOrderID    string          `json:"mollieOrderId"`
	TransactionID    string          `json:"transactionId"`
	Status           PaymentStatus   `json:"status"`
	AmountAuthorized decimal.Decimal `json:"amountAuthorized"`
	Currency         string          `json:"currency"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// StatusChange is one applied payment-status transition, published to
// the audit sink.
type StatusChange struct {
	OrderNumber   string        `json:"order_number"`
	MollieOrderID string        `json:"mollie_order_id"`
	From          PaymentStatus `json:"from"`
	To            PaymentStatus `json:"to"`
	Trigger       Trigger       `json:"trigger"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

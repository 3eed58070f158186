// Package service orchestrates payment operations: it owns persistence
// of the gateway correlation, applies reconciliation results, and keeps
// the audit trail.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"molliepay/internal/checkout"
)

// PaymentProvider is the gateway-facing operation set the service
// drives. *provider.Provider satisfies it.
type PaymentProvider interface {
	StartPayment(ctx context.Context, order checkout.OrderView, callbackURL string) (checkout.PaymentForm, string, error)
	FetchPaymentStatus(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error)
	CancelPayment(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error)
	RefundPayment(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error)
	CapturePayment(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error)
	RedirectDestination(ctx context.Context, mollieOrderID string) (string, error)
	ErrorDestination() string
	WebhookUpdate(ctx context.Context, notifiedID, storedID string) (checkout.TransactionUpdate, bool, error)
}

// PaymentService coordinates the repo, the provider and the audit sink.
type PaymentService struct {
	repo     checkout.PaymentOrderRepo
	provider PaymentProvider
	sink     checkout.EventSink

	// publicBaseURL is the externally reachable origin Mollie calls
	// back on, e.g. https://pay.shop.example
	publicBaseURL string
}

func NewPaymentService(repo checkout.PaymentOrderRepo, p PaymentProvider, sink checkout.EventSink, publicBaseURL string) *PaymentService {
	return &PaymentService{
		repo:          repo,
		provider:      p,
		sink:          sink,
		publicBaseURL: publicBaseURL,
	}
}

// CallbackURL is the per-order endpoint Mollie hits for both webhook
// notifications and browser returns.
func (s *PaymentService) CallbackURL(orderNumber string) string {
	return s.publicBaseURL + "/api/v1/payments/" + url.PathEscape(orderNumber) + "/callback"
}

// StartPayment creates the gateway order, persists the correlation and
// returns the checkout form.
func (s *PaymentService) StartPayment(ctx context.Context, order checkout.OrderView) (checkout.PaymentForm, error) {
	form, mollieOrderID, err := s.provider.StartPayment(ctx, order, s.CallbackURL(order.OrderNumber))
	if err != nil {
		return checkout.PaymentForm{}, err
	}

	now := time.Now().UTC()
	err = s.repo.Create(ctx, checkout.PaymentOrder{
		OrderNumber:      order.OrderNumber,
		OrderRef:         order.OrderRef,
		MollieOrderID:    mollieOrderID,
		Status:           checkout.StatusPendingExternalSystem,
		AmountAuthorized: order.TransactionAmount,
		Currency:         order.Currency,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return checkout.PaymentForm{}, fmt.Errorf("persist payment order: %w", err)
	}

	s.record(ctx, checkout.StatusChange{
		OrderNumber:   order.OrderNumber,
		MollieOrderID: mollieOrderID,
		To:            checkout.StatusPendingExternalSystem,
		Trigger:       checkout.TriggerStart,
		OccurredAt:    now,
	})
	return form, nil
}

// GetPayment returns the stored payment state.
func (s *PaymentService) GetPayment(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error) {
	return s.repo.GetByOrderNumber(ctx, orderNumber)
}

// RefreshStatus re-fetches the gateway order and applies the result.
func (s *PaymentService) RefreshStatus(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error) {
	return s.reconcileWith(ctx, orderNumber, checkout.TriggerFetch, s.provider.FetchPaymentStatus)
}

// CancelPayment cancels the gateway order and applies the result.
func (s *PaymentService) CancelPayment(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error) {
	return s.reconcileWith(ctx, orderNumber, checkout.TriggerCancel, s.provider.CancelPayment)
}

// RefundPayment refunds the gateway order and applies the result.
func (s *PaymentService) RefundPayment(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error) {
	return s.reconcileWith(ctx, orderNumber, checkout.TriggerRefund, s.provider.RefundPayment)
}

// CapturePayment captures (ships) the gateway order and applies the result.
func (s *PaymentService) CapturePayment(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error) {
	return s.reconcileWith(ctx, orderNumber, checkout.TriggerCapture, s.provider.CapturePayment)
}

// RedirectDestination resolves where the returning shopper's browser
// should land.
func (s *PaymentService) RedirectDestination(ctx context.Context, orderNumber string) (string, error) {
	stored, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return "", err
	}
	return s.provider.RedirectDestination(ctx, stored.MollieOrderID)
}

// ErrorDestination is where a returning shopper is sent when their
// redirect cannot be resolved.
func (s *PaymentService) ErrorDestination() string {
	return s.provider.ErrorDestination()
}

// HandleWebhook processes an async notification carrying a gateway
// order id. An unknown or mismatched id is acknowledged without any
// update; Mollie retries on non-2xx, so benign cases must not error.
func (s *PaymentService) HandleWebhook(ctx context.Context, mollieOrderID string) error {
	stored, err := s.repo.GetByMollieOrderID(ctx, mollieOrderID)
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			slog.WarnContext(ctx, "webhook for unknown gateway order, acknowledging",
				"mollie_order_id", mollieOrderID)
			return nil
		}
		return err
	}

	update, ok, err := s.provider.WebhookUpdate(ctx, mollieOrderID, stored.MollieOrderID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	// A stray late cancellation notification must not regress an order
	// that already advanced; a webhook-derived Cancelled only applies
	// while the payment is still pending.
	if update.Status == checkout.StatusCancelled && stored.Status != checkout.StatusPendingExternalSystem {
		slog.InfoContext(ctx, "ignoring late cancellation notification",
			"order_number", stored.OrderNumber,
			"stored_status", stored.Status,
		)
		return nil
	}

	return s.apply(ctx, stored, update, checkout.TriggerWebhook)
}

// StatusHistory returns the audit trail of applied transitions.
func (s *PaymentService) StatusHistory(ctx context.Context, orderNumber string) ([]checkout.StatusChange, error) {
	if _, err := s.repo.GetByOrderNumber(ctx, orderNumber); err != nil {
		return nil, err
	}
	return s.sink.ListStatusChanges(ctx, orderNumber)
}

func (s *PaymentService) reconcileWith(
	ctx context.Context,
	orderNumber string,
	trigger checkout.Trigger,
	op func(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error),
) (checkout.PaymentOrder, error) {
	stored, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return checkout.PaymentOrder{}, err
	}

	update, err := op(ctx, stored.MollieOrderID)
	if err != nil {
		return checkout.PaymentOrder{}, err
	}

	if err := s.apply(ctx, stored, update, trigger); err != nil {
		return checkout.PaymentOrder{}, err
	}
	return s.repo.GetByOrderNumber(ctx, orderNumber)
}

// apply persists a reconciliation result. An unchanged status is a
// no-op, reconciliation is idempotent. The stored status is re-read
// inside the transaction: redirect, webhook and host-triggered
// reconciliations can race, and the transition recorded for audit must
// be the one that actually happened.
func (s *PaymentService) apply(ctx context.Context, stored checkout.PaymentOrder, update checkout.TransactionUpdate, trigger checkout.Trigger) error {
	if update.Status == stored.Status {
		return nil
	}

	from := stored.Status
	applied := false
	err := s.repo.InTransaction(ctx, func(repo checkout.TxPaymentOrderRepo) error {
		current, err := repo.GetByOrderNumber(ctx, stored.OrderNumber)
		if err != nil {
			return err
		}
		if current.Status == update.Status {
			return nil
		}
		if err := repo.UpdateStatus(ctx, stored.OrderNumber, update); err != nil {
			return err
		}
		from = current.Status
		applied = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply status update: %w", err)
	}
	if !applied {
		return nil
	}

	slog.InfoContext(ctx, "payment status changed",
		"order_number", stored.OrderNumber,
		"from", from,
		"to", update.Status,
		"trigger", trigger,
	)

	s.record(ctx, checkout.StatusChange{
		OrderNumber:   stored.OrderNumber,
		MollieOrderID: stored.MollieOrderID,
		From:          from,
		To:            update.Status,
		Trigger:       trigger,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

// record writes to the audit sink; a sink failure is logged, never
// propagated into the payment flow.
func (s *PaymentService) record(ctx context.Context, change checkout.StatusChange) {
	if s.sink == nil {
		return
	}
	if err := s.sink.RecordStatusChange(ctx, change); err != nil {
		slog.ErrorContext(ctx, "failed to record status change",
			"order_number", change.OrderNumber, "error", err)
	}
}

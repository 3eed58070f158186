package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"molliepay/internal/checkout"
	"molliepay/internal/mollie"
)

// Provider implements the payment operations against the Mollie Orders
// API. Every operation validates settings first, performs at most one
// gateway mutation, then reconciles a fresh order snapshot. It keeps no
// in-process cache of gateway state.
type Provider struct {
	api      OrdersAPI
	settings Settings
}

func New(api OrdersAPI, settings Settings) *Provider {
	return &Provider{api: api, settings: settings}
}

// StartPayment creates the gateway order and returns the hosted-checkout
// form plus the gateway order id the caller must persist for later
// correlation.
func (p *Provider) StartPayment(ctx context.Context, order checkout.OrderView, callbackURL string) (checkout.PaymentForm, string, error) {
	if err := p.settings.Validate(); err != nil {
		return checkout.PaymentForm{}, "", err
	}

	req := BuildOrderRequest(order, p.settings, callbackURL)
	created, err := p.api.CreateOrder(ctx, req)
	if err != nil {
		return checkout.PaymentForm{}, "", fmt.Errorf("create order: %w", err)
	}

	slog.InfoContext(ctx, "gateway order created",
		"order_number", order.OrderNumber,
		"mollie_order_id", created.ID,
	)

	form := checkout.PaymentForm{
		URL:    created.CheckoutURL(),
		Method: http.MethodGet,
	}
	return form, created.ID, nil
}

// FetchPaymentStatus re-fetches the order and reconciles it.
func (p *Provider) FetchPaymentStatus(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error) {
	if err := p.settings.Validate(); err != nil {
		return checkout.TransactionUpdate{}, err
	}
	return p.reconcileSnapshot(ctx, mollieOrderID)
}

// CancelPayment cancels the gateway order, then reconciles.
func (p *Provider) CancelPayment(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error) {
	if err := p.settings.Validate(); err != nil {
		return checkout.TransactionUpdate{}, err
	}
	if _, err := p.api.CancelOrder(ctx, mollieOrderID); err != nil {
		return checkout.TransactionUpdate{}, fmt.Errorf("cancel order: %w", err)
	}
	return p.reconcileSnapshot(ctx, mollieOrderID)
}

// RefundPayment refunds the whole order, then reconciles. An in-flight
// refund already counts as Refunded.
func (p *Provider) RefundPayment(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error) {
	if err := p.settings.Validate(); err != nil {
		return checkout.TransactionUpdate{}, err
	}
	if _, err := p.api.CreateOrderRefund(ctx, mollieOrderID, mollie.RefundRequest{}); err != nil {
		return checkout.TransactionUpdate{}, fmt.Errorf("create refund: %w", err)
	}
	return p.reconcileSnapshot(ctx, mollieOrderID)
}

// CapturePayment ships the whole order, which captures any authorized
// payment, then reconciles.
func (p *Provider) CapturePayment(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error) {
	if err := p.settings.Validate(); err != nil {
		return checkout.TransactionUpdate{}, err
	}
	if _, err := p.api.CreateShipment(ctx, mollieOrderID, mollie.ShipmentRequest{}); err != nil {
		return checkout.TransactionUpdate{}, fmt.Errorf("create shipment: %w", err)
	}
	return p.reconcileSnapshot(ctx, mollieOrderID)
}

// RedirectDestination resolves the shopper's browser return: all
// payments canceled routes to the cancel URL, anything else continues.
func (p *Provider) RedirectDestination(ctx context.Context, mollieOrderID string) (string, error) {
	if err := p.settings.Validate(); err != nil {
		return "", err
	}
	order, err := p.api.GetOrder(ctx, mollieOrderID, mollie.GetOrderOptions{
		Embed: []string{mollie.EmbedPayments},
	})
	if err != nil {
		return "", fmt.Errorf("get order: %w", err)
	}
	if AllPaymentsCanceled(order) {
		return p.settings.CancelURL, nil
	}
	return p.settings.ContinueURL, nil
}

// ErrorDestination is the page the shopper's browser lands on when the
// return from the hosted checkout cannot be processed. Static, no
// gateway call involved.
func (p *Provider) ErrorDestination() string {
	return p.settings.ErrorURL
}

// WebhookUpdate handles an async notification. The notified id must
// match the stored gateway order id; a mismatch is a benign no-op, not
// an error. The returned bool reports whether an update was produced.
func (p *Provider) WebhookUpdate(ctx context.Context, notifiedID, storedID string) (checkout.TransactionUpdate, bool, error) {
	if err := p.settings.Validate(); err != nil {
		return checkout.TransactionUpdate{}, false, err
	}
	if notifiedID != storedID {
		slog.WarnContext(ctx, "webhook order id mismatch, acknowledging without update",
			"notified_id", notifiedID,
			"stored_id", storedID,
		)
		return checkout.TransactionUpdate{}, false, nil
	}
	update, err := p.reconcileSnapshot(ctx, notifiedID)
	if err != nil {
		return checkout.TransactionUpdate{}, false, err
	}
	return update, true, nil
}

// reconcileSnapshot fetches a fresh order plus its refund list and maps
// them to a transaction update.
func (p *Provider) reconcileSnapshot(ctx context.Context, mollieOrderID string) (checkout.TransactionUpdate, error) {
	order, err := p.api.GetOrder(ctx, mollieOrderID, mollie.GetOrderOptions{
		Embed: []string{mollie.EmbedPayments},
	})
	if err != nil {
		return checkout.TransactionUpdate{}, fmt.Errorf("get order: %w", err)
	}
	refunds, err := p.api.ListOrderRefunds(ctx, mollieOrderID, mollie.ListRefundsOptions{})
	if err != nil {
		return checkout.TransactionUpdate{}, fmt.Errorf("list refunds: %w", err)
	}

	amount, err := order.Amount.Decimal()
	if err != nil {
		slog.WarnContext(ctx, "unparsable order amount", "mollie_order_id", mollieOrderID, "value", order.Amount.Value)
	}

	return checkout.TransactionUpdate{
		TransactionID:    order.ID,
		AmountAuthorized: amount,
		Status:           ReconcilePaymentStatus(order, refunds),
	}, nil
}

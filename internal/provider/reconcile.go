package provider

import (
	"molliepay/internal/checkout"
	"molliepay/internal/mollie"
)

// ReconcilePaymentStatus derives the host payment status from a freshly
// fetched order snapshot plus its refund list. Decision table, first
// match wins:
//
//  1. amountRefunded covers the full amount     -> Refunded
//  2. any refund not in status "failed"         -> Refunded
//  3. status shipping, any line authorized      -> Authorized
//     status shipping, no line authorized       -> Captured
//  4. status paid or completed                  -> Captured
//  5. status canceled or expired                -> Cancelled
//  6. status authorized                         -> Authorized
//  7. anything else (created, unknown)          -> PendingExternalSystem
//
// The function is total and idempotent: it never errors, and an
// unrecognized future status resolves to the pending default instead of
// guessing a terminal state. It holds no history, so callers own the
// monotonicity obligation (e.g. not letting a stray late cancellation
// regress an already-advanced status).
func ReconcilePaymentStatus(order mollie.Order, refunds []mollie.Refund) checkout.PaymentStatus {
	if order.AmountRefunded != nil {
		refunded, errRefunded := order.AmountRefunded.Decimal()
		total, errTotal := order.Amount.Decimal()
		// Unparsable amounts skip this rule; the status rules below
		// still produce a result.
		if errRefunded == nil && errTotal == nil && refunded.GreaterThanOrEqual(total) {
			return checkout.StatusRefunded
		}
	}

	// A refund can be in flight with no amount reflected on the order
	// yet, so the amount check alone under-detects refunds.
	for _, r := range refunds {
		if r.Status != mollie.RefundStatusFailed {
			return checkout.StatusRefunded
		}
	}

	switch order.Status {
	case mollie.OrderStatusShipping:
		// Once shipping, the order status is coarse; per-line statuses
		// keep the authorized-vs-paid granularity. One still-authorized
		// line means capture is incomplete.
		for _, line := range order.Lines {
			if line.Status == mollie.LineStatusAuthorized {
				return checkout.StatusAuthorized
			}
		}
		return checkout.StatusCaptured
	case mollie.OrderStatusPaid, mollie.OrderStatusCompleted:
		return checkout.StatusCaptured
	case mollie.OrderStatusCanceled, mollie.OrderStatusExpired:
		return checkout.StatusCancelled
	case mollie.OrderStatusAuthorized:
		return checkout.StatusAuthorized
	default:
		return checkout.StatusPendingExternalSystem
	}
}

// AllPaymentsCanceled is the coarse payment-level check behind the
// browser-return redirect: true routes the shopper to the cancel
// destination. An order with no embedded payments counts as canceled,
// the shopper left checkout without starting one.
func AllPaymentsCanceled(order mollie.Order) bool {
	for _, p := range order.Embedded.Payments {
		if p.Status != mollie.PaymentStatusCanceled {
			return false
		}
	}
	return true
}

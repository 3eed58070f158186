package checkout

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound      = errors.New("payment order not found")
	ErrOrderAlreadyExists = errors.New("payment order already exists")
)

// PaymentOrderRepo persists the payment state of host orders.
type PaymentOrderRepo interface {
	Create(ctx context.Context, order PaymentOrder) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (PaymentOrder, error)
	GetByMollieOrderID(ctx context.Context, mollieOrderID string) (PaymentOrder, error)
	UpdateStatus(ctx context.Context, orderNumber string, update TransactionUpdate) error
	InTransaction(ctx context.Context, fn func(repo TxPaymentOrderRepo) error) error
}

// TxPaymentOrderRepo is the operation set available inside a
// transaction started with InTransaction.
type TxPaymentOrderRepo interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (PaymentOrder, error)
	UpdateStatus(ctx context.Context, orderNumber string, update TransactionUpdate) error
}

// EventSink receives applied status transitions for audit and serves
// them back for inspection. Sink failures must not fail the payment
// operation that produced the transition.
type EventSink interface {
	RecordStatusChange(ctx context.Context, change StatusChange) error
	ListStatusChanges(ctx context.Context, orderNumber string) ([]StatusChange, error)
}

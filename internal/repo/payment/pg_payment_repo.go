// Package payment_repo persists the payment state of host orders.
package payment_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"molliepay/internal/checkout"
	"molliepay/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgPaymentRepo is the main repository
type PgPaymentRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgPaymentRepo(pg *postgres.Postgres) checkout.PaymentOrderRepo {
	return &PgPaymentRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgPaymentRepo) InTransaction(ctx context.Context, fn func(repo checkout.TxPaymentOrderRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.pg.Builder}
		return fn(txRepo)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var columns = []string{
	"order_number", "order_ref", "mollie_order_id", "transaction_id",
	"status", "amount_authorized", "currency", "created_at", "updated_at",
}

func (r *repo) Create(ctx context.Context, order checkout.PaymentOrder) error {
	query, args, err := r.builder.Insert("payment_orders").
		Columns(columns...).
		Values(
			order.OrderNumber, order.OrderRef, order.MollieOrderID, order.TransactionID,
			string(order.Status), order.AmountAuthorized, order.Currency, order.CreatedAt, order.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "payment_orders_pkey") {
			return checkout.ErrOrderAlreadyExists
		}
		return fmt.Errorf("create payment order: %w", err)
	}
	return nil
}

func (r *repo) GetByOrderNumber(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error) {
	return r.getBy(ctx, squirrel.Eq{"order_number": orderNumber})
}

func (r *repo) GetByMollieOrderID(ctx context.Context, mollieOrderID string) (checkout.PaymentOrder, error) {
	return r.getBy(ctx, squirrel.Eq{"mollie_order_id": mollieOrderID})
}

func (r *repo) getBy(ctx context.Context, cond squirrel.Eq) (checkout.PaymentOrder, error) {
	query, args, err := r.builder.Select(columns...).
		From("payment_orders").
		Where(cond).
		ToSql()
	if err != nil {
		return checkout.PaymentOrder{}, fmt.Errorf("build select query: %w", err)
	}

	row := r.db.QueryRow(ctx, query, args...)
	return parsePaymentOrderRow(row)
}

func (r *repo) UpdateStatus(ctx context.Context, orderNumber string, update checkout.TransactionUpdate) error {
	query, args, err := r.builder.Update("payment_orders").
		Set("transaction_id", update.TransactionID).
		Set("status", string(update.Status)).
		Set("amount_authorized", update.AmountAuthorized).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_number": orderNumber}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return checkout.ErrOrderNotFound
	}
	return nil
}

func parsePaymentOrderRow(row pgx.Row) (checkout.PaymentOrder, error) {
	var o checkout.PaymentOrder
	var rawStatus string
	err := row.Scan(
		&o.OrderNumber, &o.OrderRef, &o.MollieOrderID, &o.TransactionID,
		&rawStatus, &o.AmountAuthorized, &o.Currency, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkout.PaymentOrder{}, checkout.ErrOrderNotFound
		}
		return checkout.PaymentOrder{}, fmt.Errorf("scan payment order row: %w", err)
	}

	status, err := checkout.ParsePaymentStatus(rawStatus)
	if err != nil {
		return checkout.PaymentOrder{}, fmt.Errorf("invalid status in database: %w", err)
	}
	o.Status = status

	return o, nil
}

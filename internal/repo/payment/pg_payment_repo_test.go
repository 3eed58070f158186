package payment_repo

import (
	"context"
	"testing"
	"time"

	"molliepay/internal/checkout"

	"github.com/Masterminds/squirrel"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, mock
}

func TestCreate(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	order := checkout.PaymentOrder{
		OrderNumber:      "ORDER-0042",
		OrderRef:         "ref-7f3a",
		MollieOrderID:    "ord_kEn1PlbGa",
		Status:           checkout.StatusPendingExternalSystem,
		AmountAuthorized: decimal.RequireFromString("24.20"),
		Currency:         "EUR",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	t.Run("should insert a new payment order", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO payment_orders`).
			WithArgs(
				order.OrderNumber, order.OrderRef, order.MollieOrderID, order.TransactionID,
				string(order.Status), order.AmountAuthorized, order.Currency, order.CreatedAt, order.UpdatedAt,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, order)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByOrderNumber(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("should return a stored payment order", func(t *testing.T) {
		rows := mock.NewRows([]string{
			"order_number", "order_ref", "mollie_order_id", "transaction_id",
			"status", "amount_authorized", "currency", "created_at", "updated_at",
		}).AddRow(
			"ORDER-0042", "ref-7f3a", "ord_kEn1PlbGa", "ord_kEn1PlbGa",
			"authorized", decimal.RequireFromString("24.20"), "EUR", now, now,
		)

		mock.ExpectQuery(`SELECT .+ FROM payment_orders WHERE order_number = \$1`).
			WithArgs("ORDER-0042").
			WillReturnRows(rows)

		result, err := repo.GetByOrderNumber(ctx, "ORDER-0042")

		require.NoError(t, err)
		assert.Equal(t, "ord_kEn1PlbGa", result.MollieOrderID)
		assert.Equal(t, checkout.StatusAuthorized, result.Status)
		assert.True(t, result.AmountAuthorized.Equal(decimal.RequireFromString("24.20")))
	})

	t.Run("should map no rows to ErrOrderNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM payment_orders WHERE order_number = \$1`).
			WithArgs("ORDER-MISSING").
			WillReturnRows(mock.NewRows([]string{
				"order_number", "order_ref", "mollie_order_id", "transaction_id",
				"status", "amount_authorized", "currency", "created_at", "updated_at",
			}))

		_, err := repo.GetByOrderNumber(ctx, "ORDER-MISSING")

		assert.ErrorIs(t, err, checkout.ErrOrderNotFound)
	})

	t.Run("should reject an unknown status value", func(t *testing.T) {
		rows := mock.NewRows([]string{
			"order_number", "order_ref", "mollie_order_id", "transaction_id",
			"status", "amount_authorized", "currency", "created_at", "updated_at",
		}).AddRow(
			"ORDER-0042", "ref-7f3a", "ord_kEn1PlbGa", "",
			"half-paid", decimal.Zero, "EUR", now, now,
		)

		mock.ExpectQuery(`SELECT .+ FROM payment_orders WHERE order_number = \$1`).
			WithArgs("ORDER-0042").
			WillReturnRows(rows)

		_, err := repo.GetByOrderNumber(ctx, "ORDER-0042")

		assert.ErrorContains(t, err, "invalid status in database")
	})
}

func TestGetByMollieOrderID(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	rows := mock.NewRows([]string{
		"order_number", "order_ref", "mollie_order_id", "transaction_id",
		"status", "amount_authorized", "currency", "created_at", "updated_at",
	}).AddRow(
		"ORDER-0042", "ref-7f3a", "ord_kEn1PlbGa", "ord_kEn1PlbGa",
		"captured", decimal.RequireFromString("24.20"), "EUR", now, now,
	)

	mock.ExpectQuery(`SELECT .+ FROM payment_orders WHERE mollie_order_id = \$1`).
		WithArgs("ord_kEn1PlbGa").
		WillReturnRows(rows)

	result, err := repo.GetByMollieOrderID(ctx, "ord_kEn1PlbGa")

	require.NoError(t, err)
	assert.Equal(t, "ORDER-0042", result.OrderNumber)
	assert.Equal(t, checkout.StatusCaptured, result.Status)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	update := checkout.TransactionUpdate{
		TransactionID:    "ord_kEn1PlbGa",
		AmountAuthorized: decimal.RequireFromString("24.20"),
		Status:           checkout.StatusCaptured,
	}

	t.Run("should update the stored status", func(t *testing.T) {
		mock.ExpectExec(`UPDATE payment_orders SET`).
			WithArgs(update.TransactionID, string(update.Status), update.AmountAuthorized, "ORDER-0042").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(ctx, "ORDER-0042", update)

		require.NoError(t, err)
	})

	t.Run("should map zero affected rows to ErrOrderNotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE payment_orders SET`).
			WithArgs(update.TransactionID, string(update.Status), update.AmountAuthorized, "ORDER-MISSING").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, "ORDER-MISSING", update)

		assert.ErrorIs(t, err, checkout.ErrOrderNotFound)
	})
}

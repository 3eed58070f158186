package provider

import (
	"context"

	"molliepay/internal/mollie"
)

//go:generate mockgen -source=port.go -destination=mock_port.go -package=provider

// OrdersAPI is the slice of the Mollie Orders API the provider uses.
// *mollie.Client satisfies it.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, req mollie.CreateOrderRequest) (mollie.Order, error)
	GetOrder(ctx context.Context, orderID string, opts mollie.GetOrderOptions) (mollie.Order, error)
	CancelOrder(ctx context.Context, orderID string) (mollie.Order, error)
	CreateOrderRefund(ctx context.Context, orderID string, req mollie.RefundRequest) (mollie.Refund, error)
	ListOrderRefunds(ctx context.Context, orderID string, opts mollie.ListRefundsOptions) ([]mollie.Refund, error)
	CreateShipment(ctx context.Context, orderID string, req mollie.ShipmentRequest) (mollie.Shipment, error)
}

package provider

import (
	"context"
	"errors"
	"testing"

	"molliepay/internal/checkout"
	"molliepay/internal/mollie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProvider_StartPayment(t *testing.T) {
	t.Run("creates the gateway order and returns the checkout form", func(t *testing.T) {
		// given
		ctrl := gomock.NewController(t)
		api := NewMockOrdersAPI(ctrl)

		api.EXPECT().
			CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req mollie.CreateOrderRequest) (mollie.Order, error) {
				assert.Equal(t, "ORDER-0042", req.OrderNumber)
				assert.Equal(t, callbackURL, req.WebhookURL)
				return mollie.Order{
					ID:     "ord_kEn1PlbGa",
					Status: mollie.OrderStatusCreated,
					Links: map[string]mollie.Link{
						"checkout": {Href: "https://www.mollie.com/checkout/order/ord_kEn1PlbGa"},
					},
				}, nil
			})

		p := New(api, validSettings())

		// when
		form, mollieOrderID, err := p.StartPayment(context.Background(), checkout.OrderView{
			OrderNumber:       "ORDER-0042",
			Currency:          "EUR",
			TransactionAmount: dec("24.20"),
		}, callbackURL)

		// then
		require.NoError(t, err)
		assert.Equal(t, "ord_kEn1PlbGa", mollieOrderID)
		assert.Equal(t, "https://www.mollie.com/checkout/order/ord_kEn1PlbGa", form.URL)
		assert.Equal(t, "GET", form.Method)
	})

	t.Run("missing setting fails before any gateway call", func(t *testing.T) {
		// given
		ctrl := gomock.NewController(t)
		api := NewMockOrdersAPI(ctrl) // no expectations: no call allowed

		settings := validSettings()
		settings.CancelURL = ""
		p := New(api, settings)

		// when
		_, _, err := p.StartPayment(context.Background(), checkout.OrderView{}, callbackURL)

		// then
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "cancel_url", cfgErr.Setting)
	})

	t.Run("gateway failure propagates", func(t *testing.T) {
		// given
		ctrl := gomock.NewController(t)
		api := NewMockOrdersAPI(ctrl)
		api.EXPECT().
			CreateOrder(gomock.Any(), gomock.Any()).
			Return(mollie.Order{}, errors.New("connection refused"))

		p := New(api, validSettings())

		// when
		_, _, err := p.StartPayment(context.Background(), checkout.OrderView{Currency: "EUR"}, callbackURL)

		// then
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestProvider_FetchPaymentStatus(t *testing.T) {
	// given
	ctrl := gomock.NewController(t)
	api := NewMockOrdersAPI(ctrl)

	api.EXPECT().
		GetOrder(gomock.Any(), "ord_kEn1PlbGa", mollie.GetOrderOptions{Embed: []string{mollie.EmbedPayments}}).
		Return(mollie.Order{
			ID:     "ord_kEn1PlbGa",
			Status: mollie.OrderStatusPaid,
			Amount: amount("24.20"),
		}, nil)
	api.EXPECT().
		ListOrderRefunds(gomock.Any(), "ord_kEn1PlbGa", mollie.ListRefundsOptions{}).
		Return(nil, nil)

	p := New(api, validSettings())

	// when
	update, err := p.FetchPaymentStatus(context.Background(), "ord_kEn1PlbGa")

	// then
	require.NoError(t, err)
	assert.Equal(t, "ord_kEn1PlbGa", update.TransactionID)
	assert.Equal(t, checkout.StatusCaptured, update.Status)
	assert.True(t, update.AmountAuthorized.Equal(dec("24.20")))
}

func TestProvider_CancelPayment(t *testing.T) {
	// given
	ctrl := gomock.NewController(t)
	api := NewMockOrdersAPI(ctrl)

	gomock.InOrder(
		api.EXPECT().
			CancelOrder(gomock.Any(), "ord_kEn1PlbGa").
			Return(mollie.Order{ID: "ord_kEn1PlbGa", Status: mollie.OrderStatusCanceled}, nil),
		api.EXPECT().
			GetOrder(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(mollie.Order{ID: "ord_kEn1PlbGa", Status: mollie.OrderStatusCanceled, Amount: amount("24.20")}, nil),
		api.EXPECT().
			ListOrderRefunds(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(nil, nil),
	)

	p := New(api, validSettings())

	// when
	update, err := p.CancelPayment(context.Background(), "ord_kEn1PlbGa")

	// then
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusCancelled, update.Status)
}

func TestProvider_RefundPayment(t *testing.T) {
	// given: the refund is still pending when the snapshot is taken
	ctrl := gomock.NewController(t)
	api := NewMockOrdersAPI(ctrl)

	gomock.InOrder(
		api.EXPECT().
			CreateOrderRefund(gomock.Any(), "ord_kEn1PlbGa", mollie.RefundRequest{}).
			Return(mollie.Refund{ID: "re_4qqhO89gsT", Status: "pending"}, nil),
		api.EXPECT().
			GetOrder(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(mollie.Order{ID: "ord_kEn1PlbGa", Status: mollie.OrderStatusPaid, Amount: amount("24.20")}, nil),
		api.EXPECT().
			ListOrderRefunds(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return([]mollie.Refund{{ID: "re_4qqhO89gsT", Status: "pending"}}, nil),
	)

	p := New(api, validSettings())

	// when
	update, err := p.RefundPayment(context.Background(), "ord_kEn1PlbGa")

	// then
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusRefunded, update.Status)
}

func TestProvider_CapturePayment(t *testing.T) {
	// given
	ctrl := gomock.NewController(t)
	api := NewMockOrdersAPI(ctrl)

	gomock.InOrder(
		api.EXPECT().
			CreateShipment(gomock.Any(), "ord_kEn1PlbGa", mollie.ShipmentRequest{}).
			Return(mollie.Shipment{ID: "shp_3wmsgCJN4U"}, nil),
		api.EXPECT().
			GetOrder(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(mollie.Order{
				ID:     "ord_kEn1PlbGa",
				Status: mollie.OrderStatusShipping,
				Amount: amount("24.20"),
				Lines:  []mollie.OrderLine{{Status: mollie.LineStatusCompleted}},
			}, nil),
		api.EXPECT().
			ListOrderRefunds(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(nil, nil),
	)

	p := New(api, validSettings())

	// when
	update, err := p.CapturePayment(context.Background(), "ord_kEn1PlbGa")

	// then
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusCaptured, update.Status)
}

func TestProvider_RedirectDestination(t *testing.T) {
	tests := []struct {
		name     string
		payments []mollie.Payment
		want     string
	}{
		{
			name:     "live payment continues",
			payments: []mollie.Payment{{Status: mollie.PaymentStatusPaid}},
			want:     "https://shop.example/continue",
		},
		{
			name:     "all payments canceled routes to cancel",
			payments: []mollie.Payment{{Status: mollie.PaymentStatusCanceled}},
			want:     "https://shop.example/cancel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			ctrl := gomock.NewController(t)
			api := NewMockOrdersAPI(ctrl)
			api.EXPECT().
				GetOrder(gomock.Any(), "ord_kEn1PlbGa", mollie.GetOrderOptions{Embed: []string{mollie.EmbedPayments}}).
				Return(mollie.Order{
					ID:       "ord_kEn1PlbGa",
					Embedded: mollie.OrderEmbed{Payments: tt.payments},
				}, nil)

			p := New(api, validSettings())

			// when
			dest, err := p.RedirectDestination(context.Background(), "ord_kEn1PlbGa")

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.want, dest)
		})
	}
}

func TestProvider_ErrorDestination(t *testing.T) {
	p := New(nil, validSettings())

	assert.Equal(t, "https://shop.example/error", p.ErrorDestination())
}

func TestProvider_WebhookUpdate(t *testing.T) {
	t.Run("matching id reconciles", func(t *testing.T) {
		// given
		ctrl := gomock.NewController(t)
		api := NewMockOrdersAPI(ctrl)
		api.EXPECT().
			GetOrder(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(mollie.Order{ID: "ord_kEn1PlbGa", Status: mollie.OrderStatusAuthorized, Amount: amount("24.20")}, nil)
		api.EXPECT().
			ListOrderRefunds(gomock.Any(), "ord_kEn1PlbGa", gomock.Any()).
			Return(nil, nil)

		p := New(api, validSettings())

		// when
		update, ok, err := p.WebhookUpdate(context.Background(), "ord_kEn1PlbGa", "ord_kEn1PlbGa")

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, checkout.StatusAuthorized, update.Status)
	})

	t.Run("mismatched id is a benign no-op", func(t *testing.T) {
		// given: no gateway call allowed
		ctrl := gomock.NewController(t)
		api := NewMockOrdersAPI(ctrl)

		p := New(api, validSettings())

		// when
		_, ok, err := p.WebhookUpdate(context.Background(), "ord_other", "ord_kEn1PlbGa")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

package provider

import (
	"testing"

	"molliepay/internal/checkout"
	"molliepay/internal/mollie"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func price(withoutTax, tax, withTax string) checkout.Price {
	return checkout.Price{WithoutTax: dec(withoutTax), Tax: dec(tax), WithTax: dec(withTax)}
}

func validSettings() Settings {
	return Settings{
		ContinueURL: "https://shop.example/continue",
		CancelURL:   "https://shop.example/cancel",
		ErrorURL:    "https://shop.example/error",
		TestAPIKey:  "test_key",
		TestMode:    true,
	}
}

const callbackURL = "https://shop.example/callback/ORDER-0042"

func TestBuildOrderRequest_LineMapping(t *testing.T) {
	// given: 2 x 10.00 + 21% VAT
	order := checkout.OrderView{
		OrderNumber: "ORDER-0042",
		OrderRef:    "ref-7f3a",
		Currency:    "eur",
		Lines: []checkout.LineView{{
			Sku:        "SKU-1",
			Name:       "Desk lamp",
			Quantity:   2,
			UnitPrice:  price("8.26", "1.74", "10.00"),
			TaxRate:    dec("0.21"),
			TotalPrice: price("20.00", "4.20", "24.20"),
		}},
		TransactionAmount: dec("24.20"),
	}

	// when
	req := BuildOrderRequest(order, validSettings(), callbackURL)

	// then
	assert.Equal(t, mollie.Amount{Currency: "EUR", Value: "24.20"}, req.Amount)
	assert.Equal(t, "ORDER-0042", req.OrderNumber)
	assert.Equal(t, "ref-7f3a", req.Metadata)
	assert.Equal(t, callbackURL+"?redirect=true", req.RedirectURL)
	assert.Equal(t, callbackURL, req.WebhookURL)
	assert.Equal(t, "en_US", req.Locale)

	require.Len(t, req.Lines, 1)
	line := req.Lines[0]
	assert.Equal(t, mollie.LineTypePhysical, line.Type)
	assert.Equal(t, "SKU-1", line.Sku)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "10.00", line.UnitPrice.Value)
	assert.Equal(t, "21.00", line.VatRate)
	assert.Equal(t, "4.20", line.VatAmount.Value)
	assert.Equal(t, "24.20", line.TotalAmount.Value)
	assert.Nil(t, line.DiscountAmount)
}

func TestBuildOrderRequest_LineAdjustments(t *testing.T) {
	base := checkout.LineView{
		Sku:       "SKU-1",
		Name:      "Desk lamp",
		Quantity:  1,
		UnitPrice: price("8.26", "1.74", "10.00"),
		TaxRate:   dec("0.21"),
	}

	t.Run("negative per-line adjustment becomes a discount amount", func(t *testing.T) {
		line := base
		line.TotalPrice = price("6.61", "1.39", "8.00")
		line.TotalAdjustment = price("-1.65", "-0.35", "-2.00")
		order := checkout.OrderView{Currency: "EUR", Lines: []checkout.LineView{line}, TransactionAmount: dec("8.00")}

		req := BuildOrderRequest(order, validSettings(), callbackURL)

		require.NotNil(t, req.Lines[0].DiscountAmount)
		assert.Equal(t, "2.00", req.Lines[0].DiscountAmount.Value)
		assert.Equal(t, "8.00", req.Lines[0].TotalAmount.Value)
	})

	t.Run("positive per-line adjustment carries no discount amount", func(t *testing.T) {
		line := base
		line.TotalPrice = price("9.92", "2.08", "12.00")
		line.TotalAdjustment = price("1.66", "0.34", "2.00")
		order := checkout.OrderView{Currency: "EUR", Lines: []checkout.LineView{line}, TransactionAmount: dec("12.00")}

		req := BuildOrderRequest(order, validSettings(), callbackURL)

		assert.Nil(t, req.Lines[0].DiscountAmount)
		assert.Equal(t, "12.00", req.Lines[0].TotalAmount.Value)
	})
}

func TestBuildOrderRequest_SubtotalAndTotalAdjustments(t *testing.T) {
	// given
	order := checkout.OrderView{
		Currency: "EUR",
		SubtotalAdjustments: []checkout.PriceAdjustment{
			{Name: "Summer sale", Price: price("-8.26", "-1.74", "-10.00")},
			{Name: "Handling", Price: price("4.13", "0.87", "5.00")},
		},
		TotalAdjustments: []checkout.PriceAdjustment{
			{Name: "Loyalty", Price: price("-1.65", "-0.35", "-2.00")},
		},
		TransactionAmount: dec("-7.00"),
	}

	// when
	req := BuildOrderRequest(order, validSettings(), callbackURL)

	// then
	require.Len(t, req.Lines, 3)

	discount := req.Lines[0]
	assert.Equal(t, mollie.LineTypeDiscount, discount.Type)
	assert.Equal(t, "DISCOUNT", discount.Sku)
	assert.Equal(t, "Subtotal Discount - Summer sale", discount.Name)
	assert.Equal(t, "21.07", discount.VatRate)
	assert.Equal(t, "-10.00", discount.TotalAmount.Value)

	fee := req.Lines[1]
	assert.Equal(t, mollie.LineTypeSurcharge, fee.Type)
	assert.Equal(t, "SURCHARGE", fee.Sku)
	assert.Equal(t, "Subtotal Fee - Handling", fee.Name)

	total := req.Lines[2]
	assert.Equal(t, "Total Discount - Loyalty", total.Name)
	assert.Equal(t, "DISCOUNT", total.Sku)
	assert.Equal(t, mollie.LineTypeDiscount, total.Type)
}

func TestBuildOrderRequest_ZeroTaxExclusiveAdjustment(t *testing.T) {
	order := checkout.OrderView{
		Currency: "EUR",
		SubtotalAdjustments: []checkout.PriceAdjustment{
			{Name: "Rounding", Price: price("0.00", "0.00", "0.00")},
		},
	}

	req := BuildOrderRequest(order, validSettings(), callbackURL)

	require.Len(t, req.Lines, 1)
	assert.Equal(t, "0.00", req.Lines[0].VatRate)
}

func TestBuildOrderRequest_FeeLines(t *testing.T) {
	t.Run("payment and shipping fees get fallback skus", func(t *testing.T) {
		order := checkout.OrderView{
			Currency: "EUR",
			PaymentMethod: checkout.FeeView{
				Name:    "Credit card",
				Fee:     price("1.65", "0.35", "2.00"),
				TaxRate: dec("0.21"),
			},
			ShippingMethod: &checkout.FeeView{
				Name:    "Standard shipping",
				Fee:     price("4.13", "0.87", "5.00"),
				TaxRate: dec("0.21"),
			},
			TransactionAmount: dec("7.00"),
		}

		req := BuildOrderRequest(order, validSettings(), callbackURL)

		require.Len(t, req.Lines, 2)
		assert.Equal(t, mollie.LineTypeSurcharge, req.Lines[0].Type)
		assert.Equal(t, "PF001", req.Lines[0].Sku)
		assert.Equal(t, "21.00", req.Lines[0].VatRate)
		assert.Equal(t, mollie.LineTypeShippingFee, req.Lines[1].Type)
		assert.Equal(t, "SF001", req.Lines[1].Sku)
	})

	t.Run("zero fees produce no lines", func(t *testing.T) {
		order := checkout.OrderView{
			Currency:       "EUR",
			PaymentMethod:  checkout.FeeView{Name: "Invoice"},
			ShippingMethod: &checkout.FeeView{Name: "Pickup"},
		}

		req := BuildOrderRequest(order, validSettings(), callbackURL)

		assert.Empty(t, req.Lines)
	})
}

func TestBuildOrderRequest_TransactionAdjustments(t *testing.T) {
	// given: gift cards first, then the rest, zero VAT throughout
	order := checkout.OrderView{
		Currency: "EUR",
		TransactionAdjustments: []checkout.AmountAdjustment{
			{Kind: checkout.AdjustmentDiscount, Name: "Price match", Amount: dec("-3.00")},
			{Kind: checkout.AdjustmentGiftCard, Name: "GIFT-123", Amount: dec("-25.00")},
			{Kind: checkout.AdjustmentSurcharge, Name: "COD fee", Amount: dec("1.50")},
		},
		TransactionAmount: dec("-26.50"),
	}

	// when
	req := BuildOrderRequest(order, validSettings(), callbackURL)

	// then
	require.Len(t, req.Lines, 3)

	gift := req.Lines[0]
	assert.Equal(t, mollie.LineTypeGiftCard, gift.Type)
	assert.Equal(t, "GIFT_CARD", gift.Sku)
	assert.Equal(t, "Gift Card - GIFT-123", gift.Name)
	assert.Equal(t, "-25.00", gift.TotalAmount.Value)
	assert.Equal(t, "0.00", gift.VatRate)
	assert.Equal(t, "0.00", gift.VatAmount.Value)

	assert.Equal(t, mollie.LineTypeDiscount, req.Lines[1].Type)
	assert.Equal(t, "DISCOUNT", req.Lines[1].Sku)
	assert.Equal(t, "Transaction Discount - Price match", req.Lines[1].Name)
	assert.Equal(t, "0.00", req.Lines[1].VatRate)
	assert.Equal(t, mollie.LineTypeSurcharge, req.Lines[2].Type)
	assert.Equal(t, "SURCHARGE", req.Lines[2].Sku)
	assert.Equal(t, "Transaction Fee - COD fee", req.Lines[2].Name)
	assert.Equal(t, "1.50", req.Lines[2].TotalAmount.Value)
}

func TestBuildOrderRequest_PropertyAliases(t *testing.T) {
	// given
	settings := validSettings()
	settings.BillingAddressLine1Alias = "billing_street"
	settings.BillingAddressCityAlias = "billing_city"
	settings.BillingAddressStateAlias = "billing_state"
	settings.BillingAddressZipCodeAlias = "billing_zip"
	settings.OrderLineTypeAlias = "mollie_type"
	settings.OrderLineCategoryAlias = "mollie_category"

	order := checkout.OrderView{
		Currency:          "EUR",
		CustomerFirstName: "Ada",
		CustomerLastName:  "Lovelace",
		CustomerEmail:     "ada@example.com",
		CountryCode:       "NL",
		Properties: map[string]string{
			"billing_street": "Keizersgracht 126",
			"billing_city":   "Amsterdam",
			"billing_state":  "Noord-Holland",
		},
		Lines: []checkout.LineView{{
			Name:       "E-book",
			Quantity:   1,
			UnitPrice:  price("9.17", "1.93", "11.10"),
			TaxRate:    dec("0.21"),
			TotalPrice: price("9.17", "1.93", "11.10"),
			Properties: map[string]string{
				"mollie_type":     mollie.LineTypeDigital,
				"mollie_category": "eco",
			},
		}},
		TransactionAmount: dec("11.10"),
	}

	// when
	req := BuildOrderRequest(order, settings, callbackURL)

	// then
	assert.Equal(t, "Ada", req.BillingAddress.GivenName)
	assert.Equal(t, "Lovelace", req.BillingAddress.FamilyName)
	assert.Equal(t, "Keizersgracht 126", req.BillingAddress.StreetAndNumber)
	assert.Equal(t, "Amsterdam", req.BillingAddress.City)
	assert.Equal(t, "Noord-Holland", req.BillingAddress.Region)
	// missing alias key yields an empty field, never an error
	assert.Empty(t, req.BillingAddress.PostalCode)

	assert.Equal(t, mollie.LineTypeDigital, req.Lines[0].Type)
	assert.Equal(t, "eco", req.Lines[0].Category)
}

func TestBuildOrderRequest_PaymentMethodFilter(t *testing.T) {
	tests := []struct {
		name        string
		methods     []string
		wantMethod  string
		wantMethods []string
	}{
		{name: "empty means unrestricted"},
		{name: "single entry uses method", methods: []string{"ideal"}, wantMethod: "ideal"},
		{name: "multiple entries use methods", methods: []string{"ideal", "creditcard"}, wantMethods: []string{"ideal", "creditcard"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			settings.PaymentMethods = tt.methods

			req := BuildOrderRequest(checkout.OrderView{Currency: "EUR"}, settings, callbackURL)

			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantMethods, req.Methods)
		})
	}
}

// The declared top-level amount must equal the sum of every generated
// line's total, or the gateway rejects the order.
func TestBuildOrderRequest_AmountConsistency(t *testing.T) {
	order := checkout.OrderView{
		Currency: "EUR",
		Lines: []checkout.LineView{
			{
				Name: "Desk lamp", Quantity: 2,
				UnitPrice:  price("8.26", "1.74", "10.00"),
				TaxRate:    dec("0.21"),
				TotalPrice: price("16.52", "3.48", "20.00"),
			},
			{
				Name: "Chair", Quantity: 1,
				UnitPrice:       price("41.32", "8.68", "50.00"),
				TaxRate:         dec("0.21"),
				TotalPrice:      price("37.19", "7.81", "45.00"),
				TotalAdjustment: price("-4.13", "-0.87", "-5.00"),
			},
		},
		SubtotalAdjustments: []checkout.PriceAdjustment{
			{Name: "Summer sale", Price: price("-8.26", "-1.74", "-10.00")},
		},
		PaymentMethod: checkout.FeeView{
			Name: "Credit card", Fee: price("1.65", "0.35", "2.00"), TaxRate: dec("0.21"),
		},
		ShippingMethod: &checkout.FeeView{
			Name: "Standard", Fee: price("4.13", "0.87", "5.00"), TaxRate: dec("0.21"),
		},
		TotalAdjustments: []checkout.PriceAdjustment{
			{Name: "Loyalty", Price: price("-1.65", "-0.35", "-2.00")},
		},
		TransactionAdjustments: []checkout.AmountAdjustment{
			{Kind: checkout.AdjustmentGiftCard, Name: "GIFT-123", Amount: dec("-15.00")},
			{Kind: checkout.AdjustmentSurcharge, Name: "COD fee", Amount: dec("1.00")},
		},
		TransactionAmount: dec("46.00"),
	}

	req := BuildOrderRequest(order, validSettings(), callbackURL)

	sum := decimal.Zero
	for _, line := range req.Lines {
		v, err := line.TotalAmount.Decimal()
		require.NoError(t, err)
		sum = sum.Add(v)
	}
	assert.Equal(t, req.Amount.Value, sum.StringFixed(2))
}

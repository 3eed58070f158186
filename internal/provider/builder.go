// Package provider maps host orders to Mollie order requests and maps
// Mollie order snapshots back to host payment statuses.
package provider

import (
	"strings"

	"molliepay/internal/checkout"
	"molliepay/internal/mollie"

	"github.com/shopspring/decimal"
)

const (
	fallbackPaymentFeeSku  = "PF001"
	fallbackShippingFeeSku = "SF001"

	// Fixed skus for generated adjustment lines, which have no host sku
	// of their own.
	discountSku  = "DISCOUNT"
	surchargeSku = "SURCHARGE"
	giftCardSku  = "GIFT_CARD"

	// Marker query parameter that distinguishes the shopper's browser
	// return from Mollie's async webhook notification. Both hit the
	// same callback endpoint.
	RedirectMarker = "redirect"
)

var oneHundred = decimal.NewFromInt(100)

// BuildOrderRequest turns a host order into an amount-consistent Mollie
// order-creation payload: the top-level amount equals the sum of every
// generated line's total. Pure, no I/O; settings are assumed validated.
func BuildOrderRequest(order checkout.OrderView, settings Settings, callbackURL string) mollie.CreateOrderRequest {
	currency := strings.ToUpper(order.Currency)

	lines := make([]mollie.OrderLineRequest, 0, len(order.Lines)+4)
	for _, l := range order.Lines {
		lines = append(lines, buildOrderLine(l, currency, settings))
	}
	lines = append(lines, adjustmentLines("Subtotal", order.SubtotalAdjustments, currency)...)

	if order.PaymentMethod.Fee.WithTax.IsPositive() {
		lines = append(lines, feeLine(order.PaymentMethod, mollie.LineTypeSurcharge, fallbackPaymentFeeSku, currency))
	}
	if order.ShippingMethod != nil && order.ShippingMethod.Fee.WithTax.IsPositive() {
		lines = append(lines, feeLine(*order.ShippingMethod, mollie.LineTypeShippingFee, fallbackShippingFeeSku, currency))
	}

	lines = append(lines, adjustmentLines("Total", order.TotalAdjustments, currency)...)

	for _, a := range order.TransactionAdjustments {
		if a.Kind == checkout.AdjustmentGiftCard {
			lines = append(lines, amountAdjustmentLine(a, currency))
		}
	}
	for _, a := range order.TransactionAdjustments {
		if a.Kind != checkout.AdjustmentGiftCard {
			lines = append(lines, amountAdjustmentLine(a, currency))
		}
	}

	req := mollie.CreateOrderRequest{
		Amount:      mollie.NewAmount(currency, order.TransactionAmount),
		OrderNumber: order.OrderNumber,
		Lines:       lines,
		BillingAddress: mollie.Address{
			GivenName:       order.CustomerFirstName,
			FamilyName:      order.CustomerLastName,
			Email:           order.CustomerEmail,
			Country:         order.CountryCode,
			StreetAndNumber: order.Property(settings.BillingAddressLine1Alias),
			City:            order.Property(settings.BillingAddressCityAlias),
			Region:          order.Property(settings.BillingAddressStateAlias),
			PostalCode:      order.Property(settings.BillingAddressZipCodeAlias),
		},
		RedirectURL: callbackURL + "?" + RedirectMarker + "=true",
		WebhookURL:  callbackURL,
		Locale:      settings.CheckoutLocale(),
		// The host's own order reference rides along for correlation.
		Metadata: order.OrderRef,
	}

	switch len(settings.PaymentMethods) {
	case 0:
	case 1:
		req.Method = settings.PaymentMethods[0]
	default:
		req.Methods = settings.PaymentMethods
	}

	return req
}

func buildOrderLine(l checkout.LineView, currency string, settings Settings) mollie.OrderLineRequest {
	line := mollie.OrderLineRequest{
		Type:        mollie.LineTypePhysical,
		Sku:         l.Sku,
		Name:        l.Name,
		Quantity:    l.Quantity,
		UnitPrice:   mollie.NewAmount(currency, l.UnitPrice.WithTax),
		VatRate:     ratePercent(l.TaxRate),
		VatAmount:   mollie.NewAmount(currency, l.TotalPrice.Tax),
		TotalAmount: mollie.NewAmount(currency, l.TotalPrice.WithTax),
	}
	if t := l.Property(settings.OrderLineTypeAlias); t != "" {
		line.Type = t
	}
	line.Category = l.Property(settings.OrderLineCategoryAlias)

	if adj := l.TotalAdjustment.WithTax; adj.IsNegative() {
		discount := mollie.NewAmount(currency, adj.Abs())
		line.DiscountAmount = &discount
	}
	// A positive per-line adjustment has no line-item representation in
	// the gateway schema; it is already reflected in the line total.

	return line
}

// adjustmentLines maps subtotal/total price adjustments to gateway lines.
// The VAT rate is recovered from the adjustment's own tax breakdown.
func adjustmentLines(prefix string, adjustments []checkout.PriceAdjustment, currency string) []mollie.OrderLineRequest {
	lines := make([]mollie.OrderLineRequest, 0, len(adjustments))
	for _, a := range adjustments {
		lineType, sku, kind := mollie.LineTypeSurcharge, surchargeSku, "Fee"
		if a.Price.WithTax.IsNegative() {
			lineType, sku, kind = mollie.LineTypeDiscount, discountSku, "Discount"
		}
		lines = append(lines, mollie.OrderLineRequest{
			Type:        lineType,
			Sku:         sku,
			Name:        prefix + " " + kind + " - " + a.Name,
			Quantity:    1,
			UnitPrice:   mollie.NewAmount(currency, a.Price.WithTax),
			VatRate:     impliedRatePercent(a.Price),
			VatAmount:   mollie.NewAmount(currency, a.Price.Tax),
			TotalAmount: mollie.NewAmount(currency, a.Price.WithTax),
		})
	}
	return lines
}

func feeLine(fee checkout.FeeView, lineType, fallbackSku, currency string) mollie.OrderLineRequest {
	sku := fee.Sku
	if sku == "" {
		sku = fallbackSku
	}
	return mollie.OrderLineRequest{
		Type:        lineType,
		Sku:         sku,
		Name:        fee.Name,
		Quantity:    1,
		UnitPrice:   mollie.NewAmount(currency, fee.Fee.WithTax),
		VatRate:     ratePercent(fee.TaxRate),
		VatAmount:   mollie.NewAmount(currency, fee.Fee.Tax),
		TotalAmount: mollie.NewAmount(currency, fee.Fee.WithTax),
	}
}

// amountAdjustmentLine maps a transaction-level adjustment to a gateway
// line. Gift cards keep their own type and carry the card code in the
// name; everything else is discount or surcharge by sign.
func amountAdjustmentLine(a checkout.AmountAdjustment, currency string) mollie.OrderLineRequest {
	var lineType, sku, name string
	switch {
	case a.Kind == checkout.AdjustmentGiftCard:
		lineType, sku = mollie.LineTypeGiftCard, giftCardSku
		name = "Gift Card - " + a.Name
	case a.Amount.IsNegative():
		lineType, sku = mollie.LineTypeDiscount, discountSku
		name = "Transaction Discount - " + a.Name
	default:
		lineType, sku = mollie.LineTypeSurcharge, surchargeSku
		name = "Transaction Fee - " + a.Name
	}

	amount := mollie.NewAmount(currency, a.Amount)
	return mollie.OrderLineRequest{
		Type:        lineType,
		Sku:         sku,
		Name:        name,
		Quantity:    1,
		UnitPrice:   amount,
		VatRate:     "0.00",
		VatAmount:   mollie.NewAmount(currency, decimal.Zero),
		TotalAmount: amount,
	}
}

// ratePercent formats a fractional tax rate (0.21) as the two-decimal
// percentage string the gateway expects ("21.00").
func ratePercent(rate decimal.Decimal) string {
	return rate.Mul(oneHundred).StringFixed(2)
}

// impliedRatePercent recovers the VAT rate from a price's own tax
// breakdown: (withTax / withoutTax - 1) * 100. A zero tax-exclusive
// price yields "0.00" rather than a division error.
func impliedRatePercent(p checkout.Price) string {
	if p.WithoutTax.IsZero() {
		return "0.00"
	}
	return p.WithTax.Div(p.WithoutTax).Sub(decimal.NewFromInt(1)).Mul(oneHundred).Round(2).StringFixed(2)
}

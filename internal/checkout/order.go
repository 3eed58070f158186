// Package checkout holds the host-side view of an order as the checkout
// engine presents it to the payment provider, plus the payment state the
// provider reports back. Everything here is consumed read-only: the
// provider never owns or mutates the host order.
package checkout

import "github.com/shopspring/decimal"

// Price is a tax breakdown of a single monetary value. Negative values
// are allowed for discounts.
type Price struct {
	WithoutTax decimal.Decimal `json:"withoutTax"`
	Tax        decimal.Decimal `json:"tax"`
	WithTax    decimal.Decimal `json:"withTax"`
}

// AdjustmentKind tags a transaction-level adjustment. The host resolves
// the tag once when the order view is assembled: gift cards are explicit,
// everything else is Discount or Surcharge by the sign of its amount.
type AdjustmentKind string

const (
	AdjustmentDiscount  AdjustmentKind = "discount"
	AdjustmentSurcharge AdjustmentKind = "surcharge"
	AdjustmentGiftCard  AdjustmentKind = "gift_card"
)

// PriceAdjustment is a named subtotal- or total-level price modifier with
// a full tax breakdown. Its sign decides discount vs. surcharge.
type PriceAdjustment struct {
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// AmountAdjustment is a transaction-level flat-amount modifier (gift
// card redemption, rounding surcharge). Carries no tax breakdown.
type AmountAdjustment struct {
	Kind   AdjustmentKind  `json:"kind"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// LineView is one host order line. UnitPrice excludes per-line
// adjustments; TotalPrice includes them.
type LineView struct {
	Sku             string            `json:"sku"`
	Name            string            `json:"name"`
	Quantity        int               `json:"quantity"`
	UnitPrice       Price             `json:"unitPrice"`
	TaxRate         decimal.Decimal   `json:"taxRate"`
	TotalPrice      Price             `json:"totalPrice"`
	TotalAdjustment Price             `json:"totalAdjustment"`
	Properties      map[string]string `json:"properties,omitempty"`
}

// Property looks up a line property by alias. A missing alias or key
// yields an empty string, never an error.
func (l LineView) Property(alias string) string {
	if alias == "" {
		return ""
	}
	return l.Properties[alias]
}

// FeeView describes a payment or shipping method with its fee.
type FeeView struct {
	Name    string          `json:"name"`
	Sku     string          `json:"sku"`
	Fee     Price           `json:"fee"`
	TaxRate decimal.Decimal `json:"taxRate"`
}

// OrderView is the read-only order snapshot the host posts to start a
// payment. TransactionAmount is the final tax-inclusive payable after
// every adjustment; the built gateway request must sum to exactly it.
type OrderView struct {
	OrderNumber string `json:"orderNumber"`
	OrderRef    string `json:"orderRef"`
	Currency    string `json:"currency"`

	CustomerFirstName string `json:"customerFirstName"`
	CustomerLastName  string `json:"customerLastName"`
	CustomerEmail     string `json:"customerEmail"`
	CountryCode       string `json:"countryCode"`

	PaymentMethod  FeeView  `json:"paymentMethod"`
	ShippingMethod *FeeView `json:"shippingMethod,omitempty"`

	Lines []LineView `json:"lines"`

	SubtotalAdjustments    []PriceAdjustment  `json:"subtotalAdjustments,omitempty"`
	TotalAdjustments       []PriceAdjustment  `json:"totalAdjustments,omitempty"`
	TransactionAdjustments []AmountAdjustment `json:"transactionAdjustments,omitempty"`

	TransactionAmount decimal.Decimal `json:"transactionAmount"`

	Properties map[string]string `json:"properties,omitempty"`
}

// Property looks up an order property by alias with the same miss
// behavior as LineView.Property.
func (o OrderView) Property(alias string) string {
	if alias == "" {
		return ""
	}
	return o.Properties[alias]
}

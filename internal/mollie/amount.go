package mollie

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a Mollie monetary value: an ISO 4217 currency code plus a
// decimal string carrying exactly the currency's minor-unit precision.
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// NewAmount formats a decimal to the two-decimal scale Mollie expects.
func NewAmount(currency string, value decimal.Decimal) Amount {
	return Amount{
		Currency: currency,
		Value:    value.StringFixed(2),
	}
}

// Decimal parses the value as an exact decimal. Amounts must never be
// compared as binary floats, refund-vs-original comparisons rely on this.
func (a Amount) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(a.Value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", a.Value, err)
	}
	return d, nil
}

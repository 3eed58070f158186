package provider

// Settings is the flat provider configuration. Optional fields default
// to empty; Validate is called at the start of every operation so a
// misconfiguration fails fast, before any gateway call.
type Settings struct {
	ContinueURL string
	CancelURL   string
	ErrorURL    string

	LiveAPIKey string
	TestAPIKey string
	TestMode   bool

	// Locale for the hosted checkout page, defaults to en_US.
	Locale string

	// PaymentMethods restricts the methods offered at checkout.
	// Empty means unrestricted.
	PaymentMethods []string

	// Billing address field overrides, looked up in the host order's
	// property bag. An unset alias leaves the field empty.
	BillingAddressLine1Alias   string
	BillingAddressCityAlias    string
	BillingAddressStateAlias   string
	BillingAddressZipCodeAlias string

	// Per-line overrides for the gateway line type and category.
	OrderLineTypeAlias     string
	OrderLineCategoryAlias string
}

const defaultLocale = "en_US"

// APIKey returns the key matching the configured mode.
func (s Settings) APIKey() string {
	if s.TestMode {
		return s.TestAPIKey
	}
	return s.LiveAPIKey
}

// CheckoutLocale returns the configured locale or the default.
func (s Settings) CheckoutLocale() string {
	if s.Locale == "" {
		return defaultLocale
	}
	return s.Locale
}

// Validate reports the first missing required setting.
func (s Settings) Validate() error {
	switch {
	case s.ContinueURL == "":
		return &ConfigError{Setting: "continue_url"}
	case s.CancelURL == "":
		return &ConfigError{Setting: "cancel_url"}
	case s.ErrorURL == "":
		return &ConfigError{Setting: "error_url"}
	case s.TestMode && s.TestAPIKey == "":
		return &ConfigError{Setting: "test_api_key"}
	case !s.TestMode && s.LiveAPIKey == "":
		return &ConfigError{Setting: "live_api_key"}
	}
	return nil
}

package config

import (
	"time"

	"molliepay/internal/provider"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL" required:"true"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// Externally reachable origin for Mollie callbacks.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" required:"true"`

	MollieBaseURL           string        `env:"MOLLIE_BASE_URL" envDefault:"https://api.mollie.com/v2"`
	MollieLiveAPIKey        string        `env:"MOLLIE_LIVE_API_KEY"`
	MollieTestAPIKey        string        `env:"MOLLIE_TEST_API_KEY"`
	MollieTestMode          bool          `env:"MOLLIE_TEST_MODE" envDefault:"false"`
	MollieLocale            string        `env:"MOLLIE_LOCALE" envDefault:"en_US"`
	MolliePaymentMethods    []string      `env:"MOLLIE_PAYMENT_METHODS" envSeparator:","`
	HTTPMollieClientTimeout time.Duration `env:"HTTP_MOLLIE_CLIENT_TIMEOUT" envDefault:"20s"`

	// Shopper-facing destinations the host hands off to.
	ContinueURL string `env:"CONTINUE_URL" required:"true"`
	CancelURL   string `env:"CANCEL_URL" required:"true"`
	ErrorURL    string `env:"ERROR_URL" required:"true"`

	// Property-bag aliases for optional per-order and per-line overrides.
	BillingAddressLine1Alias   string `env:"BILLING_ADDRESS_LINE1_ALIAS"`
	BillingAddressCityAlias    string `env:"BILLING_ADDRESS_CITY_ALIAS"`
	BillingAddressStateAlias   string `env:"BILLING_ADDRESS_STATE_ALIAS"`
	BillingAddressZipCodeAlias string `env:"BILLING_ADDRESS_ZIPCODE_ALIAS"`
	OrderLineTypeAlias         string `env:"ORDER_LINE_TYPE_ALIAS"`
	OrderLineCategoryAlias     string `env:"ORDER_LINE_CATEGORY_ALIAS"`

	OpensearchUrls       []string `env:"OPENSEARCH_URLS" required:"true"`
	OpensearchIndexAudit string   `env:"OPENSEARCH_INDEX_AUDIT" envDefault:"payment-status-changes"`

	// Webhook processing mode: "sync" (direct) or "kafka" (async via Kafka)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	// Kafka configuration
	KafkaBrokers               []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaWebhooksTopic         string   `env:"KAFKA_WEBHOOKS_TOPIC" envDefault:"webhooks.payments"`
	KafkaWebhooksDLQTopic      string   `env:"KAFKA_WEBHOOKS_DLQ_TOPIC" envDefault:"webhooks.payments.dlq"`
	KafkaWebhooksConsumerGroup string   `env:"KAFKA_WEBHOOKS_CONSUMER_GROUP" envDefault:"molliepay-webhooks"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

// ProviderSettings maps the flat env config to the provider's settings
// object. Validation happens per operation, not here.
func (c Config) ProviderSettings() provider.Settings {
	return provider.Settings{
		ContinueURL:                c.ContinueURL,
		CancelURL:                  c.CancelURL,
		ErrorURL:                   c.ErrorURL,
		LiveAPIKey:                 c.MollieLiveAPIKey,
		TestAPIKey:                 c.MollieTestAPIKey,
		TestMode:                   c.MollieTestMode,
		Locale:                     c.MollieLocale,
		PaymentMethods:             c.MolliePaymentMethods,
		BillingAddressLine1Alias:   c.BillingAddressLine1Alias,
		BillingAddressCityAlias:    c.BillingAddressCityAlias,
		BillingAddressStateAlias:   c.BillingAddressStateAlias,
		BillingAddressZipCodeAlias: c.BillingAddressZipCodeAlias,
		OrderLineTypeAlias:         c.OrderLineTypeAlias,
		OrderLineCategoryAlias:     c.OrderLineCategoryAlias,
	}
}

package mollie

import "time"

// Order statuses as defined by the Mollie Orders API. The strings are part
// of the wire contract and must match the remote enumeration exactly.
const (
	OrderStatusCreated    = "created"
	OrderStatusPaid       = "paid"
	OrderStatusAuthorized = "authorized"
	OrderStatusCanceled   = "canceled"
	OrderStatusShipping   = "shipping"
	OrderStatusCompleted  = "completed"
	OrderStatusExpired    = "expired"
)

// Order line statuses.
const (
	LineStatusCreated    = "created"
	LineStatusAuthorized = "authorized"
	LineStatusPaid       = "paid"
	LineStatusCanceled   = "canceled"
	LineStatusShipping   = "shipping"
	LineStatusCompleted  = "completed"
)

// Order line types.
const (
	LineTypePhysical    = "physical"
	LineTypeDiscount    = "discount"
	LineTypeDigital     = "digital"
	LineTypeShippingFee = "shipping_fee"
	LineTypeStoreCredit = "store_credit"
	LineTypeGiftCard    = "gift_card"
	LineTypeSurcharge   = "surcharge"
)

// Payment statuses (only the subset the redirect check inspects).
const (
	PaymentStatusOpen     = "open"
	PaymentStatusCanceled = "canceled"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusExpired  = "expired"
)

// RefundStatusFailed is the only refund status that does not count as an
// in-flight or settled refund.
const RefundStatusFailed = "failed"

// Address is a Mollie order address.
type Address struct {
	OrganizationName string `json:"organizationName,omitempty"`
	Title            string `json:"title,omitempty"`
	GivenName        string `json:"givenName,omitempty"`
	FamilyName       string `json:"familyName,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	StreetAndNumber  string `json:"streetAndNumber,omitempty"`
	StreetAdditional string `json:"streetAdditional,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	City             string `json:"city,omitempty"`
	Region           string `json:"region,omitempty"`
	// ISO 3166-1 alpha-2
	Country string `json:"country,omitempty"`
}

// OrderLineRequest is a line item in an order-creation request.
type OrderLineRequest struct {
	Type           string  `json:"type,omitempty"`
	Category       string  `json:"category,omitempty"`
	Sku            string  `json:"sku,omitempty"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPrice      Amount  `json:"unitPrice"`
	DiscountAmount *Amount `json:"discountAmount,omitempty"`
	VatRate        string  `json:"vatRate"`
	VatAmount      Amount  `json:"vatAmount"`
	TotalAmount    Amount  `json:"totalAmount"`
}

// CreateOrderRequest is the payload for POST /v2/orders.
type CreateOrderRequest struct {
	Amount         Amount             `json:"amount"`
	OrderNumber    string             `json:"orderNumber"`
	Lines          []OrderLineRequest `json:"lines"`
	BillingAddress Address            `json:"billingAddress"`
	RedirectURL    string             `json:"redirectUrl,omitempty"`
	WebhookURL     string             `json:"webhookUrl,omitempty"`
	Locale         string             `json:"locale,omitempty"`
	Method         string             `json:"method,omitempty"`
	Methods        []string           `json:"methods,omitempty"`
	Metadata       any                `json:"metadata,omitempty"`
}

// OrderLine is a line item on a fetched order. It is an immutable snapshot,
// re-fetched on every reconciliation trigger.
type OrderLine struct {
	Resource         string  `json:"resource,omitempty"`
	ID               string  `json:"id"`
	OrderID          string  `json:"orderId,omitempty"`
	Type             string  `json:"type,omitempty"`
	Sku              string  `json:"sku,omitempty"`
	Name             string  `json:"name,omitempty"`
	Status           string  `json:"status"`
	Quantity         int     `json:"quantity"`
	QuantityShipped  int     `json:"quantityShipped"`
	QuantityRefunded int     `json:"quantityRefunded"`
	QuantityCanceled int     `json:"quantityCanceled"`
	UnitPrice        Amount  `json:"unitPrice"`
	DiscountAmount   *Amount `json:"discountAmount,omitempty"`
	VatRate          string  `json:"vatRate,omitempty"`
	VatAmount        Amount  `json:"vatAmount"`
	TotalAmount      Amount  `json:"totalAmount"`
}

// Payment is an embedded payment on a fetched order.
type Payment struct {
	Resource string `json:"resource,omitempty"`
	ID       string `json:"id"`
	Status   string `json:"status"`
	Method   string `json:"method,omitempty"`
	Amount   Amount `json:"amount"`
}

// Refund is an order refund.
type Refund struct {
	Resource  string    `json:"resource,omitempty"`
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId,omitempty"`
	Status    string    `json:"status"`
	Amount    Amount    `json:"amount"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// OrderEmbed carries optionally embedded sub-resources of an order.
type OrderEmbed struct {
	Payments []Payment `json:"payments,omitempty"`
	Refunds  []Refund  `json:"refunds,omitempty"`
}

// Link is a HAL link.
type Link struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// Order is a fetched Mollie order.
type Order struct {
	Resource       string          `json:"resource,omitempty"`
	ID             string          `json:"id"`
	ProfileID      string          `json:"profileId,omitempty"`
	Mode           string          `json:"mode,omitempty"`
	Status         string          `json:"status"`
	IsCancelable   bool            `json:"isCancelable,omitempty"`
	Amount         Amount          `json:"amount"`
	AmountRefunded *Amount         `json:"amountRefunded,omitempty"`
	AmountCaptured *Amount         `json:"amountCaptured,omitempty"`
	OrderNumber    string          `json:"orderNumber,omitempty"`
	Lines          []OrderLine     `json:"lines"`
	BillingAddress Address         `json:"billingAddress,omitempty"`
	RedirectURL    string          `json:"redirectUrl,omitempty"`
	WebhookURL     string          `json:"webhookUrl,omitempty"`
	Locale         string          `json:"locale,omitempty"`
	Metadata       any             `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	Embedded       OrderEmbed      `json:"_embedded,omitempty"`
	Links          map[string]Link `json:"_links,omitempty"`
}

// CheckoutURL returns the hosted checkout link the shopper is sent to,
// or empty if the order carries none.
func (o Order) CheckoutURL() string {
	return o.Links["checkout"].Href
}

// RefundRequest is the payload for POST /v2/orders/{id}/refunds. Empty
// lines means "refund the whole order".
type RefundRequest struct {
	Lines       []RefundLine `json:"lines"`
	Description string       `json:"description,omitempty"`
}

// RefundLine selects a quantity of one order line to refund.
type RefundLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity,omitempty"`
}

// RefundList is the response of GET /v2/orders/{id}/refunds.
type RefundList struct {
	Count    int `json:"count"`
	Embedded struct {
		Refunds []Refund `json:"refunds"`
	} `json:"_embedded"`
}

// ShipmentRequest is the payload for POST /v2/orders/{id}/shipments. Empty
// lines means "ship everything", which is how a full capture is triggered.
type ShipmentRequest struct {
	Lines []ShipmentLine `json:"lines"`
}

// ShipmentLine selects a quantity of one order line to ship.
type ShipmentLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity,omitempty"`
}

// Shipment is the response of a shipment creation.
type Shipment struct {
	Resource  string      `json:"resource,omitempty"`
	ID        string      `json:"id"`
	OrderID   string      `json:"orderId,omitempty"`
	Lines     []OrderLine `json:"lines,omitempty"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
}

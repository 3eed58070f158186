// Package mollie implements the subset of the Mollie Orders API the
// payment provider needs: create/fetch/cancel orders, refunds and
// shipments. It is not a general purpose SDK.
package mollie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"molliepay/pkg/metrics"

	"github.com/google/go-querystring/query"
)

const defaultBaseURL = "https://api.mollie.com/v2"

// Client is a thin HTTP client for the Mollie Orders API. It performs no
// retries: a failed call propagates to the caller, which owns retry policy.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests, mocks).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client authenticating with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from Mollie.
type APIError struct {
	StatusCode int    `json:"status"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mollie: %d %s: %s", e.StatusCode, e.Title, e.Detail)
}

// Embed values for GetOrder.
const (
	EmbedPayments = "payments"
	EmbedRefunds  = "refunds"
)

// GetOrderOptions selects optional sub-resources to embed in the response.
type GetOrderOptions struct {
	Embed []string `url:"embed,comma,omitempty"`
}

// ListRefundsOptions pages through an order's refunds.
type ListRefundsOptions struct {
	From  string `url:"from,omitempty"`
	Limit int    `url:"limit,omitempty"`
}

// CreateOrder creates an order and returns the gateway's representation,
// including the hosted checkout link.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var out Order
	err := c.do(ctx, "create_order", http.MethodPost, "/orders", nil, req, &out)
	return out, err
}

// GetOrder fetches a fresh order snapshot.
func (c *Client) GetOrder(ctx context.Context, orderID string, opts GetOrderOptions) (Order, error) {
	var out Order
	err := c.do(ctx, "get_order", http.MethodGet, "/orders/"+orderID, opts, nil, &out)
	return out, err
}

// CancelOrder cancels an order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (Order, error) {
	var out Order
	err := c.do(ctx, "cancel_order", http.MethodDelete, "/orders/"+orderID, nil, nil, &out)
	return out, err
}

// CreateOrderRefund refunds order lines; an empty request refunds everything.
func (c *Client) CreateOrderRefund(ctx context.Context, orderID string, req RefundRequest) (Refund, error) {
	if req.Lines == nil {
		req.Lines = []RefundLine{}
	}
	var out Refund
	err := c.do(ctx, "create_order_refund", http.MethodPost, "/orders/"+orderID+"/refunds", nil, req, &out)
	return out, err
}

// ListOrderRefunds lists an order's refunds.
func (c *Client) ListOrderRefunds(ctx context.Context, orderID string, opts ListRefundsOptions) ([]Refund, error) {
	var out RefundList
	if err := c.do(ctx, "list_order_refunds", http.MethodGet, "/orders/"+orderID+"/refunds", opts, nil, &out); err != nil {
		return nil, err
	}
	return out.Embedded.Refunds, nil
}

// CreateShipment ships order lines; an empty request ships everything,
// which captures any still-authorized payment.
func (c *Client) CreateShipment(ctx context.Context, orderID string, req ShipmentRequest) (Shipment, error) {
	if req.Lines == nil {
		req.Lines = []ShipmentLine{}
	}
	var out Shipment
	err := c.do(ctx, "create_shipment", http.MethodPost, "/orders/"+orderID+"/shipments", nil, req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, operation, method, path string, opts, body, out any) error {
	url := c.baseURL + path
	if opts != nil {
		vals, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		if q := vals.Encode(); q != "" {
			url += "?" + q
		}
	}

	var reader io.Reader
	if body != nil {
		j, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(j)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("mollie %s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	status := strconv.Itoa(resp.StatusCode)
	metrics.GatewayRequestDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
	metrics.GatewayRequestsTotal.WithLabelValues(operation, status).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Title == "" {
			apiErr.Title = resp.Status
			apiErr.Detail = string(raw)
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Package opensearch stores applied payment-status transitions as audit
// documents.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"molliepay/internal/checkout"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"
)

var _ checkout.EventSink = (*AuditSink)(nil)

// AuditSink writes one document per applied status transition.
type AuditSink struct {
	client *opensearch.Client
	index  string
}

func NewAuditSink(ctx context.Context, urls []string, index string) (*AuditSink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	sink := &AuditSink{client: client, index: index}

	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *AuditSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":        map[string]any{"type": "keyword"},
				"order_number":    map[string]any{"type": "keyword"},
				"mollie_order_id": map[string]any{"type": "keyword"},
				"from_status":     map[string]any{"type": "keyword"},
				"to_status":       map[string]any{"type": "keyword"},
				"trigger":         map[string]any{"type": "keyword"},
				"occurred_at":     map[string]any{"type": "date"},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0, // dev-friendly; change in prod
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type statusChangeDoc struct {
	EventID       string    `json:"event_id"`
	OrderNumber   string    `json:"order_number"`
	MollieOrderID string    `json:"mollie_order_id"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	Trigger       string    `json:"trigger"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RecordStatusChange indexes one transition document.
func (s *AuditSink) RecordStatusChange(ctx context.Context, change checkout.StatusChange) error {
	occurredAt := change.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	doc := statusChangeDoc{
		EventID:       uuid.NewString(),
		OrderNumber:   change.OrderNumber,
		MollieOrderID: change.MollieOrderID,
		FromStatus:    string(change.From),
		ToStatus:      string(change.To),
		Trigger:       string(change.Trigger),
		OccurredAt:    occurredAt.UTC(),
	}
	payload, _ := json.Marshal(doc)

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(doc.EventID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

// ListStatusChanges returns an order's transitions, oldest first.
func (s *AuditSink) ListStatusChanges(ctx context.Context, orderNumber string) ([]checkout.StatusChange, error) {
	body := map[string]any{
		"size": 500,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]any{"order_number": orderNumber}},
				},
			},
		},
		"sort": []map[string]any{
			{"occurred_at": map[string]any{"order": "asc"}},
		},
	}
	raw, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	out := make([]checkout.StatusChange, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		var doc statusChangeDoc
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode hit: %w", err)
		}
		out = append(out, checkout.StatusChange{
			OrderNumber:   doc.OrderNumber,
			MollieOrderID: doc.MollieOrderID,
			From:          checkout.PaymentStatus(doc.FromStatus),
			To:            checkout.PaymentStatus(doc.ToStatus),
			Trigger:       checkout.Trigger(doc.Trigger),
			OccurredAt:    doc.OccurredAt,
		})
	}
	return out, nil
}

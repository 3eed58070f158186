//go:build integration
// +build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"molliepay/internal/external/kafka"
	"molliepay/internal/messaging"
	"molliepay/internal/testinfra"
	"molliepay/pkg/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var container *testinfra.KafkaContainer

func TestMain(m *testing.M) {
	ctx := context.Background()

	kafkaContainer, err := testinfra.NewKafka(ctx)
	if err != nil {
		panic("Failed to start kafka container: " + err.Error())
	}

	container = kafkaContainer

	code := m.Run()

	kafkaContainer.Cleanup(ctx)
	os.Exit(code)
}

type received struct {
	envelope      messaging.Envelope
	correlationID string
}

func TestPublishConsumeRoundtrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	publisher := kafka.NewPublisher(container.Brokers, container.WebhooksTopic)
	defer publisher.Close()

	consumer := kafka.NewConsumer(container.Brokers, container.WebhooksTopic, container.ConsumerGroup)
	defer consumer.Close()

	got := make(chan received, 1)
	go func() {
		_ = consumer.Start(ctx, func(msgCtx context.Context, key, value []byte) error {
			var env messaging.Envelope
			if err := json.Unmarshal(value, &env); err != nil {
				return err
			}
			got <- received{envelope: env, correlationID: correlation.FromContext(msgCtx)}
			return nil
		})
	}()

	// given
	env, err := messaging.NewEnvelope("ord_8wmqcHMN4U", "payment.webhook",
		map[string]string{"mollie_order_id": "ord_8wmqcHMN4U"})
	require.NoError(t, err)

	pubCtx := correlation.WithID(ctx, "corr-roundtrip-1")

	// when
	require.NoError(t, publisher.Publish(pubCtx, env))

	// then
	select {
	case r := <-got:
		assert.Equal(t, env.EventID, r.envelope.EventID)
		assert.Equal(t, "ord_8wmqcHMN4U", r.envelope.Key)
		assert.Equal(t, "payment.webhook", r.envelope.Type)
		assert.JSONEq(t, `{"mollie_order_id":"ord_8wmqcHMN4U"}`, string(r.envelope.Payload))
		assert.Equal(t, "corr-roundtrip-1", r.correlationID,
			"correlation id must survive the broker hop")
	case <-ctx.Done():
		t.Fatal("timed out waiting for the message")
	}
}

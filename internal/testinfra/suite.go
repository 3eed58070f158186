//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TestSuite bundles the containers an integration test suite runs against.
// Postgres is always started; Kafka and Wiremock only when requested.
type TestSuite struct {
	Postgres *PostgresContainer
	Kafka    *KafkaContainer
	Wiremock *WiremockContainer
}

type SuiteOptions struct {
	WithKafka    bool
	WithWiremock bool
	MappingsPath string // Wiremock stub mappings directory
}

// NewTestSuite starts the requested containers in parallel. On any failure
// it tears down whatever did come up and returns the first error.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pg, err := NewPostgres(ctx)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		suite.Postgres = pg
		return nil
	})

	if opts.WithKafka {
		g.Go(func() error {
			k, err := NewKafka(ctx)
			if err != nil {
				return fmt.Errorf("kafka: %w", err)
			}
			suite.Kafka = k
			return nil
		})
	}

	if opts.WithWiremock {
		g.Go(func() error {
			w, err := NewWiremock(ctx, opts.MappingsPath)
			if err != nil {
				return fmt.Errorf("wiremock: %w", err)
			}
			suite.Wiremock = w
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		suite.Cleanup(context.Background())
		return nil, fmt.Errorf("start test containers: %w", err)
	}
	return suite, nil
}

// Cleanup terminates the containers in reverse dependency order.
func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Wiremock != nil {
		s.Wiremock.Cleanup(ctx)
	}
	if s.Kafka != nil {
		s.Kafka.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}

// Package app wires configuration, storage, the Mollie client and the
// HTTP surface into a running service.
package app

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"molliepay/config"
	controller "molliepay/internal/controller/http"
	"molliepay/internal/controller/http/handlers"
	"molliepay/internal/external/kafka"
	"molliepay/internal/external/opensearch"
	"molliepay/internal/mollie"
	"molliepay/internal/provider"
	payment_repo "molliepay/internal/repo/payment"
	"molliepay/internal/service"
	"molliepay/internal/webhook"
	"molliepay/pkg/health"
	"molliepay/pkg/logger"
	"molliepay/pkg/postgres"
)

//go:embed migrations/*.sql
var MigrationFS embed.FS

const webhookModeKafka = "kafka"

func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ApplyMigrations(cfg.PgURL, MigrationFS); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	sink, err := opensearch.NewAuditSink(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexAudit)
	if err != nil {
		return fmt.Errorf("create audit sink: %w", err)
	}

	settings := cfg.ProviderSettings()
	client := mollie.NewClient(settings.APIKey(),
		mollie.WithBaseURL(cfg.MollieBaseURL),
		mollie.WithHTTPClient(&http.Client{Timeout: cfg.HTTPMollieClientTimeout}),
	)

	repo := payment_repo.NewPgPaymentRepo(pg)
	prov := provider.New(client, settings)
	payments := service.NewPaymentService(repo, prov, sink, cfg.PublicBaseURL)

	checkers := []health.Checker{health.NewPostgresChecker(pg.Pool)}

	var processor webhook.Processor = webhook.NewSyncProcessor(payments)
	if cfg.WebhookMode == webhookModeKafka {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic)
		defer publisher.Close()

		processor = webhook.NewAsyncProcessor(publisher)
		checkers = append(checkers, health.NewKafkaChecker(cfg.KafkaBrokers))

		StartWorkers(ctx, cfg, payments)
	}

	engine := NewGinEngine()
	router := controller.NewRouter(
		handlers.NewPaymentHandler(payments),
		handlers.NewCallbackHandler(payments, processor),
		health.NewRegistry(checkers...),
	)
	router.SetUp(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr, "webhook_mode", cfg.WebhookMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

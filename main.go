package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fadhlanhapp/trust-ledger/config"
	"github.com/fadhlanhapp/trust-ledger/gateway"
	"github.com/fadhlanhapp/trust-ledger/handlers"
	"github.com/fadhlanhapp/trust-ledger/live"
	"github.com/fadhlanhapp/trust-ledger/logging"
	"github.com/fadhlanhapp/trust-ledger/metrics"
	"github.com/fadhlanhapp/trust-ledger/repository"
	"github.com/fadhlanhapp/trust-ledger/routes"
	"github.com/fadhlanhapp/trust-ledger/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize New Relic
	var app *newrelic.Application
	if cfg.NewRelicLicenseKey != "" {
		nr, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			slog.Warn("Failed to initialize New Relic", "error", err)
		} else {
			app = nr
			defer app.Shutdown(5 * time.Second)
		}
	}

	// Initialize database
	store, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hub := live.NewHub()
	go hub.Run(ctx)

	// Initialize services
	gw := gateway.NewClient(nil, cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	trustService := services.NewTrustService(store)
	billService := services.NewBillService(store)
	ledgerService := services.NewLedgerService(store, hub, m)
	webhookService := services.NewWebhookService(ledgerService, cfg.RazorpayWebhookSecret, m)
	orderService := services.NewOrderService(store, gw, cfg.Currency, m)
	exportService := services.NewExportService(billService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger())
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	routes.SetupRoutes(router, routes.Dependencies{
		Trusts:     handlers.NewTrustHandler(trustService, billService),
		Payments:   handlers.NewPaymentHandler(orderService, webhookService),
		Public:     handlers.NewPublicHandler(billService, ledgerService, exportService, cfg.PublicBaseURL),
		Audit:      handlers.NewAuditHandler(ledgerService),
		Hub:        hub,
		DB:         store.DB(),
		Gatherer:   reg,
		AdminToken: cfg.AdminToken,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "db_driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

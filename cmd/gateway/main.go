package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/api"
	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/application/services"
	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/commerce"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/persistence/sqlite"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/telemetry"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/storefront-checkout/internal/worker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxRequestBodyBytes = 1 << 20

//	@title			Storefront Checkout API
//	@version		1.0
//	@description	Checkout orchestration for the storefront: credential resolution, order creation and payment.
//	@accept			json
//	@produce		json
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"ledger", cfg.Ledger.Driver,
	)

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("failed to flush telemetry", "error", err)
		}
	}()

	instruments, err := telemetry.NewInstruments()
	if err != nil {
		logger.Error("failed to create telemetry instruments", "error", err)
		os.Exit(1)
	}

	ledger, closeLedger, err := openLedger(ctx, cfg.Ledger, logger)
	if err != nil {
		logger.Error("failed to open orphan ledger", "error", err)
		os.Exit(1)
	}
	defer closeLedger()

	resolver := application.NewCredentialResolver(&cfg.Square)
	if err := resolver.Check(); err != nil {
		// Not fatal: every checkout reports this until the operator fixes it.
		logger.Error("square configuration is not usable", "error", err)
	}

	commerceClient := commerce.NewClient(cfg.Square)
	orderReader := commerce.NewRetryOrderReader(commerceClient, cfg.Retry)

	checkoutService := services.NewCheckoutService(resolver, commerceClient, ledger, cfg.Square, instruments, logger)
	bootstrapService := services.NewBootstrapService(resolver, cfg.Square)
	orphanService := services.NewOrphanQueryService(ledger)

	h := handlers.NewHandlers(checkoutService, bootstrapService, orphanService, logger).
		WithOperatorToken(cfg.Ledger.AdminToken)
	if cfg.Ledger.AdminToken == "" {
		logger.Warn("ledger.admin_token not set; orphan listing is disabled")
	}

	doc, err := api.LoadSpec(ctx)
	if err != nil {
		logger.Error("failed to load api document", "error", err)
		os.Exit(1)
	}
	docRouter, err := api.NewRouter(doc)
	if err != nil {
		logger.Error("failed to build api router", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux, doc)
	h.RegisterRoutes(mux)

	router := http.Handler(mux)

	handler := middleware.RequestValidation(docRouter, logger)(router)
	handler = middleware.BodyLimit(maxRequestBodyBytes)(handler)
	handler = middleware.Timeout(cfg.Server.HandlerTimeout)(handler)
	handler = middleware.CORS(cfg.CORS.Origins())(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = otelhttp.NewHandler(handler, "checkout-http")

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Reconciler.Enabled {
		reconciler := worker.NewReconciler(
			ledger,
			orderReader,
			resolver,
			cfg.Reconciler.Interval,
			cfg.Reconciler.BatchSize,
			logger,
		)
		go reconciler.Start(workerCtx)
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	// Outlives the handler timeout so a payment in flight still reports its order.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func openLedger(ctx context.Context, cfg config.LedgerConfig, logger *slog.Logger) (application.OrphanLedger, func(), error) {
	switch cfg.Driver {
	case config.LedgerDriverPostgres:
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewOrphanRepository(db), db.Close, nil

	case config.LedgerDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewOrphanRepository(db), func() { _ = db.Close() }, nil

	case config.LedgerDriverNone:
		logger.Warn("orphan ledger disabled; unpaid orders are only logged")
		return application.NoopLedger{}, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.Driver)
}

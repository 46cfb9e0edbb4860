package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docanalyzer/internal/analyze"
	"docanalyzer/internal/config"
	"docanalyzer/internal/database"
	"docanalyzer/internal/database/migration"
	"docanalyzer/internal/extract"
	handlers "docanalyzer/internal/http/handler"
	"docanalyzer/internal/http/middleware"
	stdotel "docanalyzer/internal/otel"
	"docanalyzer/internal/payment"
	"docanalyzer/internal/repository/postgres"
	"docanalyzer/internal/service"
	"docanalyzer/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Tracing is optional; a failed exporter setup must not block startup.
	shutdownTracing, err := stdotel.Init(ctx, time.UTC)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	// PostgreSQL connection (pooled via database/sql, instrumented with otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Uploaded documents live either on local disk or in MinIO.
	var objStore storage.Storage
	switch cfg.Storage.Driver {
	case "minio":
		objStore, err = storage.NewMinIO(cfg.MinIO)
	default:
		objStore, err = storage.NewLocal(cfg.Storage)
	}
	if err != nil {
		log.Fatalf("failed to initialize storage (%s): %v", cfg.Storage.Driver, err)
	}

	analyzer := analyze.NewClient(analyze.Config{
		APIKey:    cfg.OpenAI.APIKey,
		BaseURL:   cfg.OpenAI.BaseURL,
		Model:     cfg.OpenAI.Model,
		MaxTokens: cfg.OpenAI.MaxTokens,
		Timeout:   time.Duration(cfg.OpenAI.TimeoutSec) * time.Second,
	}, logger)

	gateway := payment.NewStripeClient(payment.Config{
		SecretKey:           cfg.Stripe.SecretKey,
		BaseURL:             cfg.Stripe.BaseURL,
		PaymentMethodConfig: cfg.Stripe.PaymentMethodConfig,
		Timeout:             time.Duration(cfg.Stripe.TimeoutSec) * time.Second,
	}, logger)

	docRepo := postgres.NewDocumentPostgres(db)
	payRepo := postgres.NewPaymentPostgres(db)

	docSvc := service.NewDocumentService(
		objStore, docRepo, payRepo,
		extract.NewConverter(), analyzer, gateway,
		service.Fee{Amount: cfg.Analysis.Amount, Currency: cfg.Analysis.Currency},
		cfg.Stripe.PublishableKey,
		logger,
	)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadSizeMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, docSvc)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracer shutdown failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

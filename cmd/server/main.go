package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dasrj/oficiogen/internal"
	"github.com/dasrj/oficiogen/internal/geocode"
	"github.com/dasrj/oficiogen/internal/handler"
	"github.com/dasrj/oficiogen/internal/metrics"
	"github.com/dasrj/oficiogen/internal/middleware"
	"github.com/dasrj/oficiogen/internal/service"
	"github.com/dasrj/oficiogen/internal/storage"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize outbox storage
	outbox, err := storage.NewLocalOutbox(storage.LocalConfig{
		BasePath: cfg.OutboxPath,
		BaseURL:  cfg.OutboxURL,
	}, logger)
	if err != nil {
		return fmt.Errorf("outbox initialization failed: %w", err)
	}

	// Initialize services
	store := service.NewAttachmentStore(service.NewSHA256Hasher(), service.NewImagingProcessor(), logger)
	exporter := service.NewExporter(store, outbox, logger)
	geocoder := geocode.NewClient(geocode.Config{
		BaseURL:   cfg.GeocodeBaseURL,
		UserAgent: cfg.GeocodeUserAgent,
		Timeout:   cfg.GeocodeTimeout,
	}, logger)

	// Initialize handlers
	fotoHandler := handler.NewFotoHandler(store, logger)
	oficioHandler := handler.NewOficioHandler(exporter, logger)
	backupHandler := handler.NewBackupHandler(store, logger)
	geocodeHandler := handler.NewGeocodeHandler(geocoder, logger)

	// Initialize middleware
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics (optionally behind basic auth)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// API routes
	fotoHandler.RegisterRoutes(mux)
	oficioHandler.RegisterRoutes(mux)
	backupHandler.RegisterRoutes(mux)
	geocodeHandler.RegisterRoutes(mux)

	// Compose the middleware chain around the full router
	stack := middleware.Stack(loggingMw.Handler, metrics.Middleware)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: stack(mux),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecommerce-backend/order-service/internal/catalog"
	"github.com/ecommerce-backend/order-service/internal/config"
	"github.com/ecommerce-backend/order-service/internal/handlers"
	"github.com/ecommerce-backend/order-service/internal/idempotency"
	"github.com/ecommerce-backend/order-service/internal/identity"
	"github.com/ecommerce-backend/order-service/internal/metrics"
	"github.com/ecommerce-backend/order-service/internal/middleware"
	"github.com/ecommerce-backend/order-service/internal/repository"
	"github.com/ecommerce-backend/order-service/internal/service"
	"github.com/ecommerce-backend/order-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
)

const serviceVersion = "1.1.0"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting order service",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize the order repository: Postgres when configured,
	// in-memory otherwise (development mode)
	orderRepo, dbClose := newOrderRepository(cfg.Database, log)
	if dbClose != nil {
		defer dbClose()
	}

	// Remote collaborators
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second)
	identityClient := identity.NewClient(cfg.Identity.BaseURL, time.Duration(cfg.Identity.TimeoutSeconds)*time.Second)

	// Instrumentation
	orderMetrics := metrics.NewOrderMetrics()
	resolver := metrics.NewTimedResolver(catalogClient, orderMetrics.CatalogLatency)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, resolver, log)

	// Duplicate-submission guard
	guard := idempotency.NewGuard(uint(cfg.Idempotency.ExpectedKeys), cfg.Idempotency.FalsePositiveRate)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(serviceVersion, log)
	orderHandler := handlers.NewOrderHandler(orderService, guard, orderMetrics, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Operational endpoints
	r.Get("/health", healthHandler.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// API routes; every order endpoint requires a decoded caller identity
	r.Route("/api/order", func(r chi.Router) {
		r.Use(middleware.BearerAuth(identityClient))

		r.Post("/add-order", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{orderId}", orderHandler.GetOrder)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newOrderRepository connects to Postgres when a database host is
// configured and falls back to the in-memory store otherwise, so the
// service can run without a database in local development
func newOrderRepository(cfg config.DatabaseConfig, log *slog.Logger) (repository.OrderRepository, func() error) {
	dsn := cfg.DSN()
	if dsn == "" {
		log.Warn("no database configured, using in-memory order store")
		return repository.NewInMemoryOrderRepository(), nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if err := db.Ping(); err != nil {
		log.Error("failed to connect to database", "host", cfg.Host, "name", cfg.Name, "error", err)
		os.Exit(1)
	}

	log.Info("connected to database", "host", cfg.Host, "name", cfg.Name)
	return repository.NewPostgresOrderRepository(db), db.Close
}

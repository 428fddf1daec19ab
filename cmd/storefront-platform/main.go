package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/strixcommerce/storefront-platform/internal/api/handlers"
	"github.com/strixcommerce/storefront-platform/internal/api/middleware"
	"github.com/strixcommerce/storefront-platform/internal/cache"
	"github.com/strixcommerce/storefront-platform/internal/cart"
	"github.com/strixcommerce/storefront-platform/internal/catalog"
	"github.com/strixcommerce/storefront-platform/internal/checkout"
	"github.com/strixcommerce/storefront-platform/internal/config"
	"github.com/strixcommerce/storefront-platform/internal/health"
	"github.com/strixcommerce/storefront-platform/internal/metrics"
	"github.com/strixcommerce/storefront-platform/internal/pricing"
	repository "github.com/strixcommerce/storefront-platform/internal/repositories"
	"github.com/strixcommerce/storefront-platform/internal/telemetry"
	"github.com/strixcommerce/storefront-platform/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	// Services and handlers
	variantCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	catalogService := catalog.NewService(repos.Variant, variantCache)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	cartStorage := cart.NewRedisStorage(redisClient, cfg.Session.TTL)
	carts := cart.NewManager(cartStorage)
	engine := pricing.NewEngine(cfg.Pricing.ShippingFee)
	cartHandler := handlers.NewCartHandler(carts, catalogService, engine)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	submitter := checkout.NewSubmitter(repos.Order, emailService)
	flows := checkout.NewManager(carts, engine, submitter)
	checkoutHandler := handlers.NewCheckoutHandler(flows)
	orderHandler := handlers.NewOrderHandler(repos.Order)

	session := middleware.NewSessionMiddleware([]byte(cfg.Session.SigningKey), cfg.Session.TTL)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products/{id}/availability", catalogHandler.GetAvailability())
	routerMux.HandleFunc("GET /api/v1/products/{id}/stock-matrix", catalogHandler.GetStockMatrix())
	routerMux.HandleFunc("GET /api/v1/cart", session.WithSession(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", session.WithSession(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", session.WithSession(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", session.WithSession(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{variantId}", session.WithSession(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/coupon", session.WithSession(cartHandler.ApplyCoupon()))
	routerMux.HandleFunc("DELETE /api/v1/cart/coupon", session.WithSession(cartHandler.RemoveCoupon()))
	routerMux.HandleFunc("GET /api/v1/checkout", session.WithSession(checkoutHandler.GetState()))
	routerMux.HandleFunc("DELETE /api/v1/checkout", session.WithSession(checkoutHandler.Abandon()))
	routerMux.HandleFunc("POST /api/v1/checkout/shipping", session.WithSession(checkoutHandler.SubmitShipping()))
	routerMux.HandleFunc("POST /api/v1/checkout/payment", session.WithSession(checkoutHandler.SubmitPayment()))
	routerMux.HandleFunc("POST /api/v1/checkout/back", session.WithSession(checkoutHandler.Back()))
	routerMux.HandleFunc("POST /api/v1/checkout/submit", session.WithSession(checkoutHandler.Submit()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", session.WithSession(orderHandler.GetOrder()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront-platform")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}

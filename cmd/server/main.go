package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emedica-be/internal/address"
	"emedica-be/internal/auth"
	"emedica-be/internal/cart"
	"emedica-be/internal/category"
	"emedica-be/internal/config"
	"emedica-be/internal/db"
	"emedica-be/internal/events"
	"emedica-be/internal/handler"
	"emedica-be/internal/logger"
	"emedica-be/internal/metrics"
	"emedica-be/internal/middleware"
	"emedica-be/internal/order"
	"emedica-be/internal/payment"
	"emedica-be/internal/payment/webhook"
	"emedica-be/internal/product"
	"emedica-be/internal/review"
	"emedica-be/internal/user"

	"go.uber.org/zap"
)

// Swapped in tests.
var (
	initDBFunc      = db.InitDB
	migrateFunc     = db.RunMigrations
	startServerFunc = startServer
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := initDBFunc(cfg)
	defer database.Close()

	if err := migrateFunc(database); err != nil {
		return err
	}

	publisher, closeBroker, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closeBroker()

	limiter := middleware.NewRateLimiter()
	go limiter.RunCleanup(ctx, time.Minute)

	router := newServer(cfg, database, publisher, limiter)

	log.Info("server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, ":"+cfg.AppPort, router)
}

// newPublisher connects to RabbitMQ, or returns a no-op publisher when no
// broker is configured.
func newPublisher(cfg *config.Config) (events.Publisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		logger.L().Warn("RABBITMQ_URL not set, order events are not published")
		return events.NewNopPublisher(), func() {}, nil
	}

	conn, publisher, err := events.Connect(cfg.RabbitMQURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect broker: %w", err)
	}
	return publisher, func() {
		_ = publisher.Close()
		_ = conn.Close()
	}, nil
}

func newServer(cfg *config.Config, database *sql.DB, publisher events.Publisher, limiter *middleware.RateLimiter) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTExpiresIn, cfg.JWTRefreshExpiresIn)

	userSvc := user.NewService(user.NewRepository(database), tokens)
	addressSvc := address.NewService(address.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database))
	categorySvc := category.NewService(category.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(database))
	reviewSvc := review.NewService(review.NewRepository(database))

	gateway := payment.NewPayPalGateway(cfg.PaymentAPIURL, cfg.PaymentClientID, cfg.PaymentClientSecret)
	orderSvc := order.NewService(
		order.NewRepository(database),
		cartSvc,
		userSvc,
		gateway,
		publisher,
		metrics.Default,
	)

	h := &handler.Handler{
		UserSvc:       userSvc,
		AddressSvc:    addressSvc,
		ProductSvc:    productSvc,
		CategorySvc:   categorySvc,
		CartSvc:       cartSvc,
		OrderSvc:      orderSvc,
		ReviewSvc:     reviewSvc,
		DB:            database,
		SecureCookies: cfg.IsProduction(),
	}

	return handler.NewRouter(h, handler.RouterConfig{
		Tokens:         tokens,
		CORSOrigin:     cfg.CORSOrigin,
		InternalSecret: cfg.InternalSecretKey,
		Limiter:        limiter,
		Metrics:        metrics.Default,
		Webhook:        webhook.NewHandler(orderSvc, cfg.PaymentCallbackToken),
	})
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/traderbros/booking-platform/internal/api/router"
	"github.com/traderbros/booking-platform/internal/bookings"
	appconfig "github.com/traderbros/booking-platform/internal/config"
	"github.com/traderbros/booking-platform/internal/http/handlers"
	"github.com/traderbros/booking-platform/internal/notify"
	"github.com/traderbros/booking-platform/internal/observability/metrics"
	"github.com/traderbros/booking-platform/internal/session"
	"github.com/traderbros/booking-platform/internal/submission"
	"github.com/traderbros/booking-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.WebhookURL == "" {
		logger.Error("WEBHOOK_URL is required")
		os.Exit(1)
	}

	client, err := submission.NewClient(submission.ClientConfig{
		URL:     cfg.WebhookURL,
		Timeout: cfg.WebhookTimeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to create webhook client", "error", err)
		os.Exit(1)
	}

	// Session storage: Redis when configured, in-memory otherwise.
	var store session.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = session.NewRedisStore(redisClient, cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		store = session.NewMemoryStore()
		logger.Info("using in-memory session store")
	}

	// Booking records: Postgres when configured, in-memory otherwise.
	var repo bookings.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = bookings.NewPostgresRepository(pool)
		logger.Info("using postgres booking repository")
	} else {
		repo = bookings.NewInMemoryRepository()
		logger.Info("using in-memory booking repository")
	}
	bookingsSvc := bookings.NewService(repo, logger)

	// Operator email is optional.
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	}
	notifier := notify.NewService(sender, cfg.OperatorEmail, cfg.OperatorName, logger)

	m := metrics.NewBookingMetrics(nil)

	// Initialize handlers
	bookingForm := handlers.NewBookingFormHandler(
		store,
		session.NewEngine(cfg.TimeSlots),
		client,
		cfg.SourceLabel,
		bookingsSvc,
		notifier,
		m,
		logger,
	)
	adminBookings := handlers.NewAdminBookingsHandler(bookingsSvc, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		BookingForm:        bookingForm,
		AdminBookings:      adminBookings,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: 5,
		RateLimitBurst:     20,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iftar/api/routes"
	"iftar/internal/attendees"
	"iftar/internal/notifications"
	"iftar/internal/shared/config"
	"iftar/internal/shared/database"
	"iftar/internal/shared/middleware"
	"iftar/pkg/logger"
	"iftar/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// run returns only after its deferred cleanup has finished
	if err := run(); err != nil {
		logger.GetDefault().WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
}

func run() error {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// The logger picks its handler from the gin mode, so rebuild it now
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	if cfg.Attendance.BaseURL == "" {
		appLogger.Warn("ATTENDANCE_API_URL is not set; registrations and attendee lists will fail")
	}

	// Redis backs the rate limiter only
	db, err := database.InitRedis(cfg)
	if err != nil {
		appLogger.WithError(err).Error("Redis unavailable, continuing without rate limiting")
		db = &database.DB{}
	}
	defer db.Close()

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), &ratelimit.Config{
			Enabled:              cfg.RateLimit.Enabled,
			WindowDuration:       cfg.RateLimit.WindowDuration,
			DefaultRequests:      cfg.RateLimit.DefaultRequests,
			PageRequests:         cfg.RateLimit.PageRequests,
			RegistrationRequests: cfg.RateLimit.RegistrationRequests,
			APIRequests:          cfg.RateLimit.APIRequests,
			HealthRequests:       cfg.RateLimit.HealthRequests,
			WhitelistedIPs:       cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("registration_requests", cfg.RateLimit.RegistrationRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	client := attendees.NewClient(cfg.Attendance.BaseURL, cfg.Attendance.Timeout)

	var service attendees.Service
	if cfg.KafkaEnabled() {
		publisher, err := notifications.NewKafkaPublisher(
			notifications.DefaultKafkaProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic),
		)
		if err != nil {
			appLogger.WithError(err).Error("Failed to initialize notification publisher")
			service = attendees.NewService(client)
		} else {
			defer func() {
				if err := publisher.Close(); err != nil {
					appLogger.Error("Error closing notification publisher", slog.Any("error", err))
				}
			}()
			appLogger.Info("Registration notifications enabled", slog.String("topic", cfg.Kafka.Topic))
			service = attendees.NewServiceWithPublisher(client, publisher, cfg.Event.Title)
		}
	} else {
		service = attendees.NewService(client)
	}

	router, err := setupRouter(cfg, db, service, rateLimiter)
	if err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("site", fmt.Sprintf("http://localhost:%s/", cfg.Port)),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", Version),
			slog.String("build_time", BuildTime),
			slog.String("git_commit", GitCommit),
			slog.Bool("require_confirmation", cfg.Registration.RequireConfirmation),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}

	appLogger.Info("Server exited gracefully")
	return nil
}

func setupRouter(cfg *config.Config, db *database.DB, service attendees.Service, rateLimiter *ratelimit.RateLimiter) (*gin.Engine, error) {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// An empty list trusts no proxy, so ClientIP falls back to the peer address
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(appLogger),
		gin.Recovery(),
		middleware.Metrics(),
	)

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter := routes.NewRouter(cfg, db, service)
	if err := appRouter.SetupRoutes(engine); err != nil {
		return nil, err
	}

	return engine, nil
}

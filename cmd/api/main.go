package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/config"
	"github.com/flowbit/flowbit/analytics-api/internal/handler"
	"github.com/flowbit/flowbit/analytics-api/internal/middleware"
	"github.com/flowbit/flowbit/analytics-api/internal/repository/postgres"
	"github.com/flowbit/flowbit/analytics-api/internal/repository/storage"
	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/flowbit/flowbit/analytics-api/internal/vanna"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	documentRepo, err := storage.NewS3DocumentRepository(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize document storage")
	}

	vannaClient := vanna.NewClient(cfg.Vanna)

	// Initialize services
	statsService := service.NewStatsService(statsRepo, invoiceRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	trendService := service.NewTrendService(invoiceRepo)
	vendorService := service.NewVendorService(vendorRepo)
	forecastService := service.NewForecastService(invoiceRepo)
	chatService := service.NewChatService(vannaClient)
	documentService := service.NewDocumentService(invoiceRepo, documentRepo)

	// Initialize handlers
	statsHandler := handler.NewStatsHandler(statsService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	documentHandler := handler.NewDocumentHandler(documentService)
	trendHandler := handler.NewTrendHandler(trendService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	forecastHandler := handler.NewForecastHandler(forecastService)
	chatHandler := handler.NewChatHandler(chatService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Per-client rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, statsHandler, invoiceHandler, documentHandler, trendHandler, vendorHandler, forecastHandler, chatHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/surplus-deals/internal/catalog"
	"github.com/fairyhunter13/surplus-deals/internal/config"
	"github.com/fairyhunter13/surplus-deals/internal/handler"
	"github.com/fairyhunter13/surplus-deals/internal/notify"
	"github.com/fairyhunter13/surplus-deals/internal/pricing"
	"github.com/fairyhunter13/surplus-deals/internal/ratelimit"
	"github.com/fairyhunter13/surplus-deals/internal/repository"
	"github.com/fairyhunter13/surplus-deals/internal/service"
	"github.com/fairyhunter13/surplus-deals/internal/session"
	"github.com/fairyhunter13/surplus-deals/internal/storage"
	"github.com/fairyhunter13/surplus-deals/internal/validator"
	"github.com/fairyhunter13/surplus-deals/pkg/database"
	"github.com/fairyhunter13/surplus-deals/pkg/idgen"
)

func main() {
	// A .env file is optional; real environment variables win
	_ = godotenv.Load()

	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply database schema")
	}

	// Marketplace rules
	ids, err := idgen.New(cfg.Server.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create id generator")
	}
	ruleset, err := pricing.New(cfg.Deals.PricingRuleset)
	if err != nil {
		log.Fatal().Err(err).Str("ruleset", cfg.Deals.PricingRuleset).Msg("invalid pricing ruleset")
	}
	sessions, err := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET must be set")
	}
	if cfg.Auth.AdminPasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH is empty, admin login disabled")
	}
	store, err := storage.NewLocalStore(cfg.Storage.Dir, cfg.Storage.PublicURL, ids)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("failed to prepare image storage")
	}

	var notifier service.LeadNotifier = notify.Noop{}
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Error().Err(err).Msg("telegram notifications disabled")
		} else {
			notifier = tg
		}
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Surplus Deals",
		ReadTimeout:  30 * time.Second,                 // Max time to read request
		WriteTimeout: 30 * time.Second,                 // Max time to write response
		IdleTimeout:  120 * time.Second,                // Max time for keep-alive connections
		BodyLimit:    handler.MaxImageBytes + 512*1024, // image plus multipart overhead
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Repositories and services (layered architecture)
	dealRepo := repository.NewDealRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	vendorRepo := repository.NewVendorRepository(pool)

	dealService := service.NewDealService(pool, dealRepo, leadRepo, vendorRepo, ids, notifier, service.DealOptions{
		Pricing:     ruleset,
		Locations:   catalog.Locations(cfg.Deals.Locations),
		LeadRevenue: cfg.Deals.LeadRevenue,
	})
	vendorService := service.NewVendorService(vendorRepo, sessions)
	adminService := service.NewAdminService(cfg.Auth.AdminPasswordHash, leadRepo, sessions, cfg.Deals.DashboardRecentLimit)

	dealHandler := handler.NewDealHandler(dealService, validate, cfg.Deals.Locations)
	reservationHandler := handler.NewReservationHandler(dealService)
	imageHandler := handler.NewImageHandler(store)
	vendorHandler := handler.NewVendorHandler(vendorService, validate)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(pool, store)

	requireVendor := handler.RequireRole(sessions, session.RoleVendor)
	requireAdmin := handler.RequireRole(sessions, session.RoleAdmin)
	reserveLimiter := ratelimit.New(cfg.RateLimit.ReservePerMinute, cfg.RateLimit.ReserveBurst)

	// Operational routes
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Static("/images", store.Dir())

	// Public routes
	api := app.Group("/api")
	api.Get("/locations", dealHandler.ListLocations)
	api.Get("/deals", dealHandler.ListDeals)
	api.Get("/deals/:id", dealHandler.GetDeal)
	api.Post("/deals/:id/reserve", reserveLimiter.Middleware(), reservationHandler.Reserve)
	api.Post("/vendors/login", vendorHandler.Login)
	api.Post("/admin/login", adminHandler.Login)

	// Vendor routes
	api.Post("/deals", requireVendor, dealHandler.CreateDeal)
	api.Post("/images", requireVendor, imageHandler.Upload)

	// Admin routes
	api.Post("/admin/vendors", requireAdmin, vendorHandler.Register)
	api.Get("/admin/dashboard", requireAdmin, adminHandler.Dashboard)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/moneyfield/internal/adapters/database/pgsql"
	"github.com/SscSPs/moneyfield/internal/core/domain"
	"github.com/SscSPs/moneyfield/internal/core/services"
	"github.com/SscSPs/moneyfield/internal/handlers"
	"github.com/SscSPs/moneyfield/internal/middleware"
	"github.com/SscSPs/moneyfield/internal/platform/config"
	"github.com/SscSPs/moneyfield/internal/utils"
	"github.com/SscSPs/moneyfield/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Money Field API
// @version 1.0
// @description Records whose money attributes are stored as an amount column and a currency column.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// "token <user-id>" prints a bearer token for the write endpoints
	if len(os.Args) == 3 && os.Args[1] == "token" {
		token, err := utils.GenerateJWT(os.Args[2], cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
		if err != nil {
			logger.Error("Failed to generate token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	catalog, err := domain.NewCatalog(cfg.Settings)
	if err != nil {
		return fmt.Errorf("failed to build record catalog: %w", err)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool, logger)

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	db := database.OpenDB(dbPool)
	defer db.Close()

	repos := pgsql.NewRepositoryProvider(db)
	serviceContainer := services.NewServiceContainer(catalog, repos)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.Any("currency_choices", cfg.Settings.Codes()),
		slog.String("currency_default", cfg.Settings.CurrencyDefault))
	return r.Run(":" + cfg.Port)
}

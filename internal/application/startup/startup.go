// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/container"
	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/database"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/email"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/variants"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/http/server"
	"github.com/AtRiskMedia/tractstack-hero/pkg/config"
)

const shutdownTimeout = 30 * time.Second

// NewLogger builds the channeled logger from the loaded configuration.
func NewLogger() (*logging.ChanneledLogger, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = config.LogToFile
	cfg.LogDirectory = config.LogDirectory
	cfg.JSONFormat = config.LogJSON
	cfg.DefaultLevel = logging.ParseLevel(config.LogLevel)
	return logging.NewChanneledLogger(cfg)
}

// Initialize runs the server until ctx is cancelled, then shuts it down.
func Initialize(ctx context.Context) (err error) {
	setupLogging()

	start := time.Now().UTC()

	logger, err := NewLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { err = multierr.Append(err, logger.Close()) }()

	log.Println("\033[32m" + `
 ▄██▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄██▄▄▄▄▄▄▄██▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄ ▄▄▄
  ██  ██ ██ ▀▀ ██ ██ ▀▀ ██ ██ ▀▀ ██ ▀▀ ██ ██ ▀▀ ██ ██
  ██  ██▀█▄ ██▀██ ██ ▄▄ ██ ▀▀▀██ ██ ██▀██ ██ ▄▄ ██▀█▄
  ██  ██ ██ ██▄██ ██▄██ ██ ██▄██ ██ ██▄██ ██▄██ ██ ██
   ▀▀                   ▀▀       ▀▀             ▀▀ ▀▀▀
` + "\033[97m" + `
  hero blocks, made by At Risk Media
` + "\033[0m")

	// Step 1: Open the block store
	phaseStart := time.Now()
	db, err := database.NewDatabase(database.ConfigFromEnv())
	if err != nil {
		logger.LogStartupPhase("database", time.Since(phaseStart), false)
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	if err := database.NewTableCreator().CreateSchema(db.Conn); err != nil {
		logger.LogStartupPhase("database", time.Since(phaseStart), false)
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Startup().Info("Database ready", "backend", db.GetConnectionInfo())
	logger.LogStartupPhase("database", time.Since(phaseStart), true)

	// Step 2: Load variant definitions
	phaseStart = time.Now()
	registry, err := variants.Load(config.VariantsFile, logger)
	if err != nil {
		logger.LogStartupPhase("variants", time.Since(phaseStart), false)
		return fmt.Errorf("failed to load variants: %w", err)
	}
	logger.Startup().Info("Variants loaded", "variants", registry.Names())
	logger.LogStartupPhase("variants", time.Since(phaseStart), true)

	// Step 3: Secrets and notifications
	jwtSecret := config.JWTSecret
	if jwtSecret == "" {
		if jwtSecret, err = security.GenerateSecureKey(32); err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		logger.Startup().Warn("JWT_SECRET not set, using a random secret; editor sessions end on restart")
	}
	if config.EditorPasswordHash == "" {
		logger.Startup().Warn("EDITOR_PASSWORD_HASH not set, the editor API is open")
	}

	var notifier services.PublishNotifier
	if config.ResendAPIKey != "" && config.PublishNotifyEmail != "" {
		mailer, err := email.NewService(config.ResendAPIKey, config.EmailFrom, config.EmailFromName)
		if err != nil {
			return fmt.Errorf("failed to initialize email service: %w", err)
		}
		notifier = services.NewEmailPublishNotifier(mailer, config.PublishNotifyEmail, config.PublicBaseURL)
		logger.Startup().Info("Publish notifications enabled", "to", config.PublishNotifyEmail)
	}

	// Step 4: Create dependency injection container
	appContainer := container.NewContainer(container.Options{
		Database:  db,
		Registry:  registry,
		Notifier:  notifier,
		JWTSecret: jwtSecret,
		Logger:    logger,
	})
	logger.Startup().Info("Dependency injection container created")

	// Step 5: Start background workers
	bgCtx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	go appContainer.PreviewHub.Run(bgCtx)
	go appContainer.CleanupWorker.Start(bgCtx)
	logger.Startup().Info("Background workers started", "cleanupInterval", config.CleanupInterval)

	// Step 6: Start HTTP server
	httpServer := server.New(config.Port, appContainer)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		if err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
			return err
		}
	}

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if stopErr := httpServer.Stop(shutdownCtx); stopErr != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", stopErr.Error())
		err = multierr.Append(err, stopErr)
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return err
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/adapters/events"
	"github.com/SscSPs/kewat_ledger/internal/adapters/push"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/core/services"
	"github.com/SscSPs/kewat_ledger/internal/handlers"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/SscSPs/kewat_ledger/internal/platform/config"
	"github.com/SscSPs/kewat_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/kewat_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/SscSPs/kewat_ledger/pkg/database"
	"github.com/SscSPs/kewat_ledger/pkg/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Kewat Ledger API
// @version 1.0
// @description Bookkeeping backend for lending circles: ledger, balances, interest, reminders, notifications and invites.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.Setup(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", slog.String("driver", cfg.DBDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	sender, closeSender, err := newPushSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize push transport", slog.String("transport", cfg.PushTransport), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeSender()

	publisher := newEventPublisher(cfg, logger)
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("Error closing event publisher", slog.String("error", cerr.Error()))
		}
	}()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, sender, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, metrics, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.MetricsMiddleware(), middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DBDriver), slog.String("push_transport", cfg.PushTransport))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// openStore connects the configured database and returns its repositories.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case config.DBDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite store ready", slog.String("path", cfg.SQLitePath))
		closeFn := func() {
			if cerr := db.Close(); cerr != nil {
				logger.Error("Error closing sqlite database", slog.String("error", cerr.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(db, cfg.StoreTimeout), closeFn, nil

	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool, cfg.StoreTimeout), func() { database.ClosePgxPool(dbPool) }, nil
	}
}

// runMigrations applies every pending "up" migration through a short-lived database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// pgx/v5/stdlib keeps the migration connection on the same driver as the pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newPushSender builds the configured push transport.
func newPushSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.PushSender, func(), error) {
	noop := func() {}
	switch cfg.PushTransport {
	case config.PushTransportFCM:
		sender, err := push.NewFCMSender(ctx, cfg.FCMProjectID, cfg.FCMCredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		return sender, noop, nil

	case config.PushTransportRabbitMQ:
		sender, err := push.NewQueueSender(cfg.RabbitMQURL, cfg.PushQueue)
		if err != nil {
			return nil, noop, err
		}
		return sender, closer(sender, "push queue", logger), nil

	default:
		logger.Warn("Push transport is log only; no notification will reach a device")
		return push.NewLogSender(logger), noop, nil
	}
}

// newEventPublisher mirrors audit entries to Kafka when brokers are configured.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) portssvc.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Noop{}
	}
	logger.Info("Mirroring audit entries to kafka", slog.String("topic", cfg.KafkaAuditTopic), slog.Int("brokers", len(cfg.KafkaBrokers)))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
}

func closer(c io.Closer, name string, logger *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("Error closing "+name, slog.String("error", err.Error()))
		}
	}
}

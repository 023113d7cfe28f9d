package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/medscan-io/medscan-engine/pkg/config"
	"github.com/medscan-io/medscan-engine/pkg/database"
	"github.com/medscan-io/medscan-engine/pkg/handlers"
	"github.com/medscan-io/medscan-engine/pkg/logging"
	"github.com/medscan-io/medscan-engine/pkg/middleware"
	"github.com/medscan-io/medscan-engine/pkg/ocr"
	"github.com/medscan-io/medscan-engine/pkg/repositories"
	"github.com/medscan-io/medscan-engine/pkg/retry"
	"github.com/medscan-io/medscan-engine/pkg/services"
	"github.com/medscan-io/medscan-engine/pkg/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("storage_endpoint", cfg.Storage.Endpoint),
		zap.String("storage_bucket", cfg.Storage.Bucket),
		zap.String("ocr_model", cfg.OCR.Model))

	ctx := context.Background()

	// Migrations run over database/sql; the service itself uses pgx.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open database for migrations", zap.Error(err))
	}
	err = retry.Do(ctx, nil, func() error {
		return database.RunMigrations(sqlDB, migrationsPath, logger)
	})
	if err != nil {
		logger.Fatal("Failed to run migrations",
			zap.String("error", logging.SanitizeError(err)))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	// The database may still be coming up when the service starts.
	db, err := retry.DoWithResult(ctx, nil, func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	store, err := storage.NewS3Store(ctx, &storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create storage client", zap.Error(err))
	}

	recognizer, err := ocr.NewVisionRecognizer(&ocr.Config{
		Endpoint: cfg.OCR.Endpoint,
		Model:    cfg.OCR.Model,
		APIKey:   cfg.OCR.APIKey,
		Timeout:  cfg.OCR.Timeout(),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create recognizer", zap.Error(err))
	}

	profileRepo := repositories.NewProfileRepository(db)
	medicationRepo := repositories.NewMedicationRepository(db)

	profileService := services.NewProfileService(profileRepo)
	medicationService := services.NewMedicationService(medicationRepo)
	ingestionService := services.NewIngestionService(
		medicationRepo, profileRepo, store, recognizer, cfg.Storage.KeyPrefix, logger)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	profileHandler := handlers.NewProfileHandler(profileService, logger)
	profileHandler.RegisterRoutes(mux)

	medicationHandler := handlers.NewMedicationHandler(ingestionService, medicationService, logger)
	medicationHandler.RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting medscan-engine", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

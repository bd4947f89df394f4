package main

import (
	"os"
	"os/signal"
	"syscall"

	"folio/api"
	"folio/internal/config"
	db "folio/internal/db/query"
	"folio/internal/exposure"
	"folio/internal/logging"
	"folio/internal/repository"
	"folio/internal/resolver"
	"folio/internal/scheduler"
	"folio/internal/service"
	"folio/internal/store"
	"folio/internal/validation"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stderrLogger := zerolog.New(os.Stderr)
		stderrLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFile)

	kv, err := store.Open(cfg.StorePath(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer kv.Close()

	var portfolioRepository repository.PortfolioRepository
	switch cfg.StorageBackend {
	case config.StorageBackend_Postgres:
		dbConn, err := db.New(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer dbConn.Close()
		if err := db.Migrate(dbConn); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate postgres")
		}
		portfolioRepository = repository.NewPostgresPortfolioRepository(dbConn, logger)
	default:
		portfolioRepository = repository.NewLocalPortfolioRepository(kv, logger)
	}

	var driveRepository repository.DriveRepository
	if cfg.GoogleAccessToken != "" {
		driveRepository = repository.NewDriveRepository(repository.DefaultDriveBaseURL, cfg.GoogleAccessToken, logger)
	}

	catalog, err := exposure.DefaultCatalog()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load etf catalog")
	}
	calculator := exposure.NewCalculator(catalog, logger)

	portfolioService := service.NewPortfolioService(
		calculator,
		validation.NewValidationService(calculator),
		portfolioRepository,
		logger,
	)
	medicationService, err := service.NewMedicationService(kv, driveRepository, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start medication service")
	}

	if cfg.BackupSchedule != "" {
		sched := scheduler.New(logger)
		if err := sched.AddJob(cfg.BackupSchedule, scheduler.NewMedicationBackupJob(medicationService)); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.BackupSchedule).Msg("invalid backup schedule")
		}
		sched.Start()
		defer sched.Stop()
	}

	r := resolver.NewResolver(
		kv,
		catalog,
		portfolioService,
		medicationService,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- api.StartApi(cfg.Port, r, logger)
	}()
	logger.Info().
		Int("port", cfg.Port).
		Str("storage", string(cfg.StorageBackend)).
		Bool("drive_backup", driveRepository != nil).
		Msg("folio api listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("api stopped")
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"flightops/internal/infrastructure/config"
	"flightops/internal/infrastructure/persistence"
	"flightops/internal/interface/repository"
	"flightops/internal/usecase"
	"flightops/pkg/logger"
	"flightops/pkg/metrics"
)

// App holds the services a command runs against
type App struct {
	Config       *config.Config
	Logger       *logger.ZapLogger
	Destinations *usecase.DestinationRegistry
	Pilots       *usecase.PilotRegistry
	Scheduler    *usecase.FlightScheduler
	Statistics   *usecase.StatisticsService
	Seeder       *usecase.Seeder

	db       *gorm.DB
	registry *prometheus.Registry
}

// NewApp opens and migrates the store, then wires the services
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewLogger(cfg.LogLevel)

	db, err := persistence.NewDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := persistence.Migrate(db.WithContext(ctx), cfg.Database.Driver, log); err != nil {
		_ = persistence.Close(db)
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(cfg.MetricsNamespace, registry)
	uow := repository.NewGormUnitOfWork(db)

	app := &App{
		Config:       cfg,
		Logger:       log,
		Destinations: usecase.NewDestinationRegistry(uow, log, m),
		Pilots:       usecase.NewPilotRegistry(uow, log, m),
		Scheduler:    usecase.NewFlightScheduler(uow, log, m),
		Statistics:   usecase.NewStatisticsService(repository.NewGormStatisticsRepository(db), log, m),
		db:           db,
		registry:     registry,
	}
	app.Seeder = usecase.NewSeeder(uow, log, m)

	return app, nil
}

// MigrationVersion reports the applied schema version
func (a *App) MigrationVersion() (int64, error) {
	return persistence.MigrationVersion(a.db, a.Config.Database.Driver)
}

// Close writes the metrics textfile when configured and releases the store
func (a *App) Close() error {
	var firstErr error
	if a.Config.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(a.Config.MetricsTextfile, a.registry); err != nil {
			a.Logger.Error("Failed to write metrics textfile", "path", a.Config.MetricsTextfile, "error", err)
			firstErr = fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	if err := persistence.Close(a.db); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close database: %w", err)
	}
	_ = a.Logger.Sync()
	return firstErr
}

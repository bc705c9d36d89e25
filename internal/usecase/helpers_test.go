package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/repository"
	"flightops/internal/infrastructure/config"
	"flightops/internal/infrastructure/persistence"
	gormrepo "flightops/internal/interface/repository"
	"flightops/pkg/logger"
	"flightops/pkg/metrics"
)

// fixture wires every service over a fresh in-memory store
type fixture struct {
	uow          repository.UnitOfWork
	metrics      *metrics.Metrics
	destinations *DestinationRegistry
	pilots       *PilotRegistry
	scheduler    *FlightScheduler
	stats        *StatisticsService
	seeder       *Seeder
}

var testNow = time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.NewNopLogger()
	db, err := persistence.NewDatabase(config.Database{Driver: config.DriverSQLite, Path: ":memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.Close(db) })
	require.NoError(t, persistence.Migrate(db, config.DriverSQLite, log))

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	uow := gormrepo.NewGormUnitOfWork(db)

	f := &fixture{
		uow:          uow,
		metrics:      m,
		destinations: NewDestinationRegistry(uow, log, m),
		pilots:       NewPilotRegistry(uow, log, m),
		scheduler:    NewFlightScheduler(uow, log, m),
		stats:        NewStatisticsService(gormrepo.NewGormStatisticsRepository(db), log, m),
	}
	clock := func() time.Time { return testNow }
	f.pilots.now = clock
	f.scheduler.now = clock
	f.seeder = NewSeeder(uow, log, m)
	return f
}

// at returns testNow's date at hour:00 UTC
func at(hour int) time.Time {
	return time.Date(2025, 3, 14, hour, 0, 0, 0, time.UTC)
}

func (f *fixture) addDestination(t *testing.T, code, city string) int64 {
	t.Helper()
	id, err := f.destinations.Create(context.Background(), &entity.Destination{Code: code, City: city, Country: "Testland"})
	require.NoError(t, err)
	return id
}

func (f *fixture) addPilot(t *testing.T, license string, years int) int64 {
	t.Helper()
	id, err := f.pilots.Create(context.Background(), &entity.Pilot{
		FirstName:       "Pat",
		LastName:        license,
		LicenseNumber:   license,
		ExperienceYears: years,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) addFlight(t *testing.T, number string, destinationID int64, from, to time.Time) int64 {
	t.Helper()
	id, err := f.scheduler.Create(context.Background(), &entity.Flight{
		FlightNumber:  number,
		DestinationID: destinationID,
		DepartureTime: from,
		ArrivalTime:   to,
		AircraftType:  "Boeing 737",
		Capacity:      180,
	})
	require.NoError(t, err)
	return id
}

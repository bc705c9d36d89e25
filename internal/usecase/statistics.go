package usecase

import (
	"context"
	"time"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/repository"
	"flightops/pkg/logger"
	"flightops/pkg/metrics"
)

// StatisticsService builds the read-only summary over all registries
type StatisticsService struct {
	stats repository.StatisticsRepository
	observer
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(stats repository.StatisticsRepository, logger logger.Logger, metrics *metrics.Metrics) *StatisticsService {
	return &StatisticsService{
		stats:    stats,
		observer: observer{logger: logger.With("component", "statistics"), metrics: metrics},
	}
}

// Summary returns totals, status counts, destination counts, pilot
// workloads and aircraft usage. topDestinations limits the destination
// list when positive.
func (s *StatisticsService) Summary(ctx context.Context, topDestinations int) (summary *entity.Statistics, err error) {
	start := time.Now()
	defer func() { s.done(opStatistics, start, err) }()

	summary = &entity.Statistics{}

	if summary.Totals, err = s.stats.Totals(ctx); err != nil {
		return nil, err
	}
	if summary.ByStatus, err = s.stats.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if summary.Destinations, err = s.stats.CountByDestination(ctx, topDestinations); err != nil {
		return nil, err
	}
	if summary.Pilots, err = s.stats.PilotWorkloads(ctx); err != nil {
		return nil, err
	}
	if summary.AircraftTypes, err = s.stats.AircraftUsage(ctx); err != nil {
		return nil, err
	}

	s.logger.Debug("Statistics computed",
		"flights", summary.Totals.Flights,
		"pilots", summary.Totals.Pilots,
		"destinations", summary.Totals.Destinations,
	)
	return summary, nil
}

package repository

import (
	"context"

	"flightops/internal/domain/entity"
)

// StatisticsRepository defines the read-only aggregation queries
type StatisticsRepository interface {
	Totals(ctx context.Context) (entity.Totals, error)
	CountByStatus(ctx context.Context) ([]entity.StatusCount, error)
	CountByDestination(ctx context.Context, limit int) ([]entity.DestinationCount, error)
	PilotWorkloads(ctx context.Context) ([]entity.PilotWorkload, error)
	AircraftUsage(ctx context.Context) ([]entity.AircraftUsage, error)
}

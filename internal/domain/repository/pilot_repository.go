package repository

import (
	"context"

	"flightops/internal/domain/entity"
)

// PilotRepository defines the interface for pilot storage operations
type PilotRepository interface {
	Create(ctx context.Context, pilot *entity.Pilot) error
	GetByID(ctx context.Context, id int64) (*entity.Pilot, error)
	GetByLicense(ctx context.Context, license string) (*entity.Pilot, error)
	Update(ctx context.Context, pilot *entity.Pilot) error
	List(ctx context.Context, filter entity.PilotFilter) ([]*entity.Pilot, error)
	Delete(ctx context.Context, id int64) error
}

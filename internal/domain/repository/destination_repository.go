package repository

import (
	"context"

	"flightops/internal/domain/entity"
)

// DestinationRepository defines the interface for destination storage operations
type DestinationRepository interface {
	Create(ctx context.Context, destination *entity.Destination) error
	GetByID(ctx context.Context, id int64) (*entity.Destination, error)
	GetByCode(ctx context.Context, code string) (*entity.Destination, error)
	Update(ctx context.Context, destination *entity.Destination) error
	List(ctx context.Context, filter entity.DestinationFilter) ([]*entity.Destination, error)
	Delete(ctx context.Context, id int64) error
}

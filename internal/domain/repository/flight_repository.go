package repository

import (
	"context"
	"time"

	"flightops/internal/domain/entity"
)

// FlightRepository defines the interface for flight storage operations
type FlightRepository interface {
	Create(ctx context.Context, flight *entity.Flight) error
	GetByID(ctx context.Context, id int64) (*entity.Flight, error)
	GetByNumber(ctx context.Context, number string) (*entity.Flight, error)
	Update(ctx context.Context, flight *entity.Flight) error
	Delete(ctx context.Context, id int64) error

	// Find returns flights matching criteria ordered by departure ascending
	Find(ctx context.Context, criteria entity.FlightCriteria) ([]*entity.Flight, error)

	// FindPilotFlightsInWindow returns the pilot's non-cancelled flights whose
	// window intersects w, leaving out excludeFlightID
	FindPilotFlightsInWindow(ctx context.Context, pilotID int64, w entity.TimeRange, excludeFlightID int64) ([]*entity.Flight, error)

	CountByDestination(ctx context.Context, destinationID int64) (int64, error)
	CountPilotFlightsSince(ctx context.Context, pilotID int64, since time.Time) (int64, error)

	// DetachPilot clears the pilot reference on every flight of the pilot
	DetachPilot(ctx context.Context, pilotID int64) error
}

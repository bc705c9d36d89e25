package usecase

import (
	"context"
	"time"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/errs"
	"flightops/internal/domain/repository"
	"flightops/pkg/logger"
	"flightops/pkg/metrics"
)

// DestinationRegistry manages destination records
type DestinationRegistry struct {
	uow repository.UnitOfWork
	observer
}

// NewDestinationRegistry creates a new destination registry
func NewDestinationRegistry(uow repository.UnitOfWork, logger logger.Logger, metrics *metrics.Metrics) *DestinationRegistry {
	return &DestinationRegistry{
		uow:      uow,
		observer: observer{logger: logger.With("component", "destinations"), metrics: metrics},
	}
}

// Create registers a destination and returns its ID. A duplicate airport
// code is a validation error.
func (r *DestinationRegistry) Create(ctx context.Context, destination *entity.Destination) (id int64, err error) {
	start := time.Now()
	if destination == nil {
		err = errs.Validation("destination.create", "destination is required")
		r.done(opDestinationCreate, start, err)
		return 0, err
	}
	defer func() { r.done(opDestinationCreate, start, err, "code", destination.Code) }()

	err = r.uow.Do(ctx, func(repos repository.Repositories) error {
		return createDestination(ctx, repos, destination)
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("Destination created", "id", destination.ID, "code", destination.Code)
	return destination.ID, nil
}

// Get returns a destination by ID
func (r *DestinationRegistry) Get(ctx context.Context, id int64) (destination *entity.Destination, err error) {
	start := time.Now()
	defer func() { r.done(opDestinationGet, start, err, "id", id) }()

	return r.uow.Reader().Destinations.GetByID(ctx, id)
}

// GetByCode returns a destination by airport code
func (r *DestinationRegistry) GetByCode(ctx context.Context, code string) (destination *entity.Destination, err error) {
	start := time.Now()
	defer func() { r.done(opDestinationGet, start, err, "code", code) }()

	code = entity.NormalizeAirportCode(code)
	if err := entity.ValidateAirportCode(code); err != nil {
		return nil, err
	}
	return r.uow.Reader().Destinations.GetByCode(ctx, code)
}

// Update changes the set fields of a destination and returns the result
func (r *DestinationRegistry) Update(ctx context.Context, id int64, update entity.DestinationUpdate) (destination *entity.Destination, err error) {
	start := time.Now()
	defer func() { r.done(opDestinationUpdate, start, err, "id", id) }()

	err = r.uow.Do(ctx, func(repos repository.Repositories) error {
		current, err := repos.Destinations.GetByID(ctx, id)
		if err != nil {
			return err
		}

		update.Apply(current)
		current.Normalize()
		if err := current.Validate(); err != nil {
			return err
		}
		if err := ensureCodeFree(ctx, repos.Destinations, current.Code, id); err != nil {
			return err
		}
		if err := repos.Destinations.Update(ctx, current); err != nil {
			return err
		}

		destination = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Destination updated", "id", id, "code", destination.Code)
	return destination, nil
}

// List returns destinations with flight counts, ordered by country and city
func (r *DestinationRegistry) List(ctx context.Context, filter entity.DestinationFilter) (destinations []*entity.Destination, err error) {
	start := time.Now()
	defer func() { r.done(opDestinationList, start, err) }()

	return r.uow.Reader().Destinations.List(ctx, filter)
}

// Delete removes a destination. It is refused while flights reference it.
func (r *DestinationRegistry) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { r.done(opDestinationDelete, start, err, "id", id) }()

	err = r.uow.Do(ctx, func(repos repository.Repositories) error {
		destination, err := repos.Destinations.GetByID(ctx, id)
		if err != nil {
			return err
		}

		count, err := repos.Flights.CountByDestination(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return errs.Conflict("destination.delete", "destination %s is referenced by %d flight(s)", destination.Code, count)
		}

		return repos.Destinations.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	r.logger.Info("Destination deleted", "id", id)
	return nil
}

// ensureCodeFree fails when another destination than selfID uses code
// createDestination validates and stores destination within repos' transaction
func createDestination(ctx context.Context, repos repository.Repositories, destination *entity.Destination) error {
	destination.Normalize()
	if err := destination.Validate(); err != nil {
		return err
	}
	if err := ensureCodeFree(ctx, repos.Destinations, destination.Code, 0); err != nil {
		return err
	}
	return repos.Destinations.Create(ctx, destination)
}

func ensureCodeFree(ctx context.Context, destinations repository.DestinationRepository, code string, selfID int64) error {
	existing, err := destinations.GetByCode(ctx, code)
	if errs.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return errs.Validation("destination.code", "airport code %s already exists", code)
	}
	return nil
}

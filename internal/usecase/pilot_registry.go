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

// PilotRegistry manages pilot records and their schedules
type PilotRegistry struct {
	uow repository.UnitOfWork
	now func() time.Time
	observer
}

// NewPilotRegistry creates a new pilot registry
func NewPilotRegistry(uow repository.UnitOfWork, logger logger.Logger, metrics *metrics.Metrics) *PilotRegistry {
	return &PilotRegistry{
		uow:      uow,
		now:      time.Now,
		observer: observer{logger: logger.With("component", "pilots"), metrics: metrics},
	}
}

// Create registers a pilot and returns its ID
func (r *PilotRegistry) Create(ctx context.Context, pilot *entity.Pilot) (id int64, err error) {
	start := time.Now()
	if pilot == nil {
		err = errs.Validation("pilot.create", "pilot is required")
		r.done(opPilotCreate, start, err)
		return 0, err
	}
	defer func() { r.done(opPilotCreate, start, err, "license", pilot.LicenseNumber) }()

	err = r.uow.Do(ctx, func(repos repository.Repositories) error {
		return createPilot(ctx, repos, pilot)
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("Pilot created", "id", pilot.ID, "license", pilot.LicenseNumber)
	return pilot.ID, nil
}

// Get returns a pilot by ID
func (r *PilotRegistry) Get(ctx context.Context, id int64) (pilot *entity.Pilot, err error) {
	start := time.Now()
	defer func() { r.done(opPilotGet, start, err, "id", id) }()

	return r.uow.Reader().Pilots.GetByID(ctx, id)
}

// Update changes the set fields of a pilot and returns the result
func (r *PilotRegistry) Update(ctx context.Context, id int64, update entity.PilotUpdate) (pilot *entity.Pilot, err error) {
	start := time.Now()
	defer func() { r.done(opPilotUpdate, start, err, "id", id) }()

	err = r.uow.Do(ctx, func(repos repository.Repositories) error {
		current, err := repos.Pilots.GetByID(ctx, id)
		if err != nil {
			return err
		}

		update.Apply(current)
		current.Normalize()
		if err := current.Validate(); err != nil {
			return err
		}
		if err := ensureLicenseFree(ctx, repos.Pilots, current.LicenseNumber, id); err != nil {
			return err
		}
		if err := repos.Pilots.Update(ctx, current); err != nil {
			return err
		}

		pilot = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Pilot updated", "id", id)
	return pilot, nil
}

// List returns pilots, optionally only those in a status
func (r *PilotRegistry) List(ctx context.Context, filter entity.PilotFilter) (pilots []*entity.Pilot, err error) {
	start := time.Now()
	defer func() { r.done(opPilotList, start, err) }()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errs.Validation("pilot.list", "unknown pilot status %q", filter.Status)
	}
	return r.uow.Reader().Pilots.List(ctx, filter)
}

// Delete removes a pilot. It is refused while the pilot has flights
// departing now or later; past flights are detached from the pilot.
func (r *PilotRegistry) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { r.done(opPilotDelete, start, err, "id", id) }()

	err = r.uow.Do(ctx, func(repos repository.Repositories) error {
		pilot, err := repos.Pilots.GetByID(ctx, id)
		if err != nil {
			return err
		}

		upcoming, err := repos.Flights.CountPilotFlightsSince(ctx, id, r.now())
		if err != nil {
			return err
		}
		if upcoming > 0 {
			return errs.Conflict("pilot.delete", "pilot %s has %d upcoming flight(s)", pilot.FullName(), upcoming)
		}

		if err := repos.Flights.DetachPilot(ctx, id); err != nil {
			return err
		}
		return repos.Pilots.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	r.logger.Info("Pilot deleted", "id", id)
	return nil
}

// Schedule returns the pilot's flights departing within period, ordered by
// departure, with the resulting workload
func (r *PilotRegistry) Schedule(ctx context.Context, pilotID int64, period entity.TimeRange) (schedule *entity.PilotSchedule, err error) {
	start := time.Now()
	defer func() { r.done(opPilotSchedule, start, err, "id", pilotID) }()

	if !period.Valid() {
		return nil, errs.Validation("pilot.schedule", "period start must precede its end")
	}

	repos := r.uow.Reader()
	pilot, err := repos.Pilots.GetByID(ctx, pilotID)
	if err != nil {
		return nil, err
	}

	flights, err := repos.Flights.Find(ctx, entity.FlightCriteria{PilotID: pilotID, Departure: period.UTC()})
	if err != nil {
		return nil, err
	}

	return &entity.PilotSchedule{
		Pilot:    pilot,
		Range:    period,
		Flights:  flights,
		Workload: entity.ComputeWorkload(flights),
	}, nil
}

// ensureLicenseFree fails when another pilot than selfID holds license
func createPilot(ctx context.Context, repos repository.Repositories, pilot *entity.Pilot) error {
	pilot.Normalize()
	if err := pilot.Validate(); err != nil {
		return err
	}
	if err := ensureLicenseFree(ctx, repos.Pilots, pilot.LicenseNumber, 0); err != nil {
		return err
	}
	return repos.Pilots.Create(ctx, pilot)
}

func ensureLicenseFree(ctx context.Context, pilots repository.PilotRepository, license string, selfID int64) error {
	existing, err := pilots.GetByLicense(ctx, license)
	if errs.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return errs.Validation("pilot.license", "license number %s already registered", license)
	}
	return nil
}

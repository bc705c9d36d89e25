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

// FlightScheduler creates flights and staffs them with pilots without
// letting a pilot fly two overlapping flights
type FlightScheduler struct {
	uow repository.UnitOfWork
	now func() time.Time
	observer
}

// NewFlightScheduler creates a new flight scheduler
func NewFlightScheduler(uow repository.UnitOfWork, logger logger.Logger, metrics *metrics.Metrics) *FlightScheduler {
	return &FlightScheduler{
		uow:      uow,
		now:      time.Now,
		observer: observer{logger: logger.With("component", "scheduler"), metrics: metrics},
	}
}

// Create schedules a flight and returns its ID. An unknown destination or
// pilot is a validation error; a pilot double booking is a conflict.
func (s *FlightScheduler) Create(ctx context.Context, flight *entity.Flight) (id int64, err error) {
	start := time.Now()
	if flight == nil {
		err = errs.Validation("flight.create", "flight is required")
		s.done(opFlightCreate, start, err)
		return 0, err
	}
	defer func() { s.done(opFlightCreate, start, err, "flight", flight.FlightNumber) }()

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		return createFlight(ctx, repos, flight)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Flight scheduled",
		"id", flight.ID,
		"flight", flight.FlightNumber,
		"departure", flight.DepartureTime,
		"arrival", flight.ArrivalTime,
	)
	return flight.ID, nil
}

// AssignPilot staffs a flight. Assigning the pilot already on the flight is
// a no-op.
func (s *FlightScheduler) AssignPilot(ctx context.Context, flightID, pilotID int64) (err error) {
	start := time.Now()
	defer func() { s.done(opFlightAssign, start, err, "flightId", flightID, "pilotId", pilotID) }()

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		flight, err := repos.Flights.GetByID(ctx, flightID)
		if err != nil {
			return err
		}
		pilot, err := repos.Pilots.GetByID(ctx, pilotID)
		if err != nil {
			return err
		}
		if flight.PilotID != nil && *flight.PilotID == pilotID {
			return nil
		}

		if err := checkAssignment(ctx, repos.Flights, flight, pilot); err != nil {
			return err
		}

		flight.PilotID = &pilot.ID
		return repos.Flights.Update(ctx, flight)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Pilot assigned", "flightId", flightID, "pilotId", pilotID)
	return nil
}

// UnassignPilot removes the pilot from a flight
func (s *FlightScheduler) UnassignPilot(ctx context.Context, flightID int64) (err error) {
	start := time.Now()
	defer func() { s.done(opFlightUnassign, start, err, "flightId", flightID) }()

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		flight, err := repos.Flights.GetByID(ctx, flightID)
		if err != nil {
			return err
		}
		if flight.PilotID == nil {
			return nil
		}
		flight.PilotID = nil
		return repos.Flights.Update(ctx, flight)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Pilot unassigned", "flightId", flightID)
	return nil
}

// Update changes the set fields of a flight. When times, status or pilot
// change, the assignment is checked again.
func (s *FlightScheduler) Update(ctx context.Context, id int64, update entity.FlightUpdate) (flight *entity.Flight, err error) {
	start := time.Now()
	defer func() { s.done(opFlightUpdate, start, err, "id", id) }()

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		updated, err := updateFlight(ctx, repos, id, update)
		flight = updated
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Flight updated", "id", id, "flight", flight.FlightNumber, "status", flight.Status)
	return flight, nil
}

// Get returns a flight by ID
func (s *FlightScheduler) Get(ctx context.Context, id int64) (flight *entity.Flight, err error) {
	start := time.Now()
	defer func() { s.done(opFlightGet, start, err, "id", id) }()

	return s.uow.Reader().Flights.GetByID(ctx, id)
}

// GetByNumber returns a flight by its flight number
func (s *FlightScheduler) GetByNumber(ctx context.Context, number string) (flight *entity.Flight, err error) {
	start := time.Now()
	defer func() { s.done(opFlightGet, start, err, "flight", number) }()

	lookup := entity.Flight{FlightNumber: number}
	lookup.Normalize()
	if lookup.FlightNumber == "" {
		return nil, errs.Validation("flight.get", "flight number is required")
	}
	return s.uow.Reader().Flights.GetByNumber(ctx, lookup.FlightNumber)
}

// Query returns the flights matching criteria ordered by departure
func (s *FlightScheduler) Query(ctx context.Context, criteria entity.FlightCriteria) (flights []*entity.Flight, err error) {
	start := time.Now()
	defer func() { s.done(opFlightQuery, start, err) }()

	return s.find(ctx, criteria)
}

// Upcoming returns the flights departing within window from now
func (s *FlightScheduler) Upcoming(ctx context.Context, window time.Duration) (flights []*entity.Flight, err error) {
	start := time.Now()
	defer func() { s.done(opFlightUpcoming, start, err, "window", window) }()

	if window <= 0 {
		return nil, errs.Validation("flight.upcoming", "window must be positive, got %s", window)
	}
	now := s.now().UTC()
	return s.find(ctx, entity.FlightCriteria{Departure: entity.TimeRange{From: now, To: now.Add(window)}})
}

func (s *FlightScheduler) find(ctx context.Context, criteria entity.FlightCriteria) ([]*entity.Flight, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return s.uow.Reader().Flights.Find(ctx, criteria)
}

// Delete removes a flight
func (s *FlightScheduler) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { s.done(opFlightDelete, start, err, "id", id) }()

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Flights.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Flight deleted", "id", id)
	return nil
}

// createFlight validates and stores flight within repos' transaction
func createFlight(ctx context.Context, repos repository.Repositories, flight *entity.Flight) error {
	flight.Normalize()
	if err := flight.Validate(); err != nil {
		return err
	}
	if err := ensureFlightNumberFree(ctx, repos.Flights, flight.FlightNumber, 0); err != nil {
		return err
	}
	if err := ensureDestination(ctx, repos.Destinations, flight.DestinationID); err != nil {
		return err
	}
	if flight.PilotID != nil {
		pilot, err := referencedPilot(ctx, repos.Pilots, *flight.PilotID)
		if err != nil {
			return err
		}
		if err := checkAssignment(ctx, repos.Flights, flight, pilot); err != nil {
			return err
		}
	}
	return repos.Flights.Create(ctx, flight)
}

// updateFlight applies update to flight id within repos' transaction. When
// times, status or pilot change, the assignment is checked again.
func updateFlight(ctx context.Context, repos repository.Repositories, id int64, update entity.FlightUpdate) (*entity.Flight, error) {
	current, err := repos.Flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousPilot := current.PilotID

	update.Apply(current)
	current.Normalize()
	if err := current.Validate(); err != nil {
		return nil, err
	}

	if update.FlightNumber != nil {
		if err := ensureFlightNumberFree(ctx, repos.Flights, current.FlightNumber, id); err != nil {
			return nil, err
		}
	}
	if update.DestinationID != nil {
		if err := ensureDestination(ctx, repos.Destinations, current.DestinationID); err != nil {
			return nil, err
		}
	}

	if current.PilotID != nil && update.SchedulingChanged() {
		pilot, err := referencedPilot(ctx, repos.Pilots, *current.PilotID)
		if err != nil {
			return nil, err
		}
		if samePilot(previousPilot, current.PilotID) {
			err = checkOverlap(ctx, repos.Flights, current, pilot)
		} else {
			err = checkAssignment(ctx, repos.Flights, current, pilot)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := repos.Flights.Update(ctx, current); err != nil {
		return nil, err
	}

	// reload for the joined destination and pilot columns
	return repos.Flights.GetByID(ctx, id)
}

// checkAssignment applies every rule for putting pilot on flight
func checkAssignment(ctx context.Context, flights repository.FlightRepository, flight *entity.Flight, pilot *entity.Pilot) error {
	const op = "flight.assign"
	if !flight.Status.Staffable() {
		return errs.Conflict(op, "flight %s is %s and cannot be staffed", flight.FlightNumber, flight.Status)
	}
	if pilot.Status != entity.PilotAvailable {
		return errs.Conflict(op, "pilot %s is %s", pilot.FullName(), pilot.Status)
	}
	if pilot.ExperienceYears < flight.MinExperienceYears {
		return errs.Validation(op, "pilot %s has %d years of experience, flight %s requires %d",
			pilot.FullName(), pilot.ExperienceYears, flight.FlightNumber, flight.MinExperienceYears)
	}
	return checkOverlap(ctx, flights, flight, pilot)
}

// checkOverlap fails when pilot already flies during flight's window.
// Cancelled flights neither block nor are blocked.
func checkOverlap(ctx context.Context, flights repository.FlightRepository, flight *entity.Flight, pilot *entity.Pilot) error {
	if flight.Status == entity.FlightCancelled {
		return nil
	}

	window := flight.Window()
	candidates, err := flights.FindPilotFlightsInWindow(ctx, pilot.ID, window, flight.ID)
	if err != nil {
		return err
	}
	if other := entity.FindOverlap(window, candidates); other != nil {
		return errs.Conflict("flight.assign", "pilot %s already flies %s from %s to %s",
			pilot.FullName(), other.FlightNumber,
			other.DepartureTime.Format(time.RFC3339), other.ArrivalTime.Format(time.RFC3339))
	}
	return nil
}

// ensureDestination turns a missing destination into a validation error
func ensureDestination(ctx context.Context, destinations repository.DestinationRepository, id int64) error {
	_, err := destinations.GetByID(ctx, id)
	if errs.IsNotFound(err) {
		return errs.Validation("flight.destination", "destination %d does not exist", id)
	}
	return err
}

// referencedPilot loads a pilot referenced from flight data
func referencedPilot(ctx context.Context, pilots repository.PilotRepository, id int64) (*entity.Pilot, error) {
	pilot, err := pilots.GetByID(ctx, id)
	if errs.IsNotFound(err) {
		return nil, errs.Validation("flight.pilot", "pilot %d does not exist", id)
	}
	return pilot, err
}

func ensureFlightNumberFree(ctx context.Context, flights repository.FlightRepository, number string, selfID int64) error {
	existing, err := flights.GetByNumber(ctx, number)
	if errs.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return errs.Validation("flight.number", "flight number %s already exists", number)
	}
	return nil
}

func samePilot(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

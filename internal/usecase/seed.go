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

// SeedResult counts the records created by Seed
type SeedResult struct {
	Destinations int
	Pilots       int
	Flights      int
}

// Seeder loads the sample data set in a single transaction, applying the
// same rules as the registries
type Seeder struct {
	uow          repository.UnitOfWork
	destinations []entity.Destination
	pilots       []entity.Pilot
	flights      []seedFlight
	observer
}

// NewSeeder creates a new seeder
func NewSeeder(uow repository.UnitOfWork, logger logger.Logger, metrics *metrics.Metrics) *Seeder {
	return &Seeder{
		uow:          uow,
		destinations: seedDestinations,
		pilots:       seedPilots,
		flights:      seedFlights,
		observer:     observer{logger: logger.With("component", "seed"), metrics: metrics},
	}
}

type seedFlight struct {
	number      string
	departure   time.Duration
	arrival     time.Duration
	status      entity.FlightStatus
	aircraft    string
	capacity    int
	pilot       int
	destination int
}

var seedDestinations = []entity.Destination{
	{Code: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom", Timezone: "GMT+0", TerminalInfo: "Terminal 5"},
	{Code: "JFK", Name: "John F. Kennedy", City: "New York", Country: "United States", Timezone: "EST-5", TerminalInfo: "Terminal 4"},
	{Code: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France", Timezone: "CET+1", TerminalInfo: "Terminal 2E"},
	{Code: "DXB", Name: "Dubai International", City: "Dubai", Country: "United Arab Emirates", Timezone: "GST+4", TerminalInfo: "Terminal 3"},
	{Code: "NRT", Name: "Narita", City: "Tokyo", Country: "Japan", Timezone: "JST+9", TerminalInfo: "Terminal 1"},
	{Code: "LAX", Name: "Los Angeles International", City: "Los Angeles", Country: "United States", Timezone: "PST-8", TerminalInfo: "Terminal B"},
	{Code: "FRA", Name: "Frankfurt", City: "Frankfurt", Country: "Germany", Timezone: "CET+1", TerminalInfo: "Terminal 1"},
	{Code: "SIN", Name: "Changi", City: "Singapore", Country: "Singapore", Timezone: "SGT+8", TerminalInfo: "Terminal 3"},
	{Code: "SYD", Name: "Kingsford Smith", City: "Sydney", Country: "Australia", Timezone: "AEST+10", TerminalInfo: "Terminal 1"},
	{Code: "HKG", Name: "Hong Kong International", City: "Hong Kong", Country: "Hong Kong", Timezone: "HKT+8", TerminalInfo: "Terminal 1"},
	{Code: "MAD", Name: "Barajas", City: "Madrid", Country: "Spain", Timezone: "CET+1", TerminalInfo: "Terminal 4"},
	{Code: "AMS", Name: "Schiphol", City: "Amsterdam", Country: "Netherlands", Timezone: "CET+1", TerminalInfo: "Terminal 3"},
	{Code: "ZUR", Name: "Zurich", City: "Zurich", Country: "Switzerland", Timezone: "CET+1", TerminalInfo: "Terminal A"},
	{Code: "BOM", Name: "Chhatrapati Shivaji", City: "Mumbai", Country: "India", Timezone: "IST+5:30", TerminalInfo: "Terminal 2"},
	{Code: "YYZ", Name: "Pearson", City: "Toronto", Country: "Canada", Timezone: "EST-5", TerminalInfo: "Terminal 1"},
}

var seedPilots = []entity.Pilot{
	{FirstName: "John", LastName: "Smith", LicenseNumber: "ATP001234", ExperienceYears: 15, Phone: "+44-20-1234-5678"},
	{FirstName: "Sarah", LastName: "Johnson", LicenseNumber: "ATP002345", ExperienceYears: 12, Phone: "+44-20-2345-6789"},
	{FirstName: "Michael", LastName: "Brown", LicenseNumber: "ATP003456", ExperienceYears: 8, Phone: "+44-20-3456-7890"},
	{FirstName: "Emma", LastName: "Davis", LicenseNumber: "ATP004567", ExperienceYears: 10, Phone: "+44-20-4567-8901"},
	{FirstName: "James", LastName: "Wilson", LicenseNumber: "ATP005678", ExperienceYears: 20, Phone: "+44-20-5678-9012"},
	{FirstName: "Lisa", LastName: "Taylor", LicenseNumber: "ATP006789", ExperienceYears: 7, Phone: "+44-20-6789-0123"},
	{FirstName: "David", LastName: "Anderson", LicenseNumber: "ATP007890", ExperienceYears: 18, Phone: "+44-20-7890-1234"},
	{FirstName: "Rachel", LastName: "Thomas", LicenseNumber: "ATP008901", ExperienceYears: 9, Phone: "+44-20-8901-2345"},
	{FirstName: "Robert", LastName: "Jackson", LicenseNumber: "ATP009012", ExperienceYears: 13, Phone: "+44-20-9012-3456"},
	{FirstName: "Helen", LastName: "White", LicenseNumber: "ATP010123", ExperienceYears: 11, Phone: "+44-20-0123-4567"},
	{FirstName: "Mark", LastName: "Harris", LicenseNumber: "ATP011234", ExperienceYears: 16, Phone: "+44-20-1234-5670"},
	{FirstName: "Anna", LastName: "Martin", LicenseNumber: "ATP012345", ExperienceYears: 6, Phone: "+44-20-2345-6701"},
}

const day = 24 * time.Hour

// pilot and destination are 1-based positions in the lists above
var seedFlights = []seedFlight{
	{"BA101", 2 * time.Hour, 4 * time.Hour, entity.FlightScheduled, "Boeing 737", 180, 1, 1},
	{"BA102", 6 * time.Hour, 14 * time.Hour, entity.FlightScheduled, "Airbus A350", 300, 2, 2},
	{"BA103", 10 * time.Hour, 12 * time.Hour, entity.FlightDelayed, "Boeing 777", 350, 3, 3},
	{"BA104", 14 * time.Hour, 22 * time.Hour, entity.FlightScheduled, "Airbus A380", 500, 4, 4},
	{"BA105", 18 * time.Hour, 30 * time.Hour, entity.FlightScheduled, "Boeing 787", 250, 5, 5},
	{"BA106", day + 2*time.Hour, day + 14*time.Hour, entity.FlightScheduled, "Airbus A320", 150, 6, 6},
	{"BA107", day + 6*time.Hour, day + 8*time.Hour, entity.FlightScheduled, "Boeing 737", 180, 7, 7},
	{"BA108", day + 10*time.Hour, day + 18*time.Hour, entity.FlightCancelled, "Airbus A330", 280, 8, 8},
	{"BA109", day + 14*time.Hour, 2*day + 2*time.Hour, entity.FlightScheduled, "Boeing 777", 350, 9, 9},
	{"BA110", day + 18*time.Hour, 2*day + 6*time.Hour, entity.FlightScheduled, "Airbus A350", 300, 10, 10},
	{"BA111", 2*day + 2*time.Hour, 2*day + 4*time.Hour, entity.FlightScheduled, "Boeing 737", 180, 11, 11},
	{"BA112", 2*day + 6*time.Hour, 2*day + 8*time.Hour, entity.FlightScheduled, "Airbus A320", 150, 12, 12},
	{"BA113", 2*day + 10*time.Hour, 2*day + 12*time.Hour, entity.FlightScheduled, "Boeing 787", 250, 1, 13},
	{"BA114", 2*day + 14*time.Hour, 3*day + 2*time.Hour, entity.FlightScheduled, "Airbus A380", 500, 2, 14},
	{"BA115", 2*day + 18*time.Hour, 3*day + 6*time.Hour, entity.FlightDelayed, "Boeing 777", 350, 3, 15},
}

// Seed loads the sample destinations, pilots and flights. Flight times are
// offsets from base. The store must be empty; on any failure nothing is
// written.
func (s *Seeder) Seed(ctx context.Context, base time.Time) (result SeedResult, err error) {
	start := time.Now()
	defer func() { s.done(opSeed, start, err) }()

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		result = SeedResult{}
		return s.load(ctx, repos, base, &result)
	})
	if err != nil {
		return SeedResult{}, err
	}

	s.logger.Info("Sample data loaded",
		"destinations", result.Destinations,
		"pilots", result.Pilots,
		"flights", result.Flights,
	)
	return result, nil
}

func (s *Seeder) load(ctx context.Context, repos repository.Repositories, base time.Time, result *SeedResult) error {
	existing, err := repos.Destinations.List(ctx, entity.DestinationFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errs.Conflict("seed", "store already holds %d destination(s)", len(existing))
	}

	destinationIDs := make([]int64, 0, len(s.destinations))
	for _, d := range s.destinations {
		d := d
		if err := createDestination(ctx, repos, &d); err != nil {
			return err
		}
		destinationIDs = append(destinationIDs, d.ID)
		result.Destinations++
	}

	pilotIDs := make([]int64, 0, len(s.pilots))
	for _, p := range s.pilots {
		p := p
		if err := createPilot(ctx, repos, &p); err != nil {
			return err
		}
		pilotIDs = append(pilotIDs, p.ID)
		result.Pilots++
	}

	for _, sf := range s.flights {
		pilotID := pilotIDs[sf.pilot-1]
		flight := &entity.Flight{
			FlightNumber:  sf.number,
			DestinationID: destinationIDs[sf.destination-1],
			PilotID:       &pilotID,
			DepartureTime: base.Add(sf.departure),
			ArrivalTime:   base.Add(sf.arrival),
			Status:        entity.FlightScheduled,
			AircraftType:  sf.aircraft,
			Capacity:      sf.capacity,
		}
		if err := createFlight(ctx, repos, flight); err != nil {
			return err
		}
		// staffed first so cancelled flights keep their pilot
		if sf.status != entity.FlightScheduled {
			status := sf.status
			if _, err := updateFlight(ctx, repos, flight.ID, entity.FlightUpdate{Status: &status}); err != nil {
				return err
			}
		}
		result.Flights++
	}
	return nil
}

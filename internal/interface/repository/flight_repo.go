package repository

import (
	"context"
	"time"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/errs"
	"flightops/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FlightNumber       string    `gorm:"column:flight_number"`
	DepartureTime      time.Time `gorm:"column:departure_time"`
	ArrivalTime        time.Time `gorm:"column:arrival_time"`
	Status             string    `gorm:"column:status"`
	AircraftType       string    `gorm:"column:aircraft_type"`
	Capacity           int       `gorm:"column:capacity"`
	MinExperienceYears int       `gorm:"column:min_experience_years"`
	PilotID            *int64    `gorm:"column:pilot_id"`
	DestinationID      int64     `gorm:"column:destination_id"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

// flightRow is a flight joined with its destination and pilot
type flightRow struct {
	Flights
	DestinationCode string  `gorm:"column:destination_code"`
	DestinationCity string  `gorm:"column:destination_city"`
	PilotFirstName  *string `gorm:"column:pilot_first_name"`
	PilotLastName   *string `gorm:"column:pilot_last_name"`
}

func toFlightModel(f *entity.Flight) Flights {
	return Flights{
		ID:                 f.ID,
		FlightNumber:       f.FlightNumber,
		DepartureTime:      f.DepartureTime.UTC(),
		ArrivalTime:        f.ArrivalTime.UTC(),
		Status:             string(f.Status),
		AircraftType:       f.AircraftType,
		Capacity:           f.Capacity,
		MinExperienceYears: f.MinExperienceYears,
		PilotID:            f.PilotID,
		DestinationID:      f.DestinationID,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

// Convert GORM model to domain entity
func (m Flights) toEntity() *entity.Flight {
	return &entity.Flight{
		ID:                 m.ID,
		FlightNumber:       m.FlightNumber,
		DestinationID:      m.DestinationID,
		PilotID:            m.PilotID,
		DepartureTime:      m.DepartureTime.UTC(),
		ArrivalTime:        m.ArrivalTime.UTC(),
		Status:             entity.FlightStatus(m.Status),
		AircraftType:       m.AircraftType,
		Capacity:           m.Capacity,
		MinExperienceYears: m.MinExperienceYears,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

func (row flightRow) toEntity() *entity.Flight {
	f := row.Flights.toEntity()
	f.DestinationCode = row.DestinationCode
	f.DestinationCity = row.DestinationCity
	if row.PilotFirstName != nil && row.PilotLastName != nil {
		f.PilotName = *row.PilotFirstName + " " + *row.PilotLastName
	}
	return f
}

// joined selects flights with destination and pilot columns
func (r *GormFlightRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("flights").
		Select("flights.*, " +
			"destinations.code AS destination_code, destinations.city AS destination_city, " +
			"pilots.first_name AS pilot_first_name, pilots.last_name AS pilot_last_name").
		Joins("JOIN destinations ON destinations.id = flights.destination_id").
		Joins("LEFT JOIN pilots ON pilots.id = flights.pilot_id")
}

func (r *GormFlightRepository) findRows(query *gorm.DB, op string) ([]*entity.Flight, error) {
	var rows []flightRow
	if err := query.Order("flights.departure_time ASC, flights.id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(op, err)
	}

	flights := make([]*entity.Flight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, row.toEntity())
	}
	return flights, nil
}

// Create inserts a new flight and sets its generated ID
func (r *GormFlightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	model := toFlightModel(flight)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError("flight.create", err)
	}

	flight.ID = model.ID
	flight.CreatedAt = model.CreatedAt
	flight.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID finds a flight by ID
func (r *GormFlightRepository) GetByID(ctx context.Context, id int64) (*entity.Flight, error) {
	flights, err := r.findRows(r.joined(ctx).Where("flights.id = ?", id).Limit(1), "flight.get")
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, errs.NotFound("flight.get", "flight %d not found", id)
	}
	return flights[0], nil
}

// GetByNumber finds a flight by flight number
func (r *GormFlightRepository) GetByNumber(ctx context.Context, number string) (*entity.Flight, error) {
	flights, err := r.findRows(r.joined(ctx).Where("flights.flight_number = ?", number).Limit(1), "flight.get")
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, errs.NotFound("flight.get", "flight %q not found", number)
	}
	return flights[0], nil
}

// Update saves every field of an existing flight, a nil pilot included
func (r *GormFlightRepository) Update(ctx context.Context, flight *entity.Flight) error {
	model := toFlightModel(flight)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&Flights{ID: flight.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return translateError("flight.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("flight.update", "flight %d not found", flight.ID)
	}

	flight.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes a flight by ID
func (r *GormFlightRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&Flights{}, id)
	if result.Error != nil {
		return translateError("flight.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("flight.delete", "flight %d not found", id)
	}
	return nil
}

// Find returns flights matching criteria ordered by departure ascending.
// Criteria must already be validated.
func (r *GormFlightRepository) Find(ctx context.Context, criteria entity.FlightCriteria) ([]*entity.Flight, error) {
	query := r.joined(ctx)

	if criteria.DestinationID > 0 {
		query = query.Where("flights.destination_id = ?", criteria.DestinationID)
	}
	if criteria.DestinationCode != "" {
		query = query.Where("destinations.code = ?", criteria.DestinationCode)
	}
	if criteria.PilotID > 0 {
		query = query.Where("flights.pilot_id = ?", criteria.PilotID)
	}
	if criteria.Status != "" {
		query = query.Where("flights.status = ?", string(criteria.Status))
	}
	if !criteria.Departure.From.IsZero() {
		query = query.Where("flights.departure_time >= ?", criteria.Departure.From.UTC())
	}
	if !criteria.Departure.To.IsZero() {
		query = query.Where("flights.departure_time < ?", criteria.Departure.To.UTC())
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	return r.findRows(query, "flight.find")
}

// FindPilotFlightsInWindow returns the pilot's non-cancelled flights
// intersecting w as half-open intervals
func (r *GormFlightRepository) FindPilotFlightsInWindow(ctx context.Context, pilotID int64, w entity.TimeRange, excludeFlightID int64) ([]*entity.Flight, error) {
	query := r.joined(ctx).
		Where("flights.pilot_id = ?", pilotID).
		Where("flights.id <> ?", excludeFlightID).
		Where("flights.status <> ?", string(entity.FlightCancelled)).
		Where("flights.departure_time < ?", w.To.UTC()).
		Where("flights.arrival_time > ?", w.From.UTC())

	return r.findRows(query, "flight.find_overlapping")
}

// CountByDestination counts the flights referencing a destination
func (r *GormFlightRepository) CountByDestination(ctx context.Context, destinationID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Flights{}).
		Where("destination_id = ?", destinationID).
		Count(&count).Error
	if err != nil {
		return 0, translateError("flight.count", err)
	}
	return count, nil
}

// CountPilotFlightsSince counts a pilot's non-cancelled flights departing at or after since
func (r *GormFlightRepository) CountPilotFlightsSince(ctx context.Context, pilotID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Flights{}).
		Where("pilot_id = ?", pilotID).
		Where("status <> ?", string(entity.FlightCancelled)).
		Where("departure_time >= ?", since.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, translateError("flight.count", err)
	}
	return count, nil
}

// DetachPilot clears the pilot reference on all of the pilot's flights
func (r *GormFlightRepository) DetachPilot(ctx context.Context, pilotID int64) error {
	err := r.db.WithContext(ctx).
		Model(&Flights{}).
		Where("pilot_id = ?", pilotID).
		Update("pilot_id", gorm.Expr("NULL")).Error
	if err != nil {
		return translateError("flight.detach_pilot", err)
	}
	return nil
}

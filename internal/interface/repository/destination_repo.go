package repository

import (
	"context"
	"errors"
	"time"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/errs"
	"flightops/internal/domain/repository"

	"gorm.io/gorm"
)

// GormDestinationRepository implements the DestinationRepository interface
type GormDestinationRepository struct {
	db *gorm.DB
}

// NewGormDestinationRepository creates a new GORM destination repository
func NewGormDestinationRepository(db *gorm.DB) repository.DestinationRepository {
	return &GormDestinationRepository{
		db: db,
	}
}

// Destinations GORM model for database mapping
type Destinations struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:name"`
	Code         string `gorm:"column:code"`
	City         string `gorm:"column:city"`
	Country      string `gorm:"column:country"`
	Timezone     string `gorm:"column:timezone"`
	TerminalInfo string `gorm:"column:terminal_info"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (Destinations) TableName() string {
	return "destinations"
}

// destinationRow is a destination joined with its flight count
type destinationRow struct {
	Destinations
	FlightCount int64 `gorm:"column:flight_count"`
}

func toDestinationModel(d *entity.Destination) Destinations {
	return Destinations{
		ID:           d.ID,
		Name:         d.Name,
		Code:         d.Code,
		City:         d.City,
		Country:      d.Country,
		Timezone:     d.Timezone,
		TerminalInfo: d.TerminalInfo,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Convert GORM model to domain entity
func (m Destinations) toEntity() *entity.Destination {
	return &entity.Destination{
		ID:           m.ID,
		Name:         m.Name,
		Code:         m.Code,
		City:         m.City,
		Country:      m.Country,
		Timezone:     m.Timezone,
		TerminalInfo: m.TerminalInfo,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// Create inserts a new destination and sets its generated ID
func (r *GormDestinationRepository) Create(ctx context.Context, destination *entity.Destination) error {
	model := toDestinationModel(destination)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError("destination.create", err)
	}

	destination.ID = model.ID
	destination.CreatedAt = model.CreatedAt
	destination.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID finds a destination by ID
func (r *GormDestinationRepository) GetByID(ctx context.Context, id int64) (*entity.Destination, error) {
	var destination Destinations
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&destination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("destination.get", "destination %d not found", id)
		}
		return nil, translateError("destination.get", err)
	}

	return destination.toEntity(), nil
}

// GetByCode finds a destination by airport code
func (r *GormDestinationRepository) GetByCode(ctx context.Context, code string) (*entity.Destination, error) {
	var destination Destinations
	err := r.db.WithContext(ctx).Where("code = ?", code).Take(&destination).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("destination.get", "destination %q not found", code)
		}
		return nil, translateError("destination.get", err)
	}

	return destination.toEntity(), nil
}

// Update saves every field of an existing destination
func (r *GormDestinationRepository) Update(ctx context.Context, destination *entity.Destination) error {
	model := toDestinationModel(destination)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&Destinations{ID: destination.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return translateError("destination.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("destination.update", "destination %d not found", destination.ID)
	}

	destination.UpdatedAt = model.UpdatedAt
	return nil
}

// List returns destinations with their flight counts, ordered by country and city
func (r *GormDestinationRepository) List(ctx context.Context, filter entity.DestinationFilter) ([]*entity.Destination, error) {
	query := r.db.WithContext(ctx).
		Table("destinations").
		Select("destinations.*, COUNT(flights.id) AS flight_count").
		Joins("LEFT JOIN flights ON flights.destination_id = destinations.id")

	if filter.City != "" {
		query = query.Where("LOWER(destinations.city) = LOWER(?)", filter.City)
	}
	if filter.Country != "" {
		query = query.Where("LOWER(destinations.country) = LOWER(?)", filter.Country)
	}

	var rows []destinationRow
	err := query.
		Group("destinations.id").
		Order("destinations.country, destinations.city, destinations.code").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("destination.list", err)
	}

	destinations := make([]*entity.Destination, 0, len(rows))
	for _, row := range rows {
		d := row.Destinations.toEntity()
		d.FlightCount = row.FlightCount
		destinations = append(destinations, d)
	}

	return destinations, nil
}

// Delete removes a destination by ID
func (r *GormDestinationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&Destinations{}, id)
	if result.Error != nil {
		return translateError("destination.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("destination.delete", "destination %d not found", id)
	}
	return nil
}

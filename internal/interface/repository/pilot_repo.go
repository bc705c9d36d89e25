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

// GormPilotRepository implements the PilotRepository interface
type GormPilotRepository struct {
	db *gorm.DB
}

// NewGormPilotRepository creates a new GORM pilot repository
func NewGormPilotRepository(db *gorm.DB) repository.PilotRepository {
	return &GormPilotRepository{
		db: db,
	}
}

// Pilots GORM model for database mapping
type Pilots struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName       string `gorm:"column:first_name"`
	LastName        string `gorm:"column:last_name"`
	LicenseNo       string `gorm:"column:license_no"`
	ExperienceYears int    `gorm:"column:experience_years"`
	Phone           string `gorm:"column:phone"`
	Status          string `gorm:"column:status"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Pilots) TableName() string {
	return "pilots"
}

func toPilotModel(p *entity.Pilot) Pilots {
	return Pilots{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		LicenseNo:       p.LicenseNumber,
		ExperienceYears: p.ExperienceYears,
		Phone:           p.Phone,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Convert GORM model to domain entity
func (m Pilots) toEntity() *entity.Pilot {
	return &entity.Pilot{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		LicenseNumber:   m.LicenseNo,
		ExperienceYears: m.ExperienceYears,
		Phone:           m.Phone,
		Status:          entity.PilotStatus(m.Status),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

// Create inserts a new pilot and sets its generated ID
func (r *GormPilotRepository) Create(ctx context.Context, pilot *entity.Pilot) error {
	model := toPilotModel(pilot)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError("pilot.create", err)
	}

	pilot.ID = model.ID
	pilot.CreatedAt = model.CreatedAt
	pilot.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID finds a pilot by ID
func (r *GormPilotRepository) GetByID(ctx context.Context, id int64) (*entity.Pilot, error) {
	var pilot Pilots
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&pilot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("pilot.get", "pilot %d not found", id)
		}
		return nil, translateError("pilot.get", err)
	}

	return pilot.toEntity(), nil
}

// GetByLicense finds a pilot by license number
func (r *GormPilotRepository) GetByLicense(ctx context.Context, license string) (*entity.Pilot, error) {
	var pilot Pilots
	err := r.db.WithContext(ctx).Where("license_no = ?", license).Take(&pilot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("pilot.get", "pilot with license %q not found", license)
		}
		return nil, translateError("pilot.get", err)
	}

	return pilot.toEntity(), nil
}

// Update saves every field of an existing pilot
func (r *GormPilotRepository) Update(ctx context.Context, pilot *entity.Pilot) error {
	model := toPilotModel(pilot)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&Pilots{ID: pilot.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return translateError("pilot.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("pilot.update", "pilot %d not found", pilot.ID)
	}

	pilot.UpdatedAt = model.UpdatedAt
	return nil
}

// List returns pilots ordered by last and first name
func (r *GormPilotRepository) List(ctx context.Context, filter entity.PilotFilter) ([]*entity.Pilot, error) {
	query := r.db.WithContext(ctx).Model(&Pilots{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var models []Pilots
	if err := query.Order("last_name, first_name, id").Find(&models).Error; err != nil {
		return nil, translateError("pilot.list", err)
	}

	pilots := make([]*entity.Pilot, 0, len(models))
	for _, m := range models {
		pilots = append(pilots, m.toEntity())
	}

	return pilots, nil
}

// Delete removes a pilot by ID
func (r *GormPilotRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&Pilots{}, id)
	if result.Error != nil {
		return translateError("pilot.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("pilot.delete", "pilot %d not found", id)
	}
	return nil
}

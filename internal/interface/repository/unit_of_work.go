package repository

import (
	"context"

	"flightops/internal/domain/repository"

	"gorm.io/gorm"
)

// GormUnitOfWork implements the UnitOfWork interface over gorm transactions
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a unit of work bound to db
func NewGormUnitOfWork(db *gorm.DB) repository.UnitOfWork {
	return &GormUnitOfWork{
		db: db,
	}
}

func newRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Destinations: NewGormDestinationRepository(db),
		Pilots:       NewGormPilotRepository(db),
		Flights:      NewGormFlightRepository(db),
	}
}

// Do runs fn in a transaction, rolling back when fn fails
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
	if err != nil {
		return translateError("transaction", err)
	}
	return nil
}

// Reader returns repositories on the plain handle
func (u *GormUnitOfWork) Reader() repository.Repositories {
	return newRepositories(u.db)
}

package repository

import (
	"context"
)

// Repositories groups the repositories bound to one store handle or transaction
type Repositories struct {
	Destinations DestinationRepository
	Pilots       PilotRepository
	Flights      FlightRepository
}

// UnitOfWork runs validation-then-write sequences atomically. fn's
// repositories share one transaction which is rolled back if fn returns an
// error and committed otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error

	// Reader returns repositories outside any transaction, for queries
	Reader() Repositories
}

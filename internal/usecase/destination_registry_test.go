package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/errs"
)

func TestDestinationRegistry_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.destinations.Create(ctx, &entity.Destination{
		Name:    "Heathrow",
		Code:    " lhr ",
		City:    "London",
		Country: "United Kingdom",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := f.destinations.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "LHR", got.Code)
	assert.Equal(t, "London", got.City)

	byCode, err := f.destinations.GetByCode(ctx, "lhr")
	require.NoError(t, err)
	assert.Equal(t, id, byCode.ID)
}

func TestDestinationRegistry_CreateRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addDestination(t, "JFK", "New York")

	tests := []struct {
		name        string
		destination entity.Destination
	}{
		{"duplicate code", entity.Destination{Code: "jfk", City: "Queens", Country: "US"}},
		{"short code", entity.Destination{Code: "JF", City: "New York", Country: "US"}},
		{"digits in code", entity.Destination{Code: "J1K", City: "New York", Country: "US"}},
		{"missing city", entity.Destination{Code: "EWR", Country: "US"}},
		{"missing country", entity.Destination{Code: "EWR", City: "Newark"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.destination
			_, err := f.destinations.Create(ctx, &d)
			assert.True(t, errs.IsValidation(err), "got %v", err)
		})
	}

	t.Run("nil destination", func(t *testing.T) {
		_, err := f.destinations.Create(ctx, nil)
		assert.True(t, errs.IsValidation(err), "got %v", err)
	})
}

func TestDestinationRegistry_GetMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.destinations.Get(context.Background(), 42)
	assert.True(t, errs.IsNotFound(err))

	_, err = f.destinations.GetByCode(context.Background(), "XYZ")
	assert.True(t, errs.IsNotFound(err))
}

func TestDestinationRegistry_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.addDestination(t, "CDG", "Paris")
	f.addDestination(t, "ORY", "Paris")

	terminal := "Terminal 2E"
	updated, err := f.destinations.Update(ctx, id, entity.DestinationUpdate{TerminalInfo: &terminal})
	require.NoError(t, err)
	assert.Equal(t, "Terminal 2E", updated.TerminalInfo)
	assert.Equal(t, "CDG", updated.Code)

	taken := "ory"
	_, err = f.destinations.Update(ctx, id, entity.DestinationUpdate{Code: &taken})
	assert.True(t, errs.IsValidation(err))

	same := "cdg"
	_, err = f.destinations.Update(ctx, id, entity.DestinationUpdate{Code: &same})
	assert.NoError(t, err)

	_, err = f.destinations.Update(ctx, 999, entity.DestinationUpdate{TerminalInfo: &terminal})
	assert.True(t, errs.IsNotFound(err))
}

func TestDestinationRegistry_ListWithFlightCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jfk := f.addDestination(t, "JFK", "New York")
	f.addDestination(t, "LAX", "Los Angeles")
	f.addFlight(t, "BA1", jfk, at(9), at(11))
	f.addFlight(t, "BA2", jfk, at(12), at(14))

	list, err := f.destinations.List(ctx, entity.DestinationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	counts := map[string]int64{}
	for _, d := range list {
		counts[d.Code] = d.FlightCount
	}
	assert.Equal(t, int64(2), counts["JFK"])
	assert.Equal(t, int64(0), counts["LAX"])

	filtered, err := f.destinations.List(ctx, entity.DestinationFilter{City: "new york"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "JFK", filtered[0].Code)
}

func TestDestinationRegistry_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jfk := f.addDestination(t, "JFK", "New York")
	lax := f.addDestination(t, "LAX", "Los Angeles")
	f.addFlight(t, "BA1", jfk, at(9), at(11))

	t.Run("referenced by a flight", func(t *testing.T) {
		err := f.destinations.Delete(ctx, jfk)
		assert.True(t, errs.IsConflict(err), "got %v", err)

		_, err = f.destinations.Get(ctx, jfk)
		assert.NoError(t, err)
	})

	t.Run("unreferenced", func(t *testing.T) {
		require.NoError(t, f.destinations.Delete(ctx, lax))

		_, err := f.destinations.Get(ctx, lax)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("missing", func(t *testing.T) {
		assert.True(t, errs.IsNotFound(f.destinations.Delete(ctx, lax)))
	})
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightops/internal/domain/entity"
)

func TestStatisticsService_Summary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jfk := f.addDestination(t, "JFK", "New York")
	lhr := f.addDestination(t, "LHR", "London")
	f.addDestination(t, "NRT", "Tokyo")
	senior := f.addPilot(t, "P1", 20)
	junior := f.addPilot(t, "P2", 4)

	a := f.addFlight(t, "BA1", jfk, at(8), at(10))
	b := f.addFlight(t, "BA2", jfk, at(11), at(14))
	c := f.addFlight(t, "BA3", lhr, at(9), at(10))
	require.NoError(t, f.scheduler.AssignPilot(ctx, a, senior))
	require.NoError(t, f.scheduler.AssignPilot(ctx, b, senior))
	require.NoError(t, f.scheduler.AssignPilot(ctx, c, junior))
	delayed := entity.FlightDelayed
	_, err := f.scheduler.Update(ctx, c, entity.FlightUpdate{Status: &delayed})
	require.NoError(t, err)

	summary, err := f.stats.Summary(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, entity.Totals{Pilots: 2, Destinations: 3, Flights: 3}, summary.Totals)
	assert.Equal(t, []entity.StatusCount{
		{Status: entity.FlightScheduled, Count: 2},
		{Status: entity.FlightDelayed, Count: 1},
	}, summary.ByStatus)

	require.Len(t, summary.Destinations, 3)
	assert.Equal(t, "JFK", summary.Destinations[0].Code)
	assert.Equal(t, int64(2), summary.Destinations[0].FlightCount)
	assert.Equal(t, "LHR", summary.Destinations[1].Code)
	assert.Equal(t, int64(0), summary.Destinations[2].FlightCount)

	require.Len(t, summary.Pilots, 2)
	assert.Equal(t, senior, summary.Pilots[0].PilotID)
	assert.Equal(t, int64(2), summary.Pilots[0].FlightCount)
	assert.InDelta(t, 5.0, summary.Pilots[0].TotalHours, 0.001)
	assert.Equal(t, junior, summary.Pilots[1].PilotID)

	require.Len(t, summary.AircraftTypes, 1)
	assert.Equal(t, "Boeing 737", summary.AircraftTypes[0].AircraftType)
	assert.Equal(t, int64(3), summary.AircraftTypes[0].FlightCount)
	assert.InDelta(t, 180.0, summary.AircraftTypes[0].AverageCapacity, 0.001)

	top, err := f.stats.Summary(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top.Destinations, 1)
	assert.Equal(t, "JFK", top.Destinations[0].Code)
}

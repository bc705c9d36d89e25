package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/errs"
)

func TestFlightScheduler_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")

	id, err := f.scheduler.Create(ctx, &entity.Flight{
		FlightNumber:  "ba101",
		DestinationID: dest,
		DepartureTime: at(9),
		ArrivalTime:   at(11),
	})
	require.NoError(t, err)

	got, err := f.scheduler.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "BA101", got.FlightNumber)
	assert.Equal(t, entity.FlightScheduled, got.Status)
	assert.Equal(t, "JFK", got.DestinationCode)
	assert.True(t, got.DepartureTime.Equal(at(9)))
	assert.Nil(t, got.PilotID)

	byNumber, err := f.scheduler.GetByNumber(ctx, "ba101")
	require.NoError(t, err)
	assert.Equal(t, id, byNumber.ID)
}

func TestFlightScheduler_CreateRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")
	f.addFlight(t, "BA1", dest, at(9), at(11))
	missingPilot := int64(77)

	tests := []struct {
		name   string
		flight entity.Flight
	}{
		{"departure equals arrival", entity.Flight{FlightNumber: "BA2", DestinationID: dest, DepartureTime: at(9), ArrivalTime: at(9)}},
		{"departure after arrival", entity.Flight{FlightNumber: "BA2", DestinationID: dest, DepartureTime: at(12), ArrivalTime: at(9)}},
		{"unknown destination", entity.Flight{FlightNumber: "BA2", DestinationID: 999, DepartureTime: at(9), ArrivalTime: at(11)}},
		{"unknown pilot", entity.Flight{FlightNumber: "BA2", DestinationID: dest, PilotID: &missingPilot, DepartureTime: at(9), ArrivalTime: at(11)}},
		{"duplicate number", entity.Flight{FlightNumber: "ba1", DestinationID: dest, DepartureTime: at(13), ArrivalTime: at(14)}},
		{"missing number", entity.Flight{DestinationID: dest, DepartureTime: at(9), ArrivalTime: at(11)}},
		{"unknown status", entity.Flight{FlightNumber: "BA2", DestinationID: dest, Status: "Boarding", DepartureTime: at(9), ArrivalTime: at(11)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flight := tt.flight
			_, err := f.scheduler.Create(ctx, &flight)
			assert.True(t, errs.IsValidation(err), "got %v", err)
		})
	}

	t.Run("nil flight", func(t *testing.T) {
		_, err := f.scheduler.Create(ctx, nil)
		assert.True(t, errs.IsValidation(err), "got %v", err)
	})

	flights, err := f.scheduler.Query(ctx, entity.FlightCriteria{})
	require.NoError(t, err)
	assert.Len(t, flights, 1)
}

func TestFlightScheduler_OverlapScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jfk := f.addDestination(t, "JFK", "New York")
	p1 := f.addPilot(t, "P1", 10)

	f1 := f.addFlight(t, "F1", jfk, at(9), at(11))
	f2 := f.addFlight(t, "F2", jfk, at(10), at(12))
	f3 := f.addFlight(t, "F3", jfk, at(11), at(13))

	require.NoError(t, f.scheduler.AssignPilot(ctx, f1, p1))

	err := f.scheduler.AssignPilot(ctx, f2, p1)
	assert.True(t, errs.IsConflict(err), "got %v", err)

	require.NoError(t, f.scheduler.AssignPilot(ctx, f3, p1))

	got, err := f.scheduler.Get(ctx, f2)
	require.NoError(t, err)
	assert.Nil(t, got.PilotID)

	got, err = f.scheduler.Get(ctx, f3)
	require.NoError(t, err)
	require.NotNil(t, got.PilotID)
	assert.Equal(t, p1, *got.PilotID)
	assert.Equal(t, "Pat P1", got.PilotName)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ErrorsCount.WithLabelValues(opFlightAssign, "conflict")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Operations.WithLabelValues(opFlightAssign, "ok")))
}

func TestFlightScheduler_AssignRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")

	t.Run("idempotent", func(t *testing.T) {
		pilot := f.addPilot(t, "A1", 10)
		flight := f.addFlight(t, "A100", dest, at(9), at(11))
		require.NoError(t, f.scheduler.AssignPilot(ctx, flight, pilot))
		assert.NoError(t, f.scheduler.AssignPilot(ctx, flight, pilot))
	})

	t.Run("pilot on leave", func(t *testing.T) {
		pilot := f.addPilot(t, "A2", 10)
		onLeave := entity.PilotOnLeave
		_, err := f.pilots.Update(ctx, pilot, entity.PilotUpdate{Status: &onLeave})
		require.NoError(t, err)

		flight := f.addFlight(t, "A200", dest, at(9), at(11))
		assert.True(t, errs.IsConflict(f.scheduler.AssignPilot(ctx, flight, pilot)))
	})

	t.Run("insufficient experience", func(t *testing.T) {
		pilot := f.addPilot(t, "A3", 2)
		id, err := f.scheduler.Create(ctx, &entity.Flight{
			FlightNumber:       "A300",
			DestinationID:      dest,
			DepartureTime:      at(9),
			ArrivalTime:        at(11),
			MinExperienceYears: 5,
		})
		require.NoError(t, err)
		assert.True(t, errs.IsValidation(f.scheduler.AssignPilot(ctx, id, pilot)))
	})

	t.Run("cancelled flight", func(t *testing.T) {
		pilot := f.addPilot(t, "A4", 10)
		flight := f.addFlight(t, "A400", dest, at(9), at(11))
		cancelled := entity.FlightCancelled
		_, err := f.scheduler.Update(ctx, flight, entity.FlightUpdate{Status: &cancelled})
		require.NoError(t, err)
		assert.True(t, errs.IsConflict(f.scheduler.AssignPilot(ctx, flight, pilot)))
	})

	t.Run("cancelled flights do not block", func(t *testing.T) {
		pilot := f.addPilot(t, "A5", 10)
		first := f.addFlight(t, "A500", dest, at(9), at(11))
		require.NoError(t, f.scheduler.AssignPilot(ctx, first, pilot))
		cancelled := entity.FlightCancelled
		_, err := f.scheduler.Update(ctx, first, entity.FlightUpdate{Status: &cancelled})
		require.NoError(t, err)

		second := f.addFlight(t, "A501", dest, at(10), at(12))
		assert.NoError(t, f.scheduler.AssignPilot(ctx, second, pilot))
	})

	t.Run("missing references", func(t *testing.T) {
		pilot := f.addPilot(t, "A6", 10)
		flight := f.addFlight(t, "A600", dest, at(9), at(11))
		assert.True(t, errs.IsNotFound(f.scheduler.AssignPilot(ctx, 999, pilot)))
		assert.True(t, errs.IsNotFound(f.scheduler.AssignPilot(ctx, flight, 999)))
	})
}

func TestFlightScheduler_Unassign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")
	pilot := f.addPilot(t, "P1", 10)
	flight := f.addFlight(t, "BA1", dest, at(9), at(11))
	require.NoError(t, f.scheduler.AssignPilot(ctx, flight, pilot))

	require.NoError(t, f.scheduler.UnassignPilot(ctx, flight))
	got, err := f.scheduler.Get(ctx, flight)
	require.NoError(t, err)
	assert.Nil(t, got.PilotID)

	assert.NoError(t, f.scheduler.UnassignPilot(ctx, flight))
	assert.True(t, errs.IsNotFound(f.scheduler.UnassignPilot(ctx, 999)))
}

func TestFlightScheduler_UpdateRechecksAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")
	pilot := f.addPilot(t, "P1", 10)
	first := f.addFlight(t, "BA1", dest, at(9), at(11))
	second := f.addFlight(t, "BA2", dest, at(12), at(14))
	require.NoError(t, f.scheduler.AssignPilot(ctx, first, pilot))
	require.NoError(t, f.scheduler.AssignPilot(ctx, second, pilot))

	// delaying BA1 into BA2's window double-books the pilot
	delayed := entity.FlightDelayed
	arrival := at(13)
	_, err := f.scheduler.Update(ctx, first, entity.FlightUpdate{Status: &delayed, ArrivalTime: &arrival})
	assert.True(t, errs.IsConflict(err), "got %v", err)

	got, err := f.scheduler.Get(ctx, first)
	require.NoError(t, err)
	assert.True(t, got.ArrivalTime.Equal(at(11)))
	assert.Equal(t, entity.FlightScheduled, got.Status)

	arrival = at(12)
	updated, err := f.scheduler.Update(ctx, first, entity.FlightUpdate{Status: &delayed, ArrivalTime: &arrival})
	require.NoError(t, err)
	assert.Equal(t, entity.FlightDelayed, updated.Status)
	assert.Equal(t, "JFK", updated.DestinationCode)

	departure := at(15)
	_, err = f.scheduler.Update(ctx, first, entity.FlightUpdate{DepartureTime: &departure})
	assert.True(t, errs.IsValidation(err))

	missing := int64(999)
	_, err = f.scheduler.Update(ctx, first, entity.FlightUpdate{DestinationID: &missing})
	assert.True(t, errs.IsValidation(err))

	_, err = f.scheduler.Update(ctx, 999, entity.FlightUpdate{Status: &delayed})
	assert.True(t, errs.IsNotFound(err))
}

func TestFlightScheduler_Query(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jfk := f.addDestination(t, "JFK", "New York")
	lhr := f.addDestination(t, "LHR", "London")
	pilot := f.addPilot(t, "P1", 10)

	f.addFlight(t, "BA4", jfk, at(16), at(18))
	f.addFlight(t, "BA1", jfk, at(6), at(8))
	staffed := f.addFlight(t, "BA3", lhr, at(12), at(14))
	f.addFlight(t, "BA2", lhr, at(9), at(11))
	require.NoError(t, f.scheduler.AssignPilot(ctx, staffed, pilot))

	numbers := func(flights []*entity.Flight) []string {
		out := make([]string, 0, len(flights))
		for _, fl := range flights {
			out = append(out, fl.FlightNumber)
		}
		return out
	}

	tests := []struct {
		name     string
		criteria entity.FlightCriteria
		want     []string
	}{
		{"all ordered by departure", entity.FlightCriteria{}, []string{"BA1", "BA2", "BA3", "BA4"}},
		{"departure range is half-open", entity.FlightCriteria{Departure: entity.TimeRange{From: at(9), To: at(16)}}, []string{"BA2", "BA3"}},
		{"open upper bound", entity.FlightCriteria{Departure: entity.TimeRange{From: at(12)}}, []string{"BA3", "BA4"}},
		{"destination code", entity.FlightCriteria{DestinationCode: "lhr"}, []string{"BA2", "BA3"}},
		{"destination id", entity.FlightCriteria{DestinationID: jfk}, []string{"BA1", "BA4"}},
		{"pilot", entity.FlightCriteria{PilotID: pilot}, []string{"BA3"}},
		{"status", entity.FlightCriteria{Status: entity.FlightScheduled, Limit: 2}, []string{"BA1", "BA2"}},
		{"combined", entity.FlightCriteria{DestinationCode: "JFK", Departure: entity.TimeRange{To: at(12)}}, []string{"BA1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights, err := f.scheduler.Query(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbers(flights))
		})
	}

	t.Run("invalid criteria", func(t *testing.T) {
		for _, c := range []entity.FlightCriteria{
			{DestinationCode: "LONDON"},
			{Status: "Boarding"},
			{Departure: entity.TimeRange{From: at(12), To: at(9)}},
			{Limit: -1},
		} {
			_, err := f.scheduler.Query(ctx, c)
			assert.True(t, errs.IsValidation(err), "criteria %+v", c)
		}
	})
}

func TestFlightScheduler_Upcoming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")
	f.addFlight(t, "PAST", dest, at(1), at(3))
	f.addFlight(t, "SOON", dest, at(9), at(11))
	f.addFlight(t, "LATER", dest, at(9).Add(48*time.Hour), at(11).Add(48*time.Hour))

	flights, err := f.scheduler.Upcoming(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "SOON", flights[0].FlightNumber)

	_, err = f.scheduler.Upcoming(ctx, 0)
	assert.True(t, errs.IsValidation(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Operations.WithLabelValues(opFlightUpcoming, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ErrorsCount.WithLabelValues(opFlightUpcoming, "validation")))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.Operations.WithLabelValues(opFlightQuery, "ok")))
}

func TestFlightScheduler_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.addDestination(t, "JFK", "New York")
	flight := f.addFlight(t, "BA1", dest, at(9), at(11))

	require.NoError(t, f.scheduler.Delete(ctx, flight))
	assert.True(t, errs.IsNotFound(f.scheduler.Delete(ctx, flight)))

	// the destination is free again
	assert.NoError(t, f.destinations.Delete(ctx, dest))
}

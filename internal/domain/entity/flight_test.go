package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightops/internal/domain/errs"
)

func validFlight() *Flight {
	return &Flight{
		FlightNumber:  "BA101",
		DestinationID: 1,
		DepartureTime: at(9, 0),
		ArrivalTime:   at(11, 0),
		Status:        FlightScheduled,
		AircraftType:  "Boeing 737",
		Capacity:      180,
	}
}

func TestFlight_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *Flight)
		wantErr bool
	}{
		{"valid", func(f *Flight) {}, false},
		{"missing number", func(f *Flight) { f.FlightNumber = "" }, true},
		{"missing destination", func(f *Flight) { f.DestinationID = 0 }, true},
		{"departure equals arrival", func(f *Flight) { f.ArrivalTime = f.DepartureTime }, true},
		{"departure after arrival", func(f *Flight) { f.DepartureTime = at(12, 0) }, true},
		{"unknown status", func(f *Flight) { f.Status = "Boarding" }, true},
		{"negative capacity", func(f *Flight) { f.Capacity = -1 }, true},
		{"negative experience", func(f *Flight) { f.MinExperienceYears = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFlight()
			tt.mutate(f)
			err := f.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlight_Normalize(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	f := &Flight{
		FlightNumber:  "  ba101 ",
		DepartureTime: time.Date(2025, 3, 14, 4, 0, 30, 999, loc),
	}
	f.Normalize()

	assert.Equal(t, "BA101", f.FlightNumber)
	assert.Equal(t, FlightScheduled, f.Status)
	assert.Equal(t, time.UTC, f.DepartureTime.Location())
	assert.Equal(t, time.Date(2025, 3, 14, 9, 0, 30, 0, time.UTC), f.DepartureTime)
}

func TestParseFlightStatus(t *testing.T) {
	s, err := ParseFlightStatus("delayed")
	require.NoError(t, err)
	assert.Equal(t, FlightDelayed, s)

	_, err = ParseFlightStatus("boarding")
	assert.True(t, errs.IsValidation(err))

	assert.True(t, FlightDelayed.Staffable())
	assert.False(t, FlightCancelled.Staffable())
	assert.False(t, FlightCompleted.Staffable())
}

func TestFlightUpdate_Apply(t *testing.T) {
	pilot := int64(4)
	f := validFlight()
	f.PilotID = &pilot

	status := FlightDelayed
	dep := at(10, 0)
	FlightUpdate{Status: &status, DepartureTime: &dep, ClearPilot: true}.Apply(f)

	assert.Equal(t, FlightDelayed, f.Status)
	assert.Equal(t, dep, f.DepartureTime)
	assert.Nil(t, f.PilotID)
	assert.Equal(t, "BA101", f.FlightNumber)
}

func TestFindOverlap(t *testing.T) {
	flights := []*Flight{
		{ID: 1, DepartureTime: at(6, 0), ArrivalTime: at(9, 0), Status: FlightScheduled},
		{ID: 2, DepartureTime: at(9, 30), ArrivalTime: at(10, 0), Status: FlightCancelled},
		{ID: 3, DepartureTime: at(10, 30), ArrivalTime: at(12, 0), Status: FlightDelayed},
	}

	hit := FindOverlap(TimeRange{From: at(9, 0), To: at(11, 0)}, flights)
	require.NotNil(t, hit)
	assert.Equal(t, int64(3), hit.ID)

	assert.Nil(t, FindOverlap(TimeRange{From: at(9, 0), To: at(10, 30)}, flights),
		"cancelled flights and touching windows do not conflict")
}

func TestComputeWorkload(t *testing.T) {
	flights := []*Flight{
		{DepartureTime: at(6, 0), ArrivalTime: at(8, 30), Status: FlightCompleted},
		{DepartureTime: at(9, 0), ArrivalTime: at(10, 0), Status: FlightCancelled},
		{DepartureTime: at(12, 0), ArrivalTime: at(14, 0), Status: FlightScheduled},
	}

	w := ComputeWorkload(flights)
	assert.Equal(t, 2, w.FlightCount)
	assert.InDelta(t, 4.5, w.TotalHours, 0.0001)
}

func TestFlightCriteria_Validate(t *testing.T) {
	c := FlightCriteria{DestinationCode: " jfk", Status: FlightDelayed}
	require.NoError(t, c.Validate())
	assert.Equal(t, "JFK", c.DestinationCode)

	bad := []FlightCriteria{
		{DestinationCode: "JFKX"},
		{Status: "Boarding"},
		{PilotID: -1},
		{Departure: TimeRange{From: at(12, 0), To: at(9, 0)}},
		{Limit: -5},
	}
	for _, c := range bad {
		err := c.Validate()
		assert.True(t, errs.IsValidation(err), "criteria %+v", c)
	}
}

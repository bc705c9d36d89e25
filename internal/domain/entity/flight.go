package entity

import (
	"strings"
	"time"

	"flightops/internal/domain/errs"
)

// FlightStatus is the operational status of a flight
type FlightStatus string

const (
	FlightScheduled FlightStatus = "Scheduled"
	FlightDelayed   FlightStatus = "Delayed"
	FlightCancelled FlightStatus = "Cancelled"
	FlightCompleted FlightStatus = "Completed"
)

// FlightStatuses lists every valid flight status
var FlightStatuses = []FlightStatus{FlightScheduled, FlightDelayed, FlightCancelled, FlightCompleted}

// ParseFlightStatus matches s case-insensitively against the known statuses
func ParseFlightStatus(s string) (FlightStatus, error) {
	for _, status := range FlightStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return "", errs.Validation("flight.status", "unknown flight status %q", s)
}

// Valid reports whether s is a known status
func (s FlightStatus) Valid() bool {
	for _, status := range FlightStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Staffable reports whether a pilot may still be assigned
func (s FlightStatus) Staffable() bool {
	return s == FlightScheduled || s == FlightDelayed
}

// Flight represents a scheduled flight to a destination
type Flight struct {
	ID                 int64
	FlightNumber       string // unique
	DestinationID      int64
	PilotID            *int64
	DepartureTime      time.Time
	ArrivalTime        time.Time
	Status             FlightStatus
	AircraftType       string
	Capacity           int
	MinExperienceYears int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Read-side joins, filled by queries when available
	DestinationCode string
	DestinationCity string
	PilotName       string
}

// Window returns the flight's [departure, arrival) interval
func (f *Flight) Window() TimeRange {
	return TimeRange{From: f.DepartureTime, To: f.ArrivalTime}
}

// Duration returns the scheduled block time
func (f *Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

// HasPilot reports whether a pilot is assigned
func (f *Flight) HasPilot() bool {
	return f.PilotID != nil
}

// Normalize trims text, upper-cases the flight number, truncates timestamps
// to the second in UTC and defaults the status
func (f *Flight) Normalize() {
	f.FlightNumber = strings.ToUpper(strings.TrimSpace(f.FlightNumber))
	f.AircraftType = strings.TrimSpace(f.AircraftType)
	f.DepartureTime = f.DepartureTime.UTC().Truncate(time.Second)
	f.ArrivalTime = f.ArrivalTime.UTC().Truncate(time.Second)
	if f.Status == "" {
		f.Status = FlightScheduled
	}
}

// Validate checks the flight's own invariants. Reference checks need the
// store and are done by the scheduler.
func (f *Flight) Validate() error {
	const op = "flight.validate"
	if f.FlightNumber == "" {
		return errs.Validation(op, "flight number is required")
	}
	if f.DestinationID <= 0 {
		return errs.Validation(op, "destination is required")
	}
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() {
		return errs.Validation(op, "departure and arrival times are required")
	}
	if !f.DepartureTime.Before(f.ArrivalTime) {
		return errs.Validation(op, "departure %s must precede arrival %s",
			f.DepartureTime.Format(time.RFC3339), f.ArrivalTime.Format(time.RFC3339))
	}
	if !f.Status.Valid() {
		return errs.Validation(op, "unknown flight status %q", f.Status)
	}
	if f.Capacity < 0 {
		return errs.Validation(op, "capacity must not be negative")
	}
	if f.MinExperienceYears < 0 {
		return errs.Validation(op, "minimum experience must not be negative")
	}
	return nil
}

// FlightUpdate holds the fields to change; nil fields are left as is.
// ClearPilot removes the assignment and wins over PilotID.
type FlightUpdate struct {
	FlightNumber       *string
	DestinationID      *int64
	PilotID            *int64
	ClearPilot         bool
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	Status             *FlightStatus
	AircraftType       *string
	Capacity           *int
	MinExperienceYears *int
}

// Apply copies the set fields of u onto f
func (u FlightUpdate) Apply(f *Flight) {
	if u.FlightNumber != nil {
		f.FlightNumber = *u.FlightNumber
	}
	if u.DestinationID != nil {
		f.DestinationID = *u.DestinationID
	}
	if u.PilotID != nil {
		id := *u.PilotID
		f.PilotID = &id
	}
	if u.ClearPilot {
		f.PilotID = nil
	}
	if u.DepartureTime != nil {
		f.DepartureTime = *u.DepartureTime
	}
	if u.ArrivalTime != nil {
		f.ArrivalTime = *u.ArrivalTime
	}
	if u.Status != nil {
		f.Status = *u.Status
	}
	if u.AircraftType != nil {
		f.AircraftType = *u.AircraftType
	}
	if u.Capacity != nil {
		f.Capacity = *u.Capacity
	}
	if u.MinExperienceYears != nil {
		f.MinExperienceYears = *u.MinExperienceYears
	}
}

// SchedulingChanged reports whether the update touches times or pilot
func (u FlightUpdate) SchedulingChanged() bool {
	return u.DepartureTime != nil || u.ArrivalTime != nil || u.PilotID != nil || u.Status != nil
}

// FlightCriteria selects flights. Zero fields are not applied.
type FlightCriteria struct {
	DestinationID   int64
	DestinationCode string
	PilotID         int64
	Status          FlightStatus
	Departure       TimeRange
	Limit           int
}

// Validate checks every set field before it becomes a predicate
func (c *FlightCriteria) Validate() error {
	const op = "flight.criteria"
	if c.DestinationID < 0 {
		return errs.Validation(op, "destination id must be positive")
	}
	if c.PilotID < 0 {
		return errs.Validation(op, "pilot id must be positive")
	}
	if c.DestinationCode != "" {
		c.DestinationCode = NormalizeAirportCode(c.DestinationCode)
		if err := ValidateAirportCode(c.DestinationCode); err != nil {
			return err
		}
	}
	if c.Status != "" && !c.Status.Valid() {
		return errs.Validation(op, "unknown flight status %q", c.Status)
	}
	if !c.Departure.Valid() {
		return errs.Validation(op, "departure range start must precede its end")
	}
	if c.Limit < 0 {
		return errs.Validation(op, "limit must not be negative")
	}
	c.Departure = c.Departure.UTC()
	return nil
}

// FindOverlap returns the first flight whose window intersects w, or nil
func FindOverlap(w TimeRange, flights []*Flight) *Flight {
	for _, f := range flights {
		if f.Status == FlightCancelled {
			continue
		}
		if w.Overlaps(f.Window()) {
			return f
		}
	}
	return nil
}

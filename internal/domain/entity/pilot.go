package entity

import (
	"strings"
	"time"

	"flightops/internal/domain/errs"
)

// PilotStatus is the availability of a pilot
type PilotStatus string

const (
	PilotAvailable PilotStatus = "Available"
	PilotOnLeave   PilotStatus = "OnLeave"
	PilotInactive  PilotStatus = "Inactive"
)

// PilotStatuses lists every valid pilot status
var PilotStatuses = []PilotStatus{PilotAvailable, PilotOnLeave, PilotInactive}

// ParsePilotStatus matches s case-insensitively against the known statuses
func ParsePilotStatus(s string) (PilotStatus, error) {
	for _, status := range PilotStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return "", errs.Validation("pilot.status", "unknown pilot status %q", s)
}

// Valid reports whether s is a known status
func (s PilotStatus) Valid() bool {
	for _, status := range PilotStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Pilot represents a licensed pilot
type Pilot struct {
	ID              int64
	FirstName       string
	LastName        string
	LicenseNumber   string // unique
	ExperienceYears int
	Phone           string
	Status          PilotStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName returns "First Last"
func (p *Pilot) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Normalize trims text fields, upper-cases the license and defaults the status
func (p *Pilot) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.LicenseNumber = strings.ToUpper(strings.TrimSpace(p.LicenseNumber))
	p.Phone = strings.TrimSpace(p.Phone)
	if p.Status == "" {
		p.Status = PilotAvailable
	}
}

// Validate checks the required credential fields
func (p *Pilot) Validate() error {
	const op = "pilot.validate"
	if p.FirstName == "" {
		return errs.Validation(op, "first name is required")
	}
	if p.LastName == "" {
		return errs.Validation(op, "last name is required")
	}
	if p.LicenseNumber == "" {
		return errs.Validation(op, "license number is required")
	}
	if p.ExperienceYears < 0 {
		return errs.Validation(op, "experience years must not be negative")
	}
	if !p.Status.Valid() {
		return errs.Validation(op, "unknown pilot status %q", p.Status)
	}
	return nil
}

// PilotUpdate holds the fields to change; nil fields are left as is
type PilotUpdate struct {
	FirstName       *string
	LastName        *string
	LicenseNumber   *string
	ExperienceYears *int
	Phone           *string
	Status          *PilotStatus
}

// Apply copies the set fields of u onto p
func (u PilotUpdate) Apply(p *Pilot) {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.LicenseNumber != nil {
		p.LicenseNumber = *u.LicenseNumber
	}
	if u.ExperienceYears != nil {
		p.ExperienceYears = *u.ExperienceYears
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}

// PilotFilter narrows pilot listings
type PilotFilter struct {
	Status PilotStatus
}

// Workload is the count and total scheduled time of a pilot's flights
type Workload struct {
	FlightCount int
	TotalHours  float64
}

// PilotSchedule is a pilot's assigned flights within a period
type PilotSchedule struct {
	Pilot    *Pilot
	Range    TimeRange
	Flights  []*Flight
	Workload Workload
}

// ComputeWorkload sums the non-cancelled flights
func ComputeWorkload(flights []*Flight) Workload {
	var w Workload
	var total time.Duration
	for _, f := range flights {
		if f.Status == FlightCancelled {
			continue
		}
		w.FlightCount++
		total += f.Duration()
	}
	w.TotalHours = total.Hours()
	return w
}

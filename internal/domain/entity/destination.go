package entity

import (
	"strings"
	"time"

	"flightops/internal/domain/errs"
)

// Destination represents an airport flights can be scheduled to
type Destination struct {
	ID           int64
	Name         string
	Code         string // IATA airport code, unique
	City         string
	Country      string
	Timezone     string
	TerminalInfo string
	FlightCount  int64 // populated by list queries only
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DestinationUpdate holds the fields to change; nil fields are left as is
type DestinationUpdate struct {
	Name         *string
	Code         *string
	City         *string
	Country      *string
	Timezone     *string
	TerminalInfo *string
}

// DestinationFilter narrows destination listings. Empty fields match all.
type DestinationFilter struct {
	City    string
	Country string
}

// NormalizeAirportCode trims and upper-cases an airport code
func NormalizeAirportCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Normalize trims text fields and upper-cases the code
func (d *Destination) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = NormalizeAirportCode(d.Code)
	d.City = strings.TrimSpace(d.City)
	d.Country = strings.TrimSpace(d.Country)
	d.Timezone = strings.TrimSpace(d.Timezone)
	d.TerminalInfo = strings.TrimSpace(d.TerminalInfo)
}

// Validate checks required fields and the code format
func (d *Destination) Validate() error {
	const op = "destination.validate"
	if err := ValidateAirportCode(d.Code); err != nil {
		return err
	}
	if d.City == "" {
		return errs.Validation(op, "city is required")
	}
	if d.Country == "" {
		return errs.Validation(op, "country is required")
	}
	return nil
}

// ValidateAirportCode accepts three-letter codes
func ValidateAirportCode(code string) error {
	const op = "destination.validate"
	if code == "" {
		return errs.Validation(op, "airport code is required")
	}
	if len(code) != 3 {
		return errs.Validation(op, "airport code %q must be 3 letters", code)
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return errs.Validation(op, "airport code %q must be 3 letters", code)
		}
	}
	return nil
}

// Apply copies the set fields of u onto d
func (u DestinationUpdate) Apply(d *Destination) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Code != nil {
		d.Code = *u.Code
	}
	if u.City != nil {
		d.City = *u.City
	}
	if u.Country != nil {
		d.Country = *u.Country
	}
	if u.Timezone != nil {
		d.Timezone = *u.Timezone
	}
	if u.TerminalInfo != nil {
		d.TerminalInfo = *u.TerminalInfo
	}
}

// IsEmpty reports whether no field is set
func (u DestinationUpdate) IsEmpty() bool {
	return u.Name == nil && u.Code == nil && u.City == nil &&
		u.Country == nil && u.Timezone == nil && u.TerminalInfo == nil
}

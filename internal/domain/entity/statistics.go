package entity

// Statistics aggregates the three registries
type Statistics struct {
	Totals        Totals
	ByStatus      []StatusCount
	Destinations  []DestinationCount
	Pilots        []PilotWorkload
	AircraftTypes []AircraftUsage
}

// Totals counts rows per table
type Totals struct {
	Pilots       int64
	Destinations int64
	Flights      int64
}

// StatusCount is the number of flights in a status
type StatusCount struct {
	Status FlightStatus
	Count  int64
}

// DestinationCount is the number of flights to a destination
type DestinationCount struct {
	DestinationID int64
	Code          string
	City          string
	FlightCount   int64
}

// PilotWorkload summarizes a pilot's assigned flights
type PilotWorkload struct {
	PilotID         int64
	Name            string
	LicenseNumber   string
	ExperienceYears int
	FlightCount     int64
	TotalHours      float64
}

// AircraftUsage is how often an aircraft type flies and its mean capacity
type AircraftUsage struct {
	AircraftType    string
	FlightCount     int64
	AverageCapacity float64
}

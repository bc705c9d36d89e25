package cli

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"flightops/internal/domain/entity"
	"flightops/pkg/utils"
)

// JSON views keep entity structs free of encoding tags

type destinationView struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name,omitempty"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Timezone     string `json:"timezone,omitempty"`
	TerminalInfo string `json:"terminalInfo,omitempty"`
	FlightCount  int64  `json:"flightCount"`
}

func toDestinationView(d *entity.Destination) destinationView {
	return destinationView{
		ID:           d.ID,
		Code:         d.Code,
		Name:         d.Name,
		City:         d.City,
		Country:      d.Country,
		Timezone:     d.Timezone,
		TerminalInfo: d.TerminalInfo,
		FlightCount:  d.FlightCount,
	}
}

type pilotView struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	LicenseNumber   string `json:"licenseNumber"`
	ExperienceYears int    `json:"experienceYears"`
	Phone           string `json:"phone,omitempty"`
	Status          string `json:"status"`
}

func toPilotView(p *entity.Pilot) pilotView {
	return pilotView{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		LicenseNumber:   p.LicenseNumber,
		ExperienceYears: p.ExperienceYears,
		Phone:           p.Phone,
		Status:          string(p.Status),
	}
}

type flightView struct {
	ID                 int64     `json:"id"`
	FlightNumber       string    `json:"flightNumber"`
	DestinationID      int64     `json:"destinationId"`
	DestinationCode    string    `json:"destinationCode,omitempty"`
	DestinationCity    string    `json:"destinationCity,omitempty"`
	PilotID            *int64    `json:"pilotId"`
	PilotName          string    `json:"pilotName,omitempty"`
	DepartureTime      time.Time `json:"departureTime"`
	ArrivalTime        time.Time `json:"arrivalTime"`
	Status             string    `json:"status"`
	AircraftType       string    `json:"aircraftType,omitempty"`
	Capacity           int       `json:"capacity"`
	MinExperienceYears int       `json:"minExperienceYears"`
}

func toFlightView(f *entity.Flight) flightView {
	return flightView{
		ID:                 f.ID,
		FlightNumber:       f.FlightNumber,
		DestinationID:      f.DestinationID,
		DestinationCode:    f.DestinationCode,
		DestinationCity:    f.DestinationCity,
		PilotID:            f.PilotID,
		PilotName:          f.PilotName,
		DepartureTime:      f.DepartureTime,
		ArrivalTime:        f.ArrivalTime,
		Status:             string(f.Status),
		AircraftType:       f.AircraftType,
		Capacity:           f.Capacity,
		MinExperienceYears: f.MinExperienceYears,
	}
}

func toFlightViews(flights []*entity.Flight) []flightView {
	views := make([]flightView, 0, len(flights))
	for _, f := range flights {
		views = append(views, toFlightView(f))
	}
	return views
}

var flightHeader = table.Row{"ID", "Flight", "Destination", "Departure (UTC)", "Arrival (UTC)", "Status", "Pilot", "Aircraft"}

func flightRows(flights []*entity.Flight) []table.Row {
	rows := make([]table.Row, 0, len(flights))
	for _, f := range flights {
		pilot := f.PilotName
		if pilot == "" {
			pilot = "-"
		}
		rows = append(rows, table.Row{
			f.ID,
			f.FlightNumber,
			f.DestinationCode + " " + f.DestinationCity,
			utils.FormatDateTime(f.DepartureTime),
			utils.FormatDateTime(f.ArrivalTime),
			f.Status,
			pilot,
			f.AircraftType,
		})
	}
	return rows
}

func flightFields(f *entity.Flight) []table.Row {
	pilot := "-"
	if f.PilotID != nil {
		pilot = f.PilotName
	}
	return []table.Row{
		{"ID", f.ID},
		{"Flight", f.FlightNumber},
		{"Destination", f.DestinationCode + " " + f.DestinationCity},
		{"Departure (UTC)", utils.FormatDateTime(f.DepartureTime)},
		{"Arrival (UTC)", utils.FormatDateTime(f.ArrivalTime)},
		{"Status", f.Status},
		{"Pilot", pilot},
		{"Aircraft", f.AircraftType},
		{"Capacity", f.Capacity},
		{"Min experience", f.MinExperienceYears},
	}
}

package repository

import (
	"context"
	"sort"
	"time"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/repository"

	"gorm.io/gorm"
)

// GormStatisticsRepository implements the StatisticsRepository interface
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewGormStatisticsRepository creates a new GORM statistics repository
func NewGormStatisticsRepository(db *gorm.DB) repository.StatisticsRepository {
	return &GormStatisticsRepository{
		db: db,
	}
}

// Totals counts the rows of each table
func (r *GormStatisticsRepository) Totals(ctx context.Context) (entity.Totals, error) {
	var totals entity.Totals
	db := r.db.WithContext(ctx)

	if err := db.Model(&Pilots{}).Count(&totals.Pilots).Error; err != nil {
		return totals, translateError("statistics.totals", err)
	}
	if err := db.Model(&Destinations{}).Count(&totals.Destinations).Error; err != nil {
		return totals, translateError("statistics.totals", err)
	}
	if err := db.Model(&Flights{}).Count(&totals.Flights).Error; err != nil {
		return totals, translateError("statistics.totals", err)
	}

	return totals, nil
}

// CountByStatus returns flight counts per status, most frequent first
func (r *GormStatisticsRepository) CountByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&Flights{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC, status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError("statistics.by_status", err)
	}

	counts := make([]entity.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entity.StatusCount{Status: entity.FlightStatus(row.Status), Count: row.Count})
	}
	return counts, nil
}

// CountByDestination returns flight counts per destination, busiest first.
// A positive limit keeps only the top entries.
func (r *GormStatisticsRepository) CountByDestination(ctx context.Context, limit int) ([]entity.DestinationCount, error) {
	var rows []struct {
		ID          int64
		Code        string
		City        string
		FlightCount int64
	}
	query := r.db.WithContext(ctx).
		Table("destinations").
		Select("destinations.id, destinations.code, destinations.city, COUNT(flights.id) AS flight_count").
		Joins("LEFT JOIN flights ON flights.destination_id = destinations.id").
		Group("destinations.id, destinations.code, destinations.city").
		Order("flight_count DESC, destinations.city")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, translateError("statistics.by_destination", err)
	}

	counts := make([]entity.DestinationCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entity.DestinationCount{
			DestinationID: row.ID,
			Code:          row.Code,
			City:          row.City,
			FlightCount:   row.FlightCount,
		})
	}
	return counts, nil
}

// PilotWorkloads returns every pilot's non-cancelled flight count and
// scheduled hours, busiest and then most experienced first. Hours are summed
// here so the same code serves every dialect.
func (r *GormStatisticsRepository) PilotWorkloads(ctx context.Context) ([]entity.PilotWorkload, error) {
	db := r.db.WithContext(ctx)

	var pilots []Pilots
	if err := db.Order("id").Find(&pilots).Error; err != nil {
		return nil, translateError("statistics.pilot_workloads", err)
	}

	var flights []Flights
	err := db.
		Select("id, pilot_id, departure_time, arrival_time").
		Where("pilot_id IS NOT NULL").
		Where("status <> ?", string(entity.FlightCancelled)).
		Find(&flights).Error
	if err != nil {
		return nil, translateError("statistics.pilot_workloads", err)
	}

	type tally struct {
		count int64
		total time.Duration
	}
	tallies := make(map[int64]*tally, len(pilots))
	for _, f := range flights {
		t, ok := tallies[*f.PilotID]
		if !ok {
			t = &tally{}
			tallies[*f.PilotID] = t
		}
		t.count++
		t.total += f.ArrivalTime.Sub(f.DepartureTime)
	}

	workloads := make([]entity.PilotWorkload, 0, len(pilots))
	for _, p := range pilots {
		w := entity.PilotWorkload{
			PilotID:         p.ID,
			Name:            p.FirstName + " " + p.LastName,
			LicenseNumber:   p.LicenseNo,
			ExperienceYears: p.ExperienceYears,
		}
		if t, ok := tallies[p.ID]; ok {
			w.FlightCount = t.count
			w.TotalHours = t.total.Hours()
		}
		workloads = append(workloads, w)
	}

	sort.SliceStable(workloads, func(i, j int) bool {
		if workloads[i].FlightCount != workloads[j].FlightCount {
			return workloads[i].FlightCount > workloads[j].FlightCount
		}
		return workloads[i].ExperienceYears > workloads[j].ExperienceYears
	})

	return workloads, nil
}

// AircraftUsage returns flights and mean capacity per aircraft type
func (r *GormStatisticsRepository) AircraftUsage(ctx context.Context) ([]entity.AircraftUsage, error) {
	var rows []struct {
		AircraftType    string
		FlightCount     int64
		AverageCapacity float64
	}
	err := r.db.WithContext(ctx).
		Model(&Flights{}).
		Select("aircraft_type, COUNT(*) AS flight_count, AVG(capacity) AS average_capacity").
		Where("aircraft_type <> ''").
		Group("aircraft_type").
		Order("flight_count DESC, aircraft_type").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError("statistics.aircraft_usage", err)
	}

	usage := make([]entity.AircraftUsage, 0, len(rows))
	for _, row := range rows {
		usage = append(usage, entity.AircraftUsage{
			AircraftType:    row.AircraftType,
			FlightCount:     row.FlightCount,
			AverageCapacity: row.AverageCapacity,
		})
	}
	return usage, nil
}

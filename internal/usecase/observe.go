package usecase

import (
	"time"

	"flightops/internal/domain/errs"
	"flightops/pkg/logger"
	"flightops/pkg/metrics"
)

// Operation names used as metric labels
const (
	opDestinationCreate = "destination_create"
	opDestinationGet    = "destination_get"
	opDestinationUpdate = "destination_update"
	opDestinationList   = "destination_list"
	opDestinationDelete = "destination_delete"

	opPilotCreate   = "pilot_create"
	opPilotGet      = "pilot_get"
	opPilotUpdate   = "pilot_update"
	opPilotList     = "pilot_list"
	opPilotDelete   = "pilot_delete"
	opPilotSchedule = "pilot_schedule"

	opFlightCreate   = "flight_create"
	opFlightGet      = "flight_get"
	opFlightUpdate   = "flight_update"
	opFlightAssign   = "flight_assign_pilot"
	opFlightUnassign = "flight_unassign_pilot"
	opFlightQuery    = "flight_query"
	opFlightUpcoming = "flight_upcoming"
	opFlightDelete   = "flight_delete"

	opStatistics = "statistics_summary"
	opSeed       = "seed"
)

// observer records the outcome of every operation
type observer struct {
	logger  logger.Logger
	metrics *metrics.Metrics
}

func (o observer) done(op string, start time.Time, err error, keysAndValues ...interface{}) {
	o.metrics.Observe(op, start, err)
	if err == nil {
		return
	}

	fields := append([]interface{}{"operation", op, "error", err}, keysAndValues...)
	if errs.KindOf(err) == errs.KindInternal {
		o.logger.Error("Operation failed", fields...)
		return
	}
	o.logger.Warn("Operation rejected", fields...)
}

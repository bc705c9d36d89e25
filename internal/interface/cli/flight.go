package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"flightops/internal/domain/entity"
	"flightops/internal/domain/errs"
)

func newFlightCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "flight",
		Aliases: []string{"flights"},
		Short:   "Schedule flights and assign pilots",
	}

	cmd.AddCommand(
		newFlightAddCommand(env),
		newFlightGetCommand(env),
		newFlightListCommand(env),
		newFlightUpdateCommand(env),
		newFlightAssignCommand(env),
		newFlightUnassignCommand(env),
		newFlightDeleteCommand(env),
		newFlightUpcomingCommand(env),
	)
	return cmd
}

type flightFlags struct {
	number, destination, departure, arrival, status, aircraft string
	pilot                                                     int64
	capacity, minExperience                                   int
	clearPilot                                                bool
}

func (f *flightFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.number, "number", "", "flight number, e.g. BA101")
	flags.StringVar(&f.destination, "destination", "", "destination ID or airport code")
	flags.StringVar(&f.departure, "departure", "", `departure time in UTC, "YYYY-MM-DD HH:MM"`)
	flags.StringVar(&f.arrival, "arrival", "", `arrival time in UTC, "YYYY-MM-DD HH:MM"`)
	flags.StringVar(&f.status, "status", "", "Scheduled, Delayed, Cancelled or Completed")
	flags.StringVar(&f.aircraft, "aircraft", "", "aircraft type")
	flags.IntVar(&f.capacity, "capacity", 0, "seat capacity")
	flags.IntVar(&f.minExperience, "min-experience", 0, "years of experience the pilot needs")
	flags.Int64Var(&f.pilot, "pilot", 0, "pilot ID to assign")
}

func (f *flightFlags) parseStatus(cmd *cobra.Command) (*entity.FlightStatus, error) {
	if !cmd.Flags().Changed("status") {
		return nil, nil
	}
	status, err := entity.ParseFlightStatus(f.status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// resolveDestination accepts an ID or an airport code
func resolveDestination(ctx context.Context, env *commandEnv, value string) (int64, error) {
	if id, err := parseIDArg(value); err == nil {
		return id, nil
	}
	destination, err := env.app.Destinations.GetByCode(ctx, value)
	if errs.IsNotFound(err) {
		return 0, errs.Validation("flight.destination", "destination %s does not exist", value)
	}
	if err != nil {
		return 0, err
	}
	return destination.ID, nil
}

func newFlightAddCommand(env *commandEnv) *cobra.Command {
	var f flightFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a flight",
		Example: `  flightops flight add --number BA101 --destination LHR \
    --departure "2025-03-14 10:00" --arrival "2025-03-14 12:00" --aircraft "Boeing 737" --capacity 180`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			departure, err := parseTimeArg(f.departure)
			if err != nil {
				return err
			}
			arrival, err := parseTimeArg(f.arrival)
			if err != nil {
				return err
			}
			if f.destination == "" {
				return errs.Validation("flight.destination", "--destination is required")
			}
			destinationID, err := resolveDestination(ctx, env, f.destination)
			if err != nil {
				return err
			}

			flight := &entity.Flight{
				FlightNumber:       f.number,
				DestinationID:      destinationID,
				DepartureTime:      departure,
				ArrivalTime:        arrival,
				AircraftType:       f.aircraft,
				Capacity:           f.capacity,
				MinExperienceYears: f.minExperience,
			}
			status, err := f.parseStatus(cmd)
			if err != nil {
				return err
			}
			if status != nil {
				flight.Status = *status
			}
			if cmd.Flags().Changed("pilot") {
				flight.PilotID = &f.pilot
			}

			id, err := env.app.Scheduler.Create(ctx, flight)
			if err != nil {
				return err
			}
			created, err := env.app.Scheduler.Get(ctx, id)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(toFlightView(created), "Scheduled flight %s (id %d)", created.FlightNumber, id)
		},
	}
	f.register(cmd)
	return cmd
}

func newFlightGetCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|number>",
		Short: "Show a flight by ID or flight number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				flight *entity.Flight
				err    error
			)
			if id, idErr := parseIDArg(args[0]); idErr == nil {
				flight, err = env.app.Scheduler.Get(cmd.Context(), id)
			} else {
				flight, err = env.app.Scheduler.GetByNumber(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return env.printer(cmd).Record(toFlightView(flight), flightFields(flight))
		},
	}
}

func newFlightListCommand(env *commandEnv) *cobra.Command {
	var (
		destination, status, from, to string
		pilot                         int64
		limit                         int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flights ordered by departure",
		Example: `  flightops flight list --destination LHR
  flightops flight list --status Delayed
  flightops flight list --from "2025-03-14" --to "2025-03-15"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria := entity.FlightCriteria{PilotID: pilot, Limit: limit}
			if destination != "" {
				if id, err := parseIDArg(destination); err == nil {
					criteria.DestinationID = id
				} else {
					criteria.DestinationCode = destination
				}
			}
			if status != "" {
				parsed, err := entity.ParseFlightStatus(status)
				if err != nil {
					return err
				}
				criteria.Status = parsed
			}
			if start, err := optionalTime(cmd, "from", from); err != nil {
				return err
			} else if start != nil {
				criteria.Departure.From = *start
			}
			if end, err := optionalTime(cmd, "to", to); err != nil {
				return err
			} else if end != nil {
				criteria.Departure.To = *end
			}

			flights, err := env.app.Scheduler.Query(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			return env.printer(cmd).Table(toFlightViews(flights), flightHeader, flightRows(flights))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&destination, "destination", "", "destination ID or airport code")
	flags.StringVar(&status, "status", "", "flight status")
	flags.Int64Var(&pilot, "pilot", 0, "pilot ID")
	flags.StringVar(&from, "from", "", "first departure time to include")
	flags.StringVar(&to, "to", "", "departure time to stop before")
	flags.IntVar(&limit, "limit", 0, "maximum number of flights")
	return cmd
}

func newFlightUpdateCommand(env *commandEnv) *cobra.Command {
	var f flightFlags
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Change fields of a flight",
		Example: `  flightops flight update 3 --status Delayed --departure "2025-03-14 11:30" --arrival "2025-03-14 13:30"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			update := entity.FlightUpdate{
				FlightNumber:       stringFlag(cmd, "number", f.number),
				AircraftType:       stringFlag(cmd, "aircraft", f.aircraft),
				Capacity:           intFlag(cmd, "capacity", f.capacity),
				MinExperienceYears: intFlag(cmd, "min-experience", f.minExperience),
				ClearPilot:         f.clearPilot,
			}
			if update.Status, err = f.parseStatus(cmd); err != nil {
				return err
			}
			if update.DepartureTime, err = optionalTime(cmd, "departure", f.departure); err != nil {
				return err
			}
			if update.ArrivalTime, err = optionalTime(cmd, "arrival", f.arrival); err != nil {
				return err
			}
			if cmd.Flags().Changed("destination") {
				destinationID, err := resolveDestination(ctx, env, f.destination)
				if err != nil {
					return err
				}
				update.DestinationID = &destinationID
			}
			if cmd.Flags().Changed("pilot") {
				update.PilotID = &f.pilot
			}

			flight, err := env.app.Scheduler.Update(ctx, id, update)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(toFlightView(flight), "Updated flight %s (id %d)", flight.FlightNumber, id)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.clearPilot, "clear-pilot", false, "remove the assigned pilot")
	return cmd
}

func newFlightAssignCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <flight-id> <pilot-id>",
		Short: "Assign a pilot to a flight",
		Long: `Assign a pilot to a flight.

The pilot must be available, experienced enough and free for the whole
[departure, arrival) window of the flight.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			pilotID, err := parseIDArg(args[1])
			if err != nil {
				return err
			}
			if err := env.app.Scheduler.AssignPilot(cmd.Context(), flightID, pilotID); err != nil {
				return err
			}
			return env.printer(cmd).Message(map[string]int64{"flightId": flightID, "pilotId": pilotID},
				"Assigned pilot %d to flight %d", pilotID, flightID)
		},
	}
}

func newFlightUnassignCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <flight-id>",
		Short: "Remove the pilot from a flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := env.app.Scheduler.UnassignPilot(cmd.Context(), flightID); err != nil {
				return err
			}
			return env.printer(cmd).Message(map[string]int64{"flightId": flightID}, "Flight %d has no pilot", flightID)
		},
	}
}

func newFlightDeleteCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a flight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := env.app.Scheduler.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return env.printer(cmd).Message(map[string]int64{"deleted": id}, "Deleted flight %d", id)
		},
	}
}

func newFlightUpcomingCommand(env *commandEnv) *cobra.Command {
	var hours int
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List flights departing soon",
		Long: `List flights departing between now and the end of the window.

The window defaults to UPCOMING_WINDOW_HOURS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window := env.app.Config.UpcomingWindow
			if cmd.Flags().Changed("hours") {
				window = time.Duration(hours) * time.Hour
			}

			flights, err := env.app.Scheduler.Upcoming(cmd.Context(), window)
			if err != nil {
				return err
			}
			return env.printer(cmd).Table(toFlightViews(flights), flightHeader, flightRows(flights))
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 0, "window length in hours")
	return cmd
}

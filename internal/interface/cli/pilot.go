package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"flightops/internal/domain/entity"
	"flightops/pkg/utils"
)

func newPilotCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pilot",
		Aliases: []string{"pilots"},
		Short:   "Manage pilots",
	}

	cmd.AddCommand(
		newPilotAddCommand(env),
		newPilotGetCommand(env),
		newPilotListCommand(env),
		newPilotUpdateCommand(env),
		newPilotDeleteCommand(env),
		newPilotScheduleCommand(env),
	)
	return cmd
}

type pilotFlags struct {
	firstName, lastName, license, phone, status string
	experience                                  int
}

func (f *pilotFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.firstName, "first-name", "", "first name")
	flags.StringVar(&f.lastName, "last-name", "", "last name")
	flags.StringVar(&f.license, "license", "", "license number")
	flags.IntVar(&f.experience, "experience", 0, "years of experience")
	flags.StringVar(&f.phone, "phone", "", "phone number")
	flags.StringVar(&f.status, "status", "", "Available, OnLeave or Inactive")
}

func (f *pilotFlags) parseStatus(cmd *cobra.Command) (*entity.PilotStatus, error) {
	if !cmd.Flags().Changed("status") {
		return nil, nil
	}
	status, err := entity.ParsePilotStatus(f.status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func newPilotAddCommand(env *commandEnv) *cobra.Command {
	var f pilotFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a pilot",
		Example: `  flightops pilot add --first-name John --last-name Smith --license ATP001234 --experience 15`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pilot := &entity.Pilot{
				FirstName:       f.firstName,
				LastName:        f.lastName,
				LicenseNumber:   f.license,
				ExperienceYears: f.experience,
				Phone:           f.phone,
			}
			status, err := f.parseStatus(cmd)
			if err != nil {
				return err
			}
			if status != nil {
				pilot.Status = *status
			}

			id, err := env.app.Pilots.Create(cmd.Context(), pilot)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(toPilotView(pilot), "Created pilot %s (id %d)", pilot.FullName(), id)
		},
	}
	f.register(cmd)
	return cmd
}

func newPilotGetCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a pilot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			pilot, err := env.app.Pilots.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return env.printer(cmd).Record(toPilotView(pilot), []table.Row{
				{"ID", pilot.ID},
				{"Name", pilot.FullName()},
				{"License", pilot.LicenseNumber},
				{"Experience", fmt.Sprintf("%d years", pilot.ExperienceYears)},
				{"Phone", pilot.Phone},
				{"Status", pilot.Status},
			})
		},
	}
}

func newPilotListCommand(env *commandEnv) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pilots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter entity.PilotFilter
			if status != "" {
				parsed, err := entity.ParsePilotStatus(status)
				if err != nil {
					return err
				}
				filter.Status = parsed
			}

			pilots, err := env.app.Pilots.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			views := make([]pilotView, 0, len(pilots))
			rows := make([]table.Row, 0, len(pilots))
			for _, p := range pilots {
				views = append(views, toPilotView(p))
				rows = append(rows, table.Row{p.ID, p.FullName(), p.LicenseNumber, p.ExperienceYears, p.Phone, p.Status})
			}
			return env.printer(cmd).Table(views,
				table.Row{"ID", "Name", "License", "Experience", "Phone", "Status"}, rows)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only pilots in this status")
	return cmd
}

func newPilotUpdateCommand(env *commandEnv) *cobra.Command {
	var f pilotFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a pilot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			status, err := f.parseStatus(cmd)
			if err != nil {
				return err
			}
			update := entity.PilotUpdate{
				FirstName:       stringFlag(cmd, "first-name", f.firstName),
				LastName:        stringFlag(cmd, "last-name", f.lastName),
				LicenseNumber:   stringFlag(cmd, "license", f.license),
				ExperienceYears: intFlag(cmd, "experience", f.experience),
				Phone:           stringFlag(cmd, "phone", f.phone),
				Status:          status,
			}

			pilot, err := env.app.Pilots.Update(cmd.Context(), id, update)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(toPilotView(pilot), "Updated pilot %s (id %d)", pilot.FullName(), id)
		},
	}
	f.register(cmd)
	return cmd
}

func newPilotDeleteCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pilot without upcoming flights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := env.app.Pilots.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return env.printer(cmd).Message(map[string]int64{"deleted": id}, "Deleted pilot %d", id)
		},
	}
}

type scheduleView struct {
	Pilot       pilotView    `json:"pilot"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to,omitempty"`
	Flights     []flightView `json:"flights"`
	FlightCount int          `json:"flightCount"`
	TotalHours  float64      `json:"totalHours"`
}

func newPilotScheduleCommand(env *commandEnv) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:     "schedule <id>",
		Short:   "Show a pilot's flights and workload",
		Example: `  flightops pilot schedule 3 --from 2025-03-14 --to 2025-03-21`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			var period entity.TimeRange
			if start, err := optionalTime(cmd, "from", from); err != nil {
				return err
			} else if start != nil {
				period.From = *start
			}
			if end, err := optionalTime(cmd, "to", to); err != nil {
				return err
			} else if end != nil {
				period.To = *end
			}

			schedule, err := env.app.Pilots.Schedule(cmd.Context(), id, period)
			if err != nil {
				return err
			}

			p := env.printer(cmd)
			if p.json() {
				return p.JSON(scheduleView{
					Pilot:       toPilotView(schedule.Pilot),
					From:        utils.FormatDateTime(period.From),
					To:          utils.FormatDateTime(period.To),
					Flights:     toFlightViews(schedule.Flights),
					FlightCount: schedule.Workload.FlightCount,
					TotalHours:  schedule.Workload.TotalHours,
				})
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d flight(s), %.1f hours\n",
				schedule.Pilot.FullName(), schedule.Pilot.LicenseNumber,
				schedule.Workload.FlightCount, schedule.Workload.TotalHours)
			return p.Table(nil, flightHeader, flightRows(schedule.Flights))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first departure time to include")
	cmd.Flags().StringVar(&to, "to", "", "departure time to stop before")
	return cmd
}

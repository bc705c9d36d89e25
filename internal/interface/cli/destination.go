package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"flightops/internal/domain/entity"
)

func newDestinationCommand(env *commandEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "destination",
		Aliases: []string{"destinations", "dest"},
		Short:   "Manage destinations",
	}

	cmd.AddCommand(
		newDestinationAddCommand(env),
		newDestinationGetCommand(env),
		newDestinationListCommand(env),
		newDestinationUpdateCommand(env),
		newDestinationDeleteCommand(env),
	)
	return cmd
}

type destinationFlags struct {
	name, code, city, country, timezone, terminal string
}

func (f *destinationFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.code, "code", "", "three letter airport code")
	flags.StringVar(&f.name, "name", "", "airport name")
	flags.StringVar(&f.city, "city", "", "city")
	flags.StringVar(&f.country, "country", "", "country")
	flags.StringVar(&f.timezone, "timezone", "", "timezone label, e.g. GMT+0")
	flags.StringVar(&f.terminal, "terminal", "", "terminal information")
}

func newDestinationAddCommand(env *commandEnv) *cobra.Command {
	var f destinationFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a destination",
		Example: `  flightops destination add --code LHR --city London --country "United Kingdom" --timezone GMT+0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			destination := &entity.Destination{
				Name:         f.name,
				Code:         f.code,
				City:         f.city,
				Country:      f.country,
				Timezone:     f.timezone,
				TerminalInfo: f.terminal,
			}
			id, err := env.app.Destinations.Create(cmd.Context(), destination)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(toDestinationView(destination),
				"Created destination %s (id %d)", destination.Code, id)
		},
	}
	f.register(cmd)
	return cmd
}

func newDestinationGetCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|code>",
		Short: "Show a destination by ID or airport code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				destination *entity.Destination
				err         error
			)
			if id, idErr := parseIDArg(args[0]); idErr == nil {
				destination, err = env.app.Destinations.Get(cmd.Context(), id)
			} else {
				destination, err = env.app.Destinations.GetByCode(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			return env.printer(cmd).Record(toDestinationView(destination), []table.Row{
				{"ID", destination.ID},
				{"Code", destination.Code},
				{"Name", destination.Name},
				{"City", destination.City},
				{"Country", destination.Country},
				{"Timezone", destination.Timezone},
				{"Terminal", destination.TerminalInfo},
			})
		},
	}
}

func newDestinationListCommand(env *commandEnv) *cobra.Command {
	var filter entity.DestinationFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List destinations with their flight counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			destinations, err := env.app.Destinations.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			views := make([]destinationView, 0, len(destinations))
			rows := make([]table.Row, 0, len(destinations))
			for _, d := range destinations {
				views = append(views, toDestinationView(d))
				rows = append(rows, table.Row{d.ID, d.Code, d.City, d.Country, d.Timezone, d.TerminalInfo, d.FlightCount})
			}
			return env.printer(cmd).Table(views,
				table.Row{"ID", "Code", "City", "Country", "Timezone", "Terminal", "Flights"}, rows)
		},
	}
	cmd.Flags().StringVar(&filter.City, "city", "", "only destinations in this city")
	cmd.Flags().StringVar(&filter.Country, "country", "", "only destinations in this country")
	return cmd
}

func newDestinationUpdateCommand(env *commandEnv) *cobra.Command {
	var f destinationFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			update := entity.DestinationUpdate{
				Name:         stringFlag(cmd, "name", f.name),
				Code:         stringFlag(cmd, "code", f.code),
				City:         stringFlag(cmd, "city", f.city),
				Country:      stringFlag(cmd, "country", f.country),
				Timezone:     stringFlag(cmd, "timezone", f.timezone),
				TerminalInfo: stringFlag(cmd, "terminal", f.terminal),
			}

			destination, err := env.app.Destinations.Update(cmd.Context(), id, update)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(toDestinationView(destination), "Updated destination %s (id %d)", destination.Code, id)
		},
	}
	f.register(cmd)
	return cmd
}

func newDestinationDeleteCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a destination no flight references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := env.app.Destinations.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return env.printer(cmd).Message(map[string]int64{"deleted": id}, "Deleted destination %d", id)
		},
	}
}

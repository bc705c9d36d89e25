package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatsCommand(env *commandEnv) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show flight, destination and pilot statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := env.app.Statistics.Summary(cmd.Context(), top)
			if err != nil {
				return err
			}

			p := env.printer(cmd)
			if p.json() {
				return p.JSON(summary)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Pilots: %d  Destinations: %d  Flights: %d\n\n",
				summary.Totals.Pilots, summary.Totals.Destinations, summary.Totals.Flights)

			statusRows := make([]table.Row, 0, len(summary.ByStatus))
			for _, s := range summary.ByStatus {
				statusRows = append(statusRows, table.Row{s.Status, s.Count})
			}
			if err := p.Table(nil, table.Row{"Status", "Flights"}, statusRows); err != nil {
				return err
			}

			destinationRows := make([]table.Row, 0, len(summary.Destinations))
			for _, d := range summary.Destinations {
				destinationRows = append(destinationRows, table.Row{d.Code, d.City, d.FlightCount})
			}
			if err := p.Table(nil, table.Row{"Code", "City", "Flights"}, destinationRows); err != nil {
				return err
			}

			pilotRows := make([]table.Row, 0, len(summary.Pilots))
			for _, w := range summary.Pilots {
				pilotRows = append(pilotRows, table.Row{w.Name, w.LicenseNumber, w.ExperienceYears, w.FlightCount, fmt.Sprintf("%.1f", w.TotalHours)})
			}
			if err := p.Table(nil, table.Row{"Pilot", "License", "Experience", "Flights", "Hours"}, pilotRows); err != nil {
				return err
			}

			aircraftRows := make([]table.Row, 0, len(summary.AircraftTypes))
			for _, a := range summary.AircraftTypes {
				aircraftRows = append(aircraftRows, table.Row{a.AircraftType, a.FlightCount, fmt.Sprintf("%.0f", a.AverageCapacity)})
			}
			return p.Table(nil, table.Row{"Aircraft", "Flights", "Avg capacity"}, aircraftRows)
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "number of destinations to show, 0 for all")
	return cmd
}

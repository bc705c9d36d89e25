package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newSeedCommand(env *commandEnv) *cobra.Command {
	var baseFlag string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample destinations, pilots and flights",
		Long: `Load 15 destinations, 12 pilots and 15 flights into an empty store.

Flight times are offsets from the base time, today at 08:00 UTC by default.`,
		Example: `  flightops seed
  flightops seed --base "2025-03-14 08:00"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base := time.Now().UTC().Truncate(24 * time.Hour).Add(8 * time.Hour)
			if baseFlag != "" {
				t, err := parseTimeArg(baseFlag)
				if err != nil {
					return err
				}
				base = t
			}

			result, err := env.app.Seeder.Seed(cmd.Context(), base)
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(result, "Loaded %d destinations, %d pilots and %d flights",
				result.Destinations, result.Pilots, result.Flights)
		},
	}

	cmd.Flags().StringVar(&baseFlag, "base", "", "base time for the sample flights")
	return cmd
}

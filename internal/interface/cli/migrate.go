package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply pending schema migrations and print the schema version.

Every command migrates the store before it runs; this command only reports
the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := env.app.MigrationVersion()
			if err != nil {
				return err
			}
			return env.printer(cmd).Message(map[string]int64{"version": version},
				"Schema is at version %d", version)
		},
	}
}

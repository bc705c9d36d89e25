// Package cli implements the flightops command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightops/internal/domain/errs"
	"flightops/internal/infrastructure/config"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type rootOptions struct {
	driver   string
	dbPath   string
	logLevel string
	output   string
}

// commandEnv is shared by every subcommand. app is set in PersistentPreRunE.
type commandEnv struct {
	opts rootOptions
	app  *App
}

// NewRootCmd creates the root command and all subcommands
func NewRootCmd(version string) *cobra.Command {
	rootCmd, _ := newRootCmd(version)
	return rootCmd
}

func newRootCmd(version string) (*cobra.Command, *commandEnv) {
	env := &commandEnv{}

	rootCmd := &cobra.Command{
		Use:   "flightops",
		Short: "Manage destinations, pilots and flight schedules",
		Long: `flightops keeps a relational store of destinations, pilots and flights.

Pilots are never assigned to two flights whose [departure, arrival) windows
overlap, and records still in use cannot be deleted.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsStore(cmd) {
				return nil
			}
			switch env.opts.output {
			case OutputTable, OutputJSON:
			default:
				return errs.Validation("cli.output", "unsupported output %q (want %s or %s)", env.opts.output, OutputTable, OutputJSON)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			env.applyFlags(cmd, cfg)

			app, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			env.app = app
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&env.opts.driver, "driver", "", "database driver: sqlite or postgres (overrides DB_DRIVER)")
	flags.StringVar(&env.opts.dbPath, "db", "", "sqlite database path, :memory: for a throwaway store (overrides DB_PATH)")
	flags.StringVar(&env.opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	flags.StringVarP(&env.opts.output, "output", "o", OutputTable, "output format: table or json")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputTable, OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newMigrateCommand(env))
	rootCmd.AddCommand(newSeedCommand(env))
	rootCmd.AddCommand(newDestinationCommand(env))
	rootCmd.AddCommand(newPilotCommand(env))
	rootCmd.AddCommand(newFlightCommand(env))
	rootCmd.AddCommand(newStatsCommand(env))

	return rootCmd, env
}

// skipsStore reports whether cmd runs without opening the store
func skipsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd {
			return true
		}
	}
	return false
}

func (e *commandEnv) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Database.Driver = e.opts.driver
	}
	if flags.Changed("db") {
		cfg.Database.Path = e.opts.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = e.opts.logLevel
	}
}

// close releases the app opened for the command, if any
func (e *commandEnv) close() error {
	if e.app == nil {
		return nil
	}
	err := e.app.Close()
	e.app = nil
	return err
}

func (e *commandEnv) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), e.opts.output)
}

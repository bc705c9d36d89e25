package cli

import (
	"time"

	"github.com/spf13/cobra"

	"flightops/internal/domain/errs"
	"flightops/pkg/utils"
)

func parseIDArg(value string) (int64, error) {
	id, err := utils.ParseID(value)
	if err != nil {
		return 0, errs.Validation("cli.args", "%s", err)
	}
	return id, nil
}

func parseTimeArg(value string) (time.Time, error) {
	t, err := utils.ParseDateTime(value, time.UTC)
	if err != nil {
		return time.Time{}, errs.Validation("cli.args", "%s", err)
	}
	return t, nil
}

// optionalTime parses a time flag only when it was set
func optionalTime(cmd *cobra.Command, name, value string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	t, err := parseTimeArg(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func stringFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func intFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

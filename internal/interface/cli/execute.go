package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"flightops/internal/domain/errs"
)

// Exit codes by error kind
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitConflict   = 4
)

// Execute runs the command line with args and returns the process exit code
func Execute(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	rootCmd, env := newRootCmd(version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := env.close(); err == nil {
		err = closeErr
	}
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var typed *errs.Error
	if !errors.As(err, &typed) {
		return ExitInternal
	}
	switch typed.Kind {
	case errs.KindValidation:
		return ExitValidation
	case errs.KindNotFound:
		return ExitNotFound
	case errs.KindConflict:
		return ExitConflict
	default:
		return ExitInternal
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/naoray/gitkit/internal/cli"
	"github.com/naoray/gitkit/internal/config"
	gkerrors "github.com/naoray/gitkit/internal/errors"
	"github.com/naoray/gitkit/internal/flow"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, gkerrors.ErrRebaseConflict) {
			fmt.Fprintln(os.Stderr, "Resolve the conflict, run 'git rebase --continue', then run 'gitkit branch flow' again.")
		}
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return config.ExitSuccess
	case errors.Is(err, gkerrors.ErrRebaseConflict):
		return config.ExitRebaseConflict
	case errors.Is(err, gkerrors.ErrBranchNotFound):
		return config.ExitBranchNotFound
	case errors.Is(err, gkerrors.ErrInvalidArgument):
		return config.ExitInvalidArguments
	case errors.Is(err, config.ErrInvalidConfig):
		return config.ExitConfigurationError
	case errors.Is(err, gkerrors.ErrBackendQuery),
		errors.Is(err, gkerrors.ErrGitOperationFailed),
		errors.Is(err, flow.ErrRebaseInProgress):
		return config.ExitGitOperationFailed
	default:
		return config.ExitGeneralError
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	gkerrors "github.com/naoray/gitkit/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "gitkit",
	Short: "Visualize and restack git branches that track each other",
	Long: `gitkit shows local branches as a tree built from their upstream
configuration and rebases a stack of dependent branches onto their
parents in one go.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		cmd.SetContext(log.WithContext(commandContext(cmd), newLogger(cmd, verbose)))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the command line against ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newLogger(cmd *cobra.Command, verbose bool) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  log.InfoLevel,
		Prefix: "gitkit",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isDryRun(cmd *cobra.Command) bool {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return dryRun
}

func init() {
	rootCmd.PersistentFlags().Bool("dry-run", false, "Preview operations without executing")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", gkerrors.ErrInvalidArgument, err)
	})
}

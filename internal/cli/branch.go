package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naoray/gitkit/internal/branchtree"
	gkerrors "github.com/naoray/gitkit/internal/errors"
	"github.com/naoray/gitkit/internal/flow"
	"github.com/naoray/gitkit/internal/ui"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// confirmFlow is replaced in tests, which have no terminal to prompt on.
var confirmFlow = ui.ConfirmFlow

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Inspect and restack branches linked by upstream",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var branchTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show local branches as a tree of upstreams",
	Long: `Print every local branch under the branch it tracks, with how far it
is behind and ahead of that upstream, its latest commit title and hash.
Branches tracking a remote or nothing at all are roots.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format, _ := cmd.Flags().GetString("format")
		if format != formatText && format != formatYAML {
			return fmt.Errorf("%w: --format must be %s or %s, got %q", gkerrors.ErrInvalidArgument, formatText, formatYAML, format)
		}

		rc, err := OpenRepoFromCWD(ctx)
		if err != nil {
			return err
		}

		forest, err := branchtree.Build(ctx, rc.Backend, rc.TreeOptions())
		if err != nil {
			return fmt.Errorf("building branch tree: %w", err)
		}

		out := cmd.OutOrStdout()
		if format == formatYAML {
			data, err := branchtree.MarshalYAML(forest)
			if err != nil {
				return fmt.Errorf("encoding branch tree: %w", err)
			}
			_, err = out.Write(data)
			return err
		}

		styler := ui.NewStyler(out, rc.Config.Color)
		_, err = fmt.Fprint(out, branchtree.Render(forest, styler, rc.RenderOptions()))
		return err
	},
}

var branchFlowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Rebase every branch below the current one onto its upstream",
	Long: `Rebase the branches stacked on the current branch onto their
upstreams, parents before children, then check the current branch out
again. Each branch name is printed as it is rebased.

On a conflict the run stops with the repository mid-rebase. Resolve it,
finish the rebase with git, and run flow again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		confirm, _ := cmd.Flags().GetBool("confirm")
		dryRun := isDryRun(cmd)

		rc, err := OpenRepoFromCWD(ctx)
		if err != nil {
			return err
		}

		opts := flow.DefaultOptions()
		opts.Tree = rc.TreeOptions()
		engine := flow.NewEngine(rc.Backend, cmd.OutOrStdout(), opts)

		if dryRun || confirm {
			start, steps, err := engine.Plan(ctx)
			if err != nil {
				return err
			}

			if dryRun {
				printPlan(cmd, start, steps)
				return nil
			}

			if len(steps) > 0 {
				ok, err := confirmFlow(ctx, describe(steps))
				if err != nil && !ui.IsAbort(err) {
					return fmt.Errorf("confirming flow: %w", err)
				}
				if !ok || err != nil {
					log.FromContext(ctx).Info("flow cancelled")
					return nil
				}
			}
		}

		return engine.Run(ctx)
	},
}

func printPlan(cmd *cobra.Command, start string, steps []flow.Step) {
	out := cmd.OutOrStdout()
	if len(steps) == 0 {
		fmt.Fprintf(out, "[DRY-RUN] Nothing stacked on %s\n", start)
		return
	}
	for _, step := range steps {
		fmt.Fprintf(out, "[DRY-RUN] Would rebase %s\n", step)
	}
	fmt.Fprintf(out, "[DRY-RUN] Would check out %s\n", start)
}

func describe(steps []flow.Step) []string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = step.String()
	}
	return lines
}

func init() {
	branchTreeCmd.Flags().String("format", formatText, "Output format (text, yaml)")
	branchFlowCmd.Flags().Bool("confirm", false, "Show the planned rebases and ask before starting")

	branchCmd.AddCommand(branchTreeCmd)
	branchCmd.AddCommand(branchFlowCmd)
	rootCmd.AddCommand(branchCmd)
}

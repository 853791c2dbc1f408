// Package flow rebases a stack of dependent branches onto their upstreams,
// parent first.
package flow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/naoray/gitkit/internal/branchtree"
	gkerrors "github.com/naoray/gitkit/internal/errors"
	"github.com/naoray/gitkit/internal/git"
)

// Step is one rebase of Branch onto Upstream.
type Step struct {
	Upstream string
	Branch   string
}

func (s Step) String() string {
	return fmt.Sprintf("%s onto %s", s.Branch, s.Upstream)
}

// Options controls a flow run.
type Options struct {
	Tree branchtree.Options
	// RefuseMidRebase makes Run fail before touching anything when the
	// repository is already stopped in a rebase.
	RefuseMidRebase bool
}

// DefaultOptions returns the options used by the branch flow command.
func DefaultOptions() Options {
	return Options{
		Tree:            branchtree.DefaultOptions(),
		RefuseMidRebase: true,
	}
}

// ErrRebaseInProgress is returned when a run starts on a repository that is
// stopped mid-rebase.
var ErrRebaseInProgress = errors.New("a rebase is already in progress")

// Engine runs flows against one backend. Progress is written to out, one
// branch name per line.
type Engine struct {
	backend git.Backend
	out     io.Writer
	opts    Options
}

// NewEngine creates an engine. A nil out discards progress.
func NewEngine(backend git.Backend, out io.Writer, opts Options) *Engine {
	if out == nil {
		out = io.Discard
	}
	return &Engine{backend: backend, out: out, opts: opts}
}

// Plan returns the rebases Run would perform, in order, and the branch the
// run starts from.
func (e *Engine) Plan(ctx context.Context) (string, []Step, error) {
	start, err := e.start(ctx)
	if err != nil {
		return "", nil, err
	}
	return start.Name, plan(start), nil
}

// Run rebases every branch below the active one onto its upstream in
// pre-order, then checks the active branch out again. A conflict stops the
// run where it is; the repository is left mid-rebase for the user to resolve
// and a *errors.RebaseConflictError is returned.
func (e *Engine) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)

	if e.opts.RefuseMidRebase {
		inProgress, err := e.backend.RebaseInProgress(ctx)
		if err != nil {
			return fmt.Errorf("checking rebase state: %w", err)
		}
		if inProgress {
			return ErrRebaseInProgress
		}
	}

	start, err := e.start(ctx)
	if err != nil {
		return err
	}

	err = start.WalkEdges(func(parent, child *branchtree.Node) error {
		logger.Debug("rebasing", "branch", child.Name, "upstream", parent.Name)
		fmt.Fprintln(e.out, child.Name)
		return e.rebase(ctx, Step{Upstream: parent.Name, Branch: child.Name})
	})
	if err != nil {
		return err
	}

	if err := e.backend.Checkout(ctx, start.Name); err != nil {
		return fmt.Errorf("returning to %s: %w", start.Name, err)
	}
	return nil
}

func (e *Engine) rebase(ctx context.Context, step Step) error {
	output, err := e.backend.Rebase(ctx, step.Upstream, step.Branch)

	var conflict *gkerrors.RebaseConflictError
	switch {
	case errors.As(err, &conflict):
		if conflict.Output == "" {
			conflict.Output = output
		}
	case git.HasConflictMarker(output):
		conflict = gkerrors.NewRebaseConflictError(step.Upstream, step.Branch, output)
	case err != nil:
		return fmt.Errorf("rebasing %s: %w", step, err)
	default:
		return nil
	}

	fmt.Fprint(e.out, conflict.Output)
	if conflict.Output != "" && conflict.Output[len(conflict.Output)-1] != '\n' {
		fmt.Fprintln(e.out)
	}
	return conflict
}

// start rebuilds the forest and returns the active branch.
func (e *Engine) start(ctx context.Context) (*branchtree.Node, error) {
	forest, err := branchtree.Build(ctx, e.backend, e.opts.Tree)
	if err != nil {
		return nil, err
	}

	active := forest.Active()
	if active == nil {
		return nil, fmt.Errorf("%w: HEAD is not on a local branch", gkerrors.ErrBranchNotFound)
	}
	return active, nil
}

// plan lists one step per branch below start. A non-root node's Upstream
// always names its parent.
func plan(start *branchtree.Node) []Step {
	descendants := start.Descendants()
	steps := make([]Step, len(descendants))
	for i, node := range descendants {
		steps[i] = Step{Upstream: node.Upstream, Branch: node.Name}
	}
	return steps
}

// Package exec provides interfaces and implementations for command execution.
// Backends run git through a Commander so tests can script its output.
package exec

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single command when the caller's context has no deadline.
const DefaultTimeout = 5 * time.Minute

// Commander defines the interface for executing commands.
// Implementations can provide real command execution or mock behavior for testing.
type Commander interface {
	// Run executes a command in the specified directory with the given arguments.
	// Returns the combined stdout and stderr output, and any execution error.
	Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error)

	// Output executes a command like Run but returns standard output only.
	// Standard error of a failed command is available through Stderr.
	Output(ctx context.Context, dir string, command string, args ...string) ([]byte, error)
}

// RealCommander executes commands using the real operating system.
type RealCommander struct{}

// Run executes the command using exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Output executes the command and returns its standard output.
func (c *RealCommander) Output(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Stderr returns the standard error captured by a failed Output call, or nil.
func Stderr(err error) []byte {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Stderr
	}
	return nil
}

// CommandExecutor wraps a Commander with the conventions gitkit uses for
// every git invocation: a default timeout and debug logging.
type CommandExecutor struct {
	commander Commander
	timeout   time.Duration
}

// NewCommandExecutor creates a new CommandExecutor with the given Commander.
// If commander is nil, a RealCommander is used.
func NewCommandExecutor(commander Commander) *CommandExecutor {
	if commander == nil {
		commander = &RealCommander{}
	}
	return &CommandExecutor{commander: commander, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of the executor using d as its default timeout.
// A zero or negative d disables the default timeout.
func (e *CommandExecutor) WithTimeout(d time.Duration) *CommandExecutor {
	clone := *e
	clone.timeout = d
	return &clone
}

// RunGit executes git with args in dir and returns stdout and stderr
// interleaved.
func (e *CommandExecutor) RunGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return e.git(ctx, dir, e.commander.Run, args)
}

// OutputGit executes git with args in dir and returns stdout only.
func (e *CommandExecutor) OutputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return e.git(ctx, dir, e.commander.Output, args)
}

type runFunc func(ctx context.Context, dir string, command string, args ...string) ([]byte, error)

func (e *CommandExecutor) git(ctx context.Context, dir string, run runFunc, args []string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok && e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger := log.FromContext(ctx)
	logger.Debug("running git", "dir", dir, "args", strings.Join(args, " "))

	output, err := run(ctx, dir, "git", args...)
	if err != nil {
		logger.Debug("git failed", "args", strings.Join(args, " "), "err", err)
	}
	return output, err
}

// DefaultExecutor is a package-level default executor using RealCommander.
var DefaultExecutor = NewCommandExecutor(nil)

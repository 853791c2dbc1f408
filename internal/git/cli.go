package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gkerrors "github.com/naoray/gitkit/internal/errors"
	gkexec "github.com/naoray/gitkit/internal/exec"
)

// CLIBackend answers Backend calls by running the git binary in a directory.
type CLIBackend struct {
	dir      string
	executor *gkexec.CommandExecutor
}

// NewCLIBackend creates a backend rooted at dir. A nil executor runs real git.
func NewCLIBackend(dir string, executor *gkexec.CommandExecutor) *CLIBackend {
	if executor == nil {
		executor = gkexec.DefaultExecutor
	}
	return &CLIBackend{dir: dir, executor: executor}
}

// Dir returns the directory git runs in.
func (b *CLIBackend) Dir() string {
	return b.dir
}

func (b *CLIBackend) run(ctx context.Context, args ...string) (string, error) {
	output, err := b.executor.RunGit(ctx, b.dir, args...)
	if err != nil {
		return string(output), gkerrors.NewGitCommandError(args, string(output), err)
	}
	return string(output), nil
}

// query runs a read-only git command and returns its standard output.
func (b *CLIBackend) query(ctx context.Context, args ...string) (string, error) {
	output, err := b.executor.OutputGit(ctx, b.dir, args...)
	if err != nil {
		return string(output), gkerrors.NewGitCommandError(args, string(gkexec.Stderr(err)), err)
	}
	return string(output), nil
}

// firstLine runs a query that must print at least one line.
func (b *CLIBackend) firstLine(ctx context.Context, args ...string) (string, error) {
	query := strings.Join(args, " ")
	output, err := b.query(ctx, args...)
	if err != nil {
		return "", gkerrors.NewBackendQueryError(query, err)
	}
	lines := outputLines(output)
	if len(lines) == 0 {
		return "", gkerrors.NewBackendQueryError(query, nil)
	}
	return lines[0], nil
}

func (b *CLIBackend) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := b.firstLine(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return "", gkerrors.NewBackendQueryError("rev-parse --abbrev-ref HEAD", nil)
	}
	return branch, nil
}

func (b *CLIBackend) UpstreamMap(ctx context.Context) (map[string]string, error) {
	args := []string{"for-each-ref", "--format=%(refname:short) %(upstream:short)", "refs/heads"}
	output, err := b.query(ctx, args...)
	if err != nil {
		return nil, gkerrors.NewBackendQueryError(strings.Join(args, " "), err)
	}

	lines := outputLines(output)
	if len(lines) == 0 {
		return nil, gkerrors.NewBackendQueryError(strings.Join(args, " "), nil)
	}

	upstreams := make(map[string]string, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, " ", 2)
		branch := strings.TrimSpace(parts[0])
		if branch == "" {
			continue
		}
		upstream := ""
		if len(parts) == 2 {
			upstream = strings.TrimSpace(parts[1])
		}
		upstreams[branch] = upstream
	}
	return upstreams, nil
}

func (b *CLIBackend) CommitCountDifference(ctx context.Context, a, c string) (int, error) {
	rangeSpec := a + ".." + c
	line, err := b.firstLine(ctx, "rev-list", "--count", rangeSpec)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, gkerrors.NewBackendQueryError("rev-list --count "+rangeSpec, err)
	}
	return count, nil
}

func (b *CLIBackend) LatestCommitHash(ctx context.Context, branch string) (string, error) {
	hash, err := b.firstLine(ctx, "log", "-1", "--format=%h", branch, "--")
	if err != nil {
		return "", err
	}
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return "", gkerrors.NewBackendQueryError("log -1 --format=%h "+branch, nil)
	}
	return hash, nil
}

func (b *CLIBackend) LatestCommitTitle(ctx context.Context, branch string) (string, error) {
	args := []string{"log", "-1", "--format=%s", branch, "--"}
	output, err := b.query(ctx, args...)
	if err != nil {
		return "", gkerrors.NewBackendQueryError(strings.Join(args, " "), err)
	}
	// An empty subject is still a line; only missing output is a failure.
	if output == "" {
		return "", gkerrors.NewBackendQueryError(strings.Join(args, " "), nil)
	}
	lines := outputLines(output)
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

func (b *CLIBackend) Checkout(ctx context.Context, branch string) error {
	if _, err := b.run(ctx, "checkout", branch); err != nil {
		return fmt.Errorf("checking out %s: %w", branch, err)
	}
	return nil
}

func (b *CLIBackend) Rebase(ctx context.Context, upstream, child string) (string, error) {
	output, err := b.run(ctx, "rebase", upstream, child)
	if err != nil {
		if isConflictOutput(output) {
			return output, gkerrors.NewRebaseConflictError(upstream, child, output)
		}
		return output, fmt.Errorf("rebasing %s onto %s: %w", child, upstream, err)
	}
	return output, nil
}

func (b *CLIBackend) RebaseInProgress(ctx context.Context) (bool, error) {
	for _, state := range []string{"rebase-merge", "rebase-apply"} {
		path, err := b.firstLine(ctx, "rev-parse", "--git-path", state)
		if err != nil {
			return false, err
		}
		path = strings.TrimSpace(path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.dir, path)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return true, nil
		}
	}
	return false, nil
}

// RepoRoot returns the top-level directory of the working tree containing dir.
func (b *CLIBackend) RepoRoot(ctx context.Context) (string, error) {
	root, err := b.firstLine(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(root), nil
}

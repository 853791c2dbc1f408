// Package git implements the version-control backend gitkit builds branch
// trees from and runs rebases against.
package git

import (
	"context"
	"strings"
)

// ConflictMarker is the text git prints for every conflicting path during a rebase.
const ConflictMarker = "CONFLICT"

// Backend is the set of primitive git queries and mutations gitkit relies on.
type Backend interface {
	// CurrentBranch returns the short name of HEAD ("HEAD" when detached).
	CurrentBranch(ctx context.Context) (string, error)

	// UpstreamMap maps every local branch to its short upstream name,
	// or "" when the branch tracks nothing.
	UpstreamMap(ctx context.Context) (map[string]string, error)

	// CommitCountDifference counts commits reachable from b but not from a.
	CommitCountDifference(ctx context.Context, a, b string) (int, error)

	LatestCommitHash(ctx context.Context, branch string) (string, error)
	LatestCommitTitle(ctx context.Context, branch string) (string, error)

	Checkout(ctx context.Context, branch string) error

	// Rebase replays child's commits onto upstream and returns git's output.
	// A stop for manual conflict resolution is reported as a
	// *errors.RebaseConflictError alongside the output.
	Rebase(ctx context.Context, upstream, child string) (string, error)

	// RebaseInProgress reports whether the repository is stopped mid-rebase.
	RebaseInProgress(ctx context.Context) (bool, error)
}

// HasConflictMarker reports whether rebase output mentions a conflict.
func HasConflictMarker(output string) bool {
	return strings.Contains(output, ConflictMarker)
}

func isConflictOutput(output string) bool {
	return HasConflictMarker(output) ||
		strings.Contains(output, "could not apply") ||
		strings.Contains(output, "Resolve all conflicts manually")
}

// outputLines splits command output into lines, dropping the trailing newline.
// Empty output yields no lines.
func outputLines(output string) []string {
	output = strings.TrimRight(output, "\r\n")
	if output == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

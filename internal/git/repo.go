package git

import (
	"context"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	gkerrors "github.com/naoray/gitkit/internal/errors"
	gkexec "github.com/naoray/gitkit/internal/exec"
)

const shortHashLength = 7

// RepoBackend answers read queries in-process with go-git. go-git cannot
// rebase, so checkout and rebase fall through to the embedded CLIBackend.
type RepoBackend struct {
	*CLIBackend
	repo *gogit.Repository
}

// OpenRepoBackend opens the repository containing dir.
func OpenRepoBackend(dir string, executor *gkexec.CommandExecutor) (*RepoBackend, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return &RepoBackend{
		CLIBackend: NewCLIBackend(dir, executor),
		repo:       repo,
	}, nil
}

func (b *RepoBackend) CurrentBranch(ctx context.Context) (string, error) {
	head, err := b.repo.Head()
	if err != nil {
		return "", gkerrors.NewBackendQueryError("HEAD", err)
	}
	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

func (b *RepoBackend) UpstreamMap(ctx context.Context) (map[string]string, error) {
	cfg, err := b.repo.Config()
	if err != nil {
		return nil, gkerrors.NewBackendQueryError("config", err)
	}

	iter, err := b.repo.Branches()
	if err != nil {
		return nil, gkerrors.NewBackendQueryError("refs/heads", err)
	}
	defer iter.Close()

	upstreams := make(map[string]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		upstream := ""
		if branch, ok := cfg.Branches[name]; ok && branch.Merge != "" && branch.Remote != "" {
			if branch.Remote == "." {
				upstream = branch.Merge.Short()
			} else {
				upstream = branch.Remote + "/" + branch.Merge.Short()
			}
		}
		upstreams[name] = upstream
		return nil
	})
	if err != nil {
		return nil, gkerrors.NewBackendQueryError("refs/heads", err)
	}
	if len(upstreams) == 0 {
		return nil, gkerrors.NewBackendQueryError("refs/heads", nil)
	}
	return upstreams, nil
}

func (b *RepoBackend) CommitCountDifference(ctx context.Context, a, c string) (int, error) {
	query := a + ".." + c
	from, err := b.commit(a)
	if err != nil {
		return 0, gkerrors.NewBackendQueryError(query, err)
	}
	to, err := b.commit(c)
	if err != nil {
		return 0, gkerrors.NewBackendQueryError(query, err)
	}

	excluded := make(map[plumbing.Hash]bool)
	err = object.NewCommitPreorderIter(from, nil, nil).ForEach(func(commit *object.Commit) error {
		excluded[commit.Hash] = true
		return ctx.Err()
	})
	if err != nil {
		return 0, gkerrors.NewBackendQueryError(query, err)
	}

	// Excluded commits are never expanded, so their ancestors are not walked again.
	count := 0
	err = object.NewCommitPreorderIter(to, excluded, nil).ForEach(func(commit *object.Commit) error {
		count++
		return ctx.Err()
	})
	if err != nil {
		return 0, gkerrors.NewBackendQueryError(query, err)
	}
	return count, nil
}

func (b *RepoBackend) LatestCommitHash(ctx context.Context, branch string) (string, error) {
	commit, err := b.commit(branch)
	if err != nil {
		return "", gkerrors.NewBackendQueryError("hash of "+branch, err)
	}
	return commit.Hash.String()[:shortHashLength], nil
}

func (b *RepoBackend) LatestCommitTitle(ctx context.Context, branch string) (string, error) {
	commit, err := b.commit(branch)
	if err != nil {
		return "", gkerrors.NewBackendQueryError("title of "+branch, err)
	}
	return subject(commit.Message), nil
}

// subject returns the first paragraph of a commit message with its lines
// joined by single spaces, as git's %s placeholder prints it.
func subject(message string) string {
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				continue
			}
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}

func (b *RepoBackend) commit(rev string) (*object.Commit, error) {
	hash, err := b.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	return b.repo.CommitObject(*hash)
}

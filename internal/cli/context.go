package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/naoray/gitkit/internal/branchtree"
	"github.com/naoray/gitkit/internal/config"
	gkexec "github.com/naoray/gitkit/internal/exec"
	"github.com/naoray/gitkit/internal/git"
)

// RepoContext is the repository a command operates on, with its settings
// and the backend selected for it.
type RepoContext struct {
	CWD     string
	Root    string
	Config  *config.Config
	Backend git.Backend
}

// OpenRepoFromCWD resolves the repository containing the working directory.
func OpenRepoFromCWD(ctx context.Context) (*RepoContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	return openRepo(ctx, cwd)
}

func openRepo(ctx context.Context, dir string) (*RepoContext, error) {
	root, err := git.NewCLIBackend(dir, nil).RepoRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("not inside a git working tree: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	backend, err := newBackend(root, cfg)
	if err != nil {
		return nil, err
	}

	return &RepoContext{
		CWD:     dir,
		Root:    root,
		Config:  cfg,
		Backend: backend,
	}, nil
}

func newBackend(root string, cfg *config.Config) (git.Backend, error) {
	executor := gkexec.NewCommandExecutor(nil).WithTimeout(cfg.CommandTimeout)

	switch cfg.Backend {
	case config.BackendGoGit:
		backend, err := git.OpenRepoBackend(root, executor)
		if err != nil {
			return nil, fmt.Errorf("opening repository: %w", err)
		}
		return backend, nil
	default:
		return git.NewCLIBackend(root, executor), nil
	}
}

// TreeOptions returns the builder options for this repository.
func (rc *RepoContext) TreeOptions() branchtree.Options {
	return branchtree.Options{RemotePrefixes: rc.Config.RemotePrefixes}
}

// RenderOptions returns the renderer options for this repository.
func (rc *RepoContext) RenderOptions() branchtree.RenderOptions {
	return branchtree.RenderOptions{TitleWidth: rc.Config.TitleWidth}
}

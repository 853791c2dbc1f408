package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors(t *testing.T) {
	assert.True(t, errors.Is(ErrBackendQuery, ErrBackendQuery))
	assert.False(t, errors.Is(ErrBackendQuery, ErrRebaseConflict))
	assert.False(t, errors.Is(ErrRebaseConflict, ErrGitOperationFailed))

	wrapped := fmt.Errorf("context: %w", ErrBranchNotFound)
	assert.True(t, errors.Is(wrapped, ErrBranchNotFound))
	assert.False(t, errors.Is(wrapped, ErrBackendQuery))
}

func TestBackendQueryError(t *testing.T) {
	err := NewBackendQueryError("rev-parse --abbrev-ref HEAD", nil)
	assert.True(t, errors.Is(err, ErrBackendQuery))
	assert.Equal(t, `git query "rev-parse --abbrev-ref HEAD" returned no output`, err.Error())

	cause := NewGitCommandError([]string{"rev-parse"}, "fatal: not a git repository", errors.New("exit status 128"))
	err = NewBackendQueryError("rev-parse", cause)
	assert.True(t, errors.Is(err, ErrBackendQuery))
	assert.True(t, errors.Is(err, ErrGitOperationFailed))

	var gitErr *GitCommandError
	assert.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "fatal: not a git repository", gitErr.Output)
}

func TestRebaseConflictError(t *testing.T) {
	err := fmt.Errorf("flow: %w", NewRebaseConflictError("main", "feature", "CONFLICT (content): Merge conflict in a.txt"))

	assert.True(t, errors.Is(err, ErrRebaseConflict))

	var conflict *RebaseConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "main", conflict.Upstream)
	assert.Equal(t, "feature", conflict.Branch)
	assert.Contains(t, conflict.Output, "CONFLICT")
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "git query failed", ErrBackendQuery.Error())
	assert.Equal(t, "rebase conflict", ErrRebaseConflict.Error())
	assert.Equal(t, "branch not found", ErrBranchNotFound.Error())
	assert.Equal(t, "git operation failed", ErrGitOperationFailed.Error())
	assert.Equal(t, "invalid argument", ErrInvalidArgument.Error())
	assert.Equal(t, "rebase conflict while rebasing feature onto main",
		NewRebaseConflictError("main", "feature", "").Error())

	gitErr := NewGitCommandError([]string{"checkout", "nope"}, "error: pathspec 'nope' did not match\n", errors.New("exit status 1"))
	assert.Equal(t, "git checkout nope failed: exit status 1\nerror: pathspec 'nope' did not match", gitErr.Error())
}

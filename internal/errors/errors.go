// Package errors provides sentinel errors and typed errors for gitkit.
// Use errors.Is() and errors.As() to check for specific conditions.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBackendQuery indicates that a git query produced no usable output
	ErrBackendQuery = errors.New("git query failed")

	// ErrRebaseConflict indicates that a rebase stopped on a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrBranchNotFound indicates that a branch is not part of the local branch set
	ErrBranchNotFound = errors.New("branch not found")

	// ErrGitOperationFailed indicates that a git process exited with an error
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrInvalidArgument indicates a flag or argument value gitkit does not support
	ErrInvalidArgument = errors.New("invalid argument")
)

// BackendQueryError describes a query that returned nothing parseable.
type BackendQueryError struct {
	Query string
	Err   error
}

func (e *BackendQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("git query %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("git query %q returned no output", e.Query)
}

func (e *BackendQueryError) Is(target error) bool {
	return target == ErrBackendQuery
}

func (e *BackendQueryError) Unwrap() error {
	return e.Err
}

// NewBackendQueryError creates a BackendQueryError. err may be nil.
func NewBackendQueryError(query string, err error) *BackendQueryError {
	return &BackendQueryError{Query: query, Err: err}
}

// RebaseConflictError is returned when rebasing Branch onto Upstream stopped
// for manual resolution. Output holds the text git printed.
type RebaseConflictError struct {
	Upstream string
	Branch   string
	Output   string
}

func (e *RebaseConflictError) Error() string {
	return fmt.Sprintf("rebase conflict while rebasing %s onto %s", e.Branch, e.Upstream)
}

func (e *RebaseConflictError) Is(target error) bool {
	return target == ErrRebaseConflict
}

// NewRebaseConflictError creates a RebaseConflictError
func NewRebaseConflictError(upstream, branch, output string) *RebaseConflictError {
	return &RebaseConflictError{
		Upstream: upstream,
		Branch:   branch,
		Output:   output,
	}
}

// GitCommandError represents a failed git process
type GitCommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *GitCommandError) Error() string {
	msg := "git " + strings.Join(e.Args, " ") + " failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *GitCommandError) Is(target error) bool {
	return target == ErrGitOperationFailed
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a GitCommandError
func NewGitCommandError(args []string, output string, err error) *GitCommandError {
	return &GitCommandError{
		Args:   args,
		Output: output,
		Err:    err,
	}
}

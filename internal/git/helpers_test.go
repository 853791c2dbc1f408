package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestRepo initialises a repository on main with one commit and
// returns its working directory.
func createTestRepo(t *testing.T) string {
	t.Helper()
	repoDir := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, os.MkdirAll(repoDir, 0755))

	runGit(t, repoDir, "init", "-b", "main")
	runGit(t, repoDir, "config", "user.email", "test@example.com")
	runGit(t, repoDir, "config", "user.name", "Test User")
	commitFile(t, repoDir, "README.md", "test", "Initial commit")

	return repoDir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s\n%s", strings.Join(args, " "), string(output))
	return string(output)
}

func commitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-m", message)
}

// createStackedRepo builds:
//
//	main            "Main moves on"
//	  feature       "Add feature" (tracks main, 1 ahead, 1 behind)
//	solo            no upstream
//	mirror          tracks origin/main through a fake remote
func createStackedRepo(t *testing.T) string {
	t.Helper()
	dir := createTestRepo(t)

	runGit(t, dir, "branch", "solo")
	runGit(t, dir, "checkout", "-b", "feature", "--track", "main")
	commitFile(t, dir, "feature.txt", "feature", "Add feature")
	runGit(t, dir, "checkout", "main")
	commitFile(t, dir, "main.txt", "main", "Main moves on")

	runGit(t, dir, "remote", "add", "origin", "https://example.com/repo.git")
	runGit(t, dir, "update-ref", "refs/remotes/origin/main", "main")
	runGit(t, dir, "branch", "mirror", "main")
	runGit(t, dir, "config", "branch.mirror.remote", "origin")
	runGit(t, dir, "config", "branch.mirror.merge", "refs/heads/main")

	return dir
}

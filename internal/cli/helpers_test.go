package cli

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolateConfig keeps a developer's own gitkit settings out of the tests.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(key, "GITKIT_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
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

// createStack builds main <- a <- b, then moves main on by one commit and
// leaves main checked out.
func createStack(t *testing.T) string {
	t.Helper()
	isolateConfig(t)
	dir := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, os.MkdirAll(dir, 0755))

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	commitFile(t, dir, "README.md", "test", "Initial commit")

	runGit(t, dir, "checkout", "-b", "a", "--track", "main")
	commitFile(t, dir, "a.txt", "a", "A work")
	runGit(t, dir, "checkout", "-b", "b", "--track", "a")
	commitFile(t, dir, "b.txt", "b", "B work")

	runGit(t, dir, "checkout", "main")
	commitFile(t, dir, "main.txt", "main", "Main moves")
	return dir
}

func currentBranch(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(runGit(t, dir, "rev-parse", "--abbrev-ref", "HEAD"))
}

func countBetween(t *testing.T, dir, from, to string) string {
	t.Helper()
	return strings.TrimSpace(runGit(t, dir, "rev-list", "--count", from+".."+to))
}

// executeCommand runs the root command inside dir with flags reset to their
// defaults and returns what it wrote to stdout and stderr.
func executeCommand(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	if dir != "" {
		t.Chdir(dir)
	}

	require.NoError(t, rootCmd.PersistentFlags().Set("dry-run", "false"))
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))
	require.NoError(t, branchTreeCmd.Flags().Set("format", formatText))
	require.NoError(t, branchFlowCmd.Flags().Set("confirm", "false"))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

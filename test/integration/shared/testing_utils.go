// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up a git repository with
// sops policy files, staging files, and running the hook against it.
package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/sops-pre-commit/cmd"
	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
)

// Repository is a temporary git repository the hook runs in.
type Repository struct {
	Dir      string
	worktree *git.Worktree
}

// SetupTestEnvironment creates a git repository in a temporary directory,
// changes into it, and clears hook settings from the environment.
func SetupTestEnvironment(t *testing.T) *Repository {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv("SOPS_PRE_COMMIT_HOOK_OUTPUT_LEVEL", "")
	t.Setenv("SOPS_PRE_COMMIT_HOOK_CONFIG_NAME", "")
	t.Setenv("SOPS_PRE_COMMIT_HOOK_MARKER", "")

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repository: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to open worktree: %v", err)
	}

	t.Chdir(dir)
	return &Repository{Dir: dir, worktree: worktree}
}

// WriteFile writes content to a path relative to the repository root.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func (r *Repository) WriteFile(t *testing.T, path, content string) {
	t.Helper()
	full := filepath.Join(r.Dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// Stage writes content to path and adds it to the index.
func (r *Repository) Stage(t *testing.T, path, content string) {
	t.Helper()
	r.WriteFile(t, path, content)
	if _, err := r.worktree.Add(filepath.ToSlash(path)); err != nil {
		t.Fatalf("Failed to stage %s: %v", path, err)
	}
}

// RunHook executes the hook with args and returns stdout, stderr and the error.
func RunHook(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd.ResetGlobalState()
	t.Cleanup(cmd.ResetGlobalState)

	var stdout, stderr bytes.Buffer
	hook := cmd.GetCheckCmd()
	hook.SetOut(&stdout)
	hook.SetErr(&stderr)
	hook.SetArgs(args)

	err := hook.Execute()
	return stdout.String(), stderr.String(), err
}

// ReadFile returns the content of a path relative to the repository root.
func (r *Repository) ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.Dir, path))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

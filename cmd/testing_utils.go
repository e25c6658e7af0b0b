// Package cmd contains testing utilities shared between command tests.
// This file provides helpers for running the CLI against a temporary
// project and capturing its output.
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
)

// runCLI executes CheckCmd with args and returns stdout, stderr and the error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	var stdout, stderr bytes.Buffer
	cmd := GetCheckCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// setupTestEnvironment clears hook settings from the environment, disables
// colors, and changes into a fresh temporary directory which it returns.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
	t.Setenv("SOPS_PRE_COMMIT_HOOK_OUTPUT_LEVEL", "")
	t.Setenv("SOPS_PRE_COMMIT_HOOK_CONFIG_NAME", "")
	t.Setenv("SOPS_PRE_COMMIT_HOOK_MARKER", "")

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// writeTestFile writes content to a path relative to the working directory.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

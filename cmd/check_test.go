package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/sops-pre-commit/internal/workflows"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sopsConfig = `creation_rules:
  - path_regex: .*\.secret\.yaml$
  - path_regex: values\.yaml$
    encrypted_regex: ^password$
`

func TestCheckPrintsNothingOnSuccess(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, ".sops.yaml", sopsConfig)
	writeTestFile(t, "db.secret.yaml", "password: ENC[AES256_GCM,data:x]\n")
	writeTestFile(t, "main.go", "package main\n")

	stdout, stderr, err := runCLI(t, "db.secret.yaml", "main.go")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestCheckPrintsOneLinePerFailure(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, ".sops.yaml", sopsConfig)
	writeTestFile(t, "a.secret.yaml", "password: hunter2\n")
	writeTestFile(t, "ok.secret.yaml", "password: ENC[AES256_GCM,data:x]\n")
	writeTestFile(t, filepath.Join("chart", "values.yaml"), "db:\n  password: hunter2\n")

	stdout, _, err := runCLI(t, "a.secret.yaml", "ok.secret.yaml", filepath.Join("chart", "values.yaml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksFailed))
	assert.Equal(t, []string{
		"NOT encrypted: a.secret.yaml",
		"Key found and NOT encrypted: " + filepath.Join("chart", "values.yaml") + ": db.password",
	}, strings.Split(strings.TrimRight(stdout, "\n"), "\n"))
}

func TestCheckKubernetesSecretWithoutConfig(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, "secret.yaml", "apiVersion: v1\nkind: Secret\ndata:\n  password: aHVudGVyMg==\n")

	stdout, _, err := runCLI(t, "secret.yaml")

	assert.True(t, errors.Is(err, ErrChecksFailed))
	assert.Equal(t, "NOT encrypted: secret.yaml\n", stdout)
}

func TestCheckJSONOutput(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, ".sops.yaml", sopsConfig)
	writeTestFile(t, "a.secret.yaml", "password: hunter2\n")
	writeTestFile(t, "README.md", "# readme\n")

	stdout, _, err := runCLI(t, "--json", "a.secret.yaml", "README.md")
	assert.True(t, errors.Is(err, ErrChecksFailed))

	var result workflows.CheckResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Results, 2)
	assert.Equal(t, workflows.StatusFail, result.Results[0].Status)
	assert.Equal(t, workflows.StatusExempt, result.Results[1].Status)
	assert.Len(t, result.Failures, 1)
}

func TestCheckExcludeFlag(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, ".sops.yaml", sopsConfig)
	writeTestFile(t, filepath.Join("testdata", "a.secret.yaml"), "password: hunter2\n")

	stdout, _, err := runCLI(t, "--exclude", "testdata/**", filepath.Join("testdata", "a.secret.yaml"))

	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestCheckConfigNameFromEnvironment(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("SOPS_PRE_COMMIT_HOOK_CONFIG_NAME", "policy.yaml")
	writeTestFile(t, "policy.yaml", "creation_rules:\n  - path_regex: \\.txt$\n")
	writeTestFile(t, "notes.txt", "plain\n")

	stdout, _, err := runCLI(t, "notes.txt")

	assert.True(t, errors.Is(err, ErrChecksFailed))
	assert.Equal(t, "NOT encrypted: notes.txt\n", stdout)
}

func TestCheckConfigNameFlagOverridesEnvironment(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("SOPS_PRE_COMMIT_HOOK_CONFIG_NAME", "policy.yaml")
	writeTestFile(t, "policy.yaml", "creation_rules:\n  - path_regex: \\.txt$\n")
	writeTestFile(t, "notes.txt", "plain\n")

	_, _, err := runCLI(t, "--config-name", ".sops.yaml", "notes.txt")

	require.NoError(t, err)
}

func TestCheckOutputLevelWritesDiagnosticsToStderr(t *testing.T) {
	for _, level := range []string{"verbose", "debug", "trace"} {
		t.Run(level, func(t *testing.T) {
			setupTestEnvironment(t)
			t.Setenv("SOPS_PRE_COMMIT_HOOK_OUTPUT_LEVEL", level)
			writeTestFile(t, ".sops.yaml", sopsConfig)
			writeTestFile(t, "a.secret.yaml", "password: hunter2\n")

			stdout, stderr, err := runCLI(t, "a.secret.yaml")

			assert.True(t, errors.Is(err, ErrChecksFailed))
			assert.Equal(t, "NOT encrypted: a.secret.yaml\n", stdout)
			assert.Contains(t, stderr, "[info] Found configuration: .sops.yaml")
			assert.Contains(t, stderr, "[info] fail a.secret.yaml")
			if level != "verbose" {
				assert.Contains(t, stderr, "[debug] Checking a.secret.yaml")
			} else {
				assert.NotContains(t, stderr, "[debug]")
			}
			if level == "trace" {
				assert.Contains(t, stderr, "[trace] Test: .sops.yaml")
			} else {
				assert.NotContains(t, stderr, "[trace]")
			}
		})
	}
}

func TestCheckDebugFlag(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, "main.go", "package main\n")

	_, stderr, err := runCLI(t, "--debug", "main.go")

	require.NoError(t, err)
	assert.Contains(t, stderr, "[debug] Checking main.go")
}

func TestCheckStagedWhenNoArguments(t *testing.T) {
	dir := setupTestEnvironment(t)
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	writeTestFile(t, ".sops.yaml", sopsConfig)
	writeTestFile(t, "a.secret.yaml", "password: hunter2\n")
	writeTestFile(t, "b.secret.yaml", "password: hunter2\n")
	_, err = worktree.Add("a.secret.yaml")
	require.NoError(t, err)

	stdout, _, err := runCLI(t)

	assert.True(t, errors.Is(err, ErrChecksFailed))
	assert.Equal(t, "NOT encrypted: a.secret.yaml\n", stdout)
}

func TestCheckInvalidMarker(t *testing.T) {
	setupTestEnvironment(t)
	writeTestFile(t, "main.go", "package main\n")

	_, _, err := runCLI(t, "--marker", "ENC[", "main.go")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrChecksFailed))
}

func TestStatusLabel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "pass", statusLabel(workflows.StatusPass))
	assert.Equal(t, "(exempt)", statusLabel(workflows.StatusExempt))
	assert.Equal(t, "fail", statusLabel(workflows.StatusFail))
}

func TestOutputLevel(t *testing.T) {
	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	assert.Equal(t, "warn", outputLevel("").String())
	assert.Equal(t, "debug", outputLevel("debug").String())

	verbose = true
	assert.Equal(t, "info", outputLevel("").String())
	assert.Equal(t, "debug", outputLevel("debug").String())

	debug = true
	assert.Equal(t, "debug", outputLevel("verbose").String())
}

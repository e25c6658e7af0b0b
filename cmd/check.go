package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/sops-pre-commit/internal/configs"
	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
	"github.com/PolarWolf314/sops-pre-commit/internal/ui"
	"github.com/PolarWolf314/sops-pre-commit/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// ErrChecksFailed is returned when at least one file fails. The failures
// have already been printed, so callers only need to set the exit status.
var ErrChecksFailed = errors.New("one or more files are not encrypted")

var (
	verbose    bool
	debug      bool
	staged     bool
	jsonOutput bool
	jobs       int
	configName string
	marker     string
	exclude    []string

	Logger logger.Logger

	CheckCmd = &cobra.Command{
		Use:   "sops-pre-commit [flags] FILE...",
		Short: "Check that secret files are encrypted with sops before they are committed",
		Long: `Checks each file against the nearest .sops.yaml and fails if a file that
must be encrypted is not.

A file governed by a creation rule must contain the sops ciphertext marker.
Rules with an encrypted_regex also accept files in which no matching key
holds a plaintext value. Without a .sops.yaml, YAML files declaring
"kind: secret" must be encrypted.

Failures are printed one per line and the command exits with status 1.
Nothing is printed when every file passes.

With no FILE arguments the files staged in the current git repository are
checked.

Environment:
  SOPS_PRE_COMMIT_HOOK_OUTPUT_LEVEL   verbose, debug or trace
  SOPS_PRE_COMMIT_HOOK_CONFIG_NAME    policy file name (default .sops.yaml)
  SOPS_PRE_COMMIT_HOOK_MARKER         ciphertext marker pattern
  NO_COLOR                            disable colored output

Examples:
  # Check files as pre-commit does
  sops-pre-commit deploy/db.secret.yaml values.yaml

  # Check everything staged, skipping test fixtures
  sops-pre-commit --staged --exclude 'testdata/**'`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := configs.LoadHookSettings()
			if err != nil {
				return err
			}
			applySettings(cmd, settings)

			Logger = logger.New(cmd.ErrOrStderr(), outputLevel(settings.OutputLevel))
			Logger.Debugf("Initializing check with level=%s, config=%s", Logger.Level(), configName)
			return nil
		},
		RunE: runCheck,
	}
)

func init() {
	flags := CheckCmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.BoolVar(&staged, "staged", false, "check files staged in the current git repository")
	flags.BoolVar(&jsonOutput, "json", false, "print every result as JSON")
	flags.IntVarP(&jobs, "jobs", "j", 1, "number of files to check concurrently")
	flags.StringVar(&configName, "config-name", configs.DefaultConfigName, "policy file name to search for")
	flags.StringVar(&marker, "marker", "", "ciphertext marker pattern (default ENC\\[AES256)")
	flags.StringArrayVar(&exclude, "exclude", nil, "glob of paths to skip (repeatable, ** supported)")
}

// applySettings fills flags the user did not set from environment settings.
func applySettings(cmd *cobra.Command, settings *configs.HookSettings) {
	if !cmd.Flags().Changed("config-name") && settings.ConfigName != "" {
		configName = settings.ConfigName
	}
	if !cmd.Flags().Changed("marker") && settings.Marker != "" {
		marker = settings.Marker
	}
}

// outputLevel combines the environment level with --verbose and --debug,
// keeping whichever shows more.
func outputLevel(envLevel string) zapcore.Level {
	level := logger.LevelFromString(envLevel)
	if verbose && zapcore.InfoLevel < level {
		level = zapcore.InfoLevel
	}
	if debug && zapcore.DebugLevel < level {
		level = zapcore.DebugLevel
	}
	return level
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer Logger.Sync()

	opts := workflows.CheckOptions{
		Files:  args,
		Staged: staged || len(args) == 0,
		Jobs:   jobs,
		ClassifierOptions: workflows.ClassifierOptions{
			ConfigName: configName,
			Marker:     marker,
			Exclude:    exclude,
		},
	}
	Logger.Debugf("Checking %d files, staged=%t", len(args), opts.Staged)

	result, err := workflows.Check(cmd.Context(), opts, Logger)
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to check files: %v", err)
	}

	for _, r := range result.Results {
		Logger.Infof("%s %s", statusLabel(r.Status), r.Path)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		for _, reason := range result.FailureReasons() {
			fmt.Fprint(out, ui.EnsureNewline(ui.Fail.Sprint(reason)))
		}
	}

	if !result.OK() {
		return ErrChecksFailed
	}
	return nil
}

// statusLabel renders a result status for the verbose summary.
func statusLabel(status workflows.Status) string {
	switch status {
	case workflows.StatusPass:
		return ui.Pass.Sprint(string(status))
	case workflows.StatusExempt:
		return ui.Exempt.Sprint(string(status))
	default:
		return ui.Fail.Sprint(string(status))
	}
}

// Helper functions for testing

// GetCheckCmd returns the CheckCmd for testing.
func GetCheckCmd() *cobra.Command {
	return CheckCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	staged = false
	jsonOutput = false
	jobs = 1
	configName = configs.DefaultConfigName
	marker = ""
	exclude = nil
	Logger = logger.Logger{}

	CheckCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
}

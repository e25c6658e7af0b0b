// Package logger provides leveled diagnostics for the hook.
//
// Output is written to stderr with colored bracket prefixes so it never mixes
// with the failure lines printed on stdout. Diagnostics are informational
// only: nothing in the classification logic reads the level.
//
// # Output Levels
//
// The level comes from SOPS_PRE_COMMIT_HOOK_OUTPUT_LEVEL or the
// --verbose/--debug flags:
//
//   - verbose: info messages (configuration found, rule skipped)
//   - debug:   per-file decisions
//   - trace:   every candidate path and pattern test
//
// Without a level only warnings and errors are shown.
//
// # Usage
//
//	log := logger.New(os.Stderr, logger.LevelFromString("debug"))
//	log.Debugf("Checking %s", path)
//
// Tests can observe entries with NewTestLogger.
package logger

package errors

import "errors"

// Configuration errors describe the state of the nearest .sops.yaml.
var (
	// ErrConfigNotFound indicates no policy configuration exists between the
	// file and the filesystem root. This drives the heuristic fallback.
	ErrConfigNotFound = errors.New("sops configuration not found")

	// ErrConfigNotYAML indicates a configuration file exists but does not parse.
	ErrConfigNotYAML = errors.New("sops configuration not YAML")

	// ErrInvalidPattern indicates a configured regular expression does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// File errors describe problems with a candidate file.
var (
	// ErrFileUnreadable indicates a candidate file could not be read.
	ErrFileUnreadable = errors.New("file is not readable")

	// ErrDocumentNotParseable indicates a candidate file is not structured data.
	ErrDocumentNotParseable = errors.New("document is not parseable")
)

// Repository errors.
var (
	// ErrNotGitRepository indicates --staged was used outside a git work tree.
	ErrNotGitRepository = errors.New("not a git repository")
)

// Package errors provides typed error values for the hook.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Configuration errors: ErrConfigNotFound, ErrConfigNotYAML, ErrInvalidPattern
//   - File errors: ErrFileUnreadable, ErrDocumentNotParseable
//   - Repository errors: ErrNotGitRepository
//
// ErrConfigNotFound is not a failure: a missing configuration is a valid
// state that sends classification to the YAML heuristic.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return nil, fmt.Errorf("reading %s: %w", path, errors.ErrFileUnreadable)
//
// Handle them at the call site:
//
//	cfg, err := cache.Load(path)
//	if errors.Is(err, kerrors.ErrConfigNotFound) {
//	    // fall back to the kind: secret heuristic
//	}
package errors

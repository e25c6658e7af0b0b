// Package utils provides shared helpers for the hook.
//
// # Repository Utilities
//
//   - StagedFiles: lists files staged in the enclosing git repository
//
// # Path Utilities
//
//   - MatchesAnyGlob, ValidateGlobs: doublestar patterns for --exclude
//   - FormatPaths: formats file paths for human-readable output
package utils

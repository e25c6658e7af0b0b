package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/sops-pre-commit/internal/ui"
	"github.com/bmatcuk/doublestar/v4"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// ValidateGlobs returns an error naming the first malformed pattern.
func ValidateGlobs(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern: %q", pattern)
		}
	}
	return nil
}

// MatchesAnyGlob reports whether path matches one of the doublestar patterns.
// Paths are compared with forward slashes on every platform.
func MatchesAnyGlob(path string, patterns []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

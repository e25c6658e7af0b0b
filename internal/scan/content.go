package scan

import (
	"fmt"
	"regexp"
	"sync"

	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
)

const (
	// DefaultMarkerPattern matches the ciphertext tag sops writes for every
	// encrypted value.
	DefaultMarkerPattern = `ENC\[AES256`

	// KindSecretPattern matches the kind line of a Kubernetes Secret manifest.
	KindSecretPattern = `^kind:\ssecret$`

	// YAMLFilePattern matches file names the Kubernetes heuristic applies to.
	YAMLFilePattern = `.*\.ya?ml`
)

var (
	kindSecretRegex = regexp.MustCompile(`(?im)` + KindSecretPattern)
	yamlFileRegex   = regexp.MustCompile(`(?i)` + YAMLFilePattern)

	markers sync.Map // pattern -> *regexp.Regexp
)

// CompileMarker compiles a marker pattern for case-insensitive, multi-line
// search. Compiled patterns are shared across calls.
func CompileMarker(pattern string) (*regexp.Regexp, error) {
	if re, ok := markers.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(`(?im)` + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: marker %q: %v", kerrors.ErrInvalidPattern, pattern, err)
	}
	markers.Store(pattern, re)
	return re, nil
}

// ContainsMarker reports whether text contains the marker pattern anywhere.
func ContainsMarker(text, pattern string) (bool, error) {
	re, err := CompileMarker(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(text), nil
}

// IsKindSecret reports whether text has a line reading "kind: secret", in any case.
func IsKindSecret(text string) bool {
	return kindSecretRegex.MatchString(text)
}

// IsYAMLFileName reports whether path looks like a YAML file.
func IsYAMLFileName(path string) bool {
	return yamlFileRegex.MatchString(path)
}

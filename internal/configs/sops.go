package configs

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// CreationRulesKey is the top-level key holding the ordered rule list.
const CreationRulesKey = "creation_rules"

// CreationRule is one entry of creation_rules. Keys the hook does not use
// (age, pgp, kms, key_groups, ...) are ignored.
type CreationRule struct {
	// PathRegex selects the files this rule governs. A rule without one
	// never matches.
	PathRegex string `koanf:"path_regex"`

	// EncryptedRegex names the keys whose values must be encrypted. When set,
	// a file without the marker passes as long as no such key holds a
	// plaintext scalar.
	EncryptedRegex string `koanf:"encrypted_regex"`

	// MarkerRegex overrides the default ciphertext marker pattern.
	MarkerRegex string `koanf:"marker_regex"`
}

// SopsConfig is a loaded policy configuration. Rule order is significant:
// the first matching rule wins.
type SopsConfig struct {
	Path          string
	CreationRules []CreationRule
}

// LoadSopsConfig reads and parses the configuration at path.
func LoadSopsConfig(path string) (*SopsConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrFileUnreadable, path, err)
	}
	return ParseSopsConfig(path, content)
}

// ParseSopsConfig parses configuration bytes. Content that is not a YAML
// mapping, or whose creation_rules is not a list of mappings, returns
// ErrConfigNotYAML. A missing creation_rules key yields an empty rule list.
func ParseSopsConfig(path string, content []byte) (*SopsConfig, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigNotYAML, path, err)
	}

	cfg := &SopsConfig{Path: path}
	if !k.Exists(CreationRulesKey) {
		return cfg, nil
	}

	if err := k.Unmarshal(CreationRulesKey, &cfg.CreationRules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrConfigNotYAML, path, err)
	}

	return cfg, nil
}

package configs

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every environment variable the hook reads.
	EnvPrefix = "SOPS_PRE_COMMIT_HOOK_"

	// DefaultConfigName is the policy file searched for in each ancestor directory.
	DefaultConfigName = ".sops.yaml"
)

// HookSettings holds invocation-wide settings.
type HookSettings struct {
	// OutputLevel is one of verbose, debug or trace. Anything else is quiet.
	OutputLevel string `koanf:"output_level"`

	// ConfigName overrides DefaultConfigName.
	ConfigName string `koanf:"config_name"`

	// Marker overrides the default ciphertext marker pattern for files whose
	// rule does not set marker_regex.
	Marker string `koanf:"marker"`
}

// LoadHookSettings reads settings from the environment.
//
//	SOPS_PRE_COMMIT_HOOK_OUTPUT_LEVEL -> output_level
//	SOPS_PRE_COMMIT_HOOK_CONFIG_NAME  -> config_name
//	SOPS_PRE_COMMIT_HOOK_MARKER       -> marker
func LoadHookSettings() (*HookSettings, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var settings HookSettings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	settings.OutputLevel = strings.TrimSpace(settings.OutputLevel)
	if settings.ConfigName == "" {
		settings.ConfigName = DefaultConfigName
	}

	return &settings, nil
}

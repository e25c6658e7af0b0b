package configs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadsOncePerConfig(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, DefaultConfigName)
	writeTestFile(t, configPath, "creation_rules:\n  - path_regex: x\n")

	cache := NewCache("", logger.Logger{})

	first, err := cache.Nearest(filepath.Join(root, "a.yaml"))
	require.NoError(t, err)

	// Later edits are not observed within one invocation.
	writeTestFile(t, configPath, "creation_rules: []\n")

	second, err := cache.Nearest(filepath.Join(root, "sub", "b.yaml"))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, second.CreationRules, 1)
}

func TestCacheRemembersParseFailures(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, DefaultConfigName)
	writeTestFile(t, configPath, "creation_rules: [\n")

	cache := NewCache(DefaultConfigName, logger.Logger{})

	_, err := cache.Nearest(filepath.Join(root, "a.yaml"))
	assert.True(t, errors.Is(err, kerrors.ErrConfigNotYAML))

	require.NoError(t, os.Remove(configPath))
	writeTestFile(t, configPath, "creation_rules: []\n")

	_, err = cache.Nearest(filepath.Join(root, "b.yaml"))
	assert.True(t, errors.Is(err, kerrors.ErrConfigNotYAML))
}

func TestCacheNotFound(t *testing.T) {
	cache := NewCache("no-such-config-name.yaml", logger.Logger{})
	_, err := cache.Nearest(filepath.Join(t.TempDir(), "a.yaml"))
	assert.True(t, errors.Is(err, kerrors.ErrConfigNotFound))
}

func TestCacheConcurrentUse(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, DefaultConfigName), "creation_rules:\n  - path_regex: x\n")

	cache := NewCache(DefaultConfigName, logger.Logger{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := cache.Nearest(filepath.Join(root, "d", "f.yaml"))
			assert.NoError(t, err)
			assert.Len(t, cfg.CreationRules, 1)
		}()
	}
	wg.Wait()
}

package configs

import (
	"sync"

	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
)

// Cache memoizes loaded configurations by their resolved path. It is safe for
// concurrent use. Parse failures are cached too, so a malformed file is only
// read once per invocation.
type Cache struct {
	configName string
	log        logger.Logger

	mu     sync.Mutex
	byPath map[string]cacheEntry
}

type cacheEntry struct {
	cfg *SopsConfig
	err error
}

// NewCache creates a cache that looks for configName in each ancestor directory.
func NewCache(configName string, log logger.Logger) *Cache {
	if configName == "" {
		configName = DefaultConfigName
	}
	return &Cache{
		configName: configName,
		log:        log,
		byPath:     make(map[string]cacheEntry),
	}
}

// Nearest locates and loads the configuration governing filePath.
func (c *Cache) Nearest(filePath string) (*SopsConfig, error) {
	path, err := Locate(filePath, c.configName, c.log)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	entry, ok := c.byPath[path]
	c.mu.Unlock()
	if ok {
		c.log.Tracef("Using cached configuration: %s", path)
		return entry.cfg, entry.err
	}

	cfg, err := LoadSopsConfig(path)
	if err == nil {
		c.log.Infof("Loaded sops configuration from: %s", path)
	}

	c.mu.Lock()
	c.byPath[path] = cacheEntry{cfg: cfg, err: err}
	c.mu.Unlock()

	return cfg, err
}

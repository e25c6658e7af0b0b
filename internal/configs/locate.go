package configs

import (
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	logger "github.com/PolarWolf314/sops-pre-commit/internal/logging"
)

// Locate walks up from the directory containing startPath and returns the
// first readable configName it finds. The nearest ancestor wins.
//
// The walk stops once the directory stops changing: "/" for absolute paths,
// "." for relative ones. Relative paths are therefore never resolved above
// the working directory, which pre-commit sets to the repository root.
//
// Returns ErrConfigNotFound when no ancestor holds a configuration.
func Locate(startPath, configName string, log logger.Logger) (string, error) {
	dir := filepath.Dir(startPath)
	for {
		candidate := filepath.Join(dir, configName)
		log.Tracef("Test: %s", candidate)
		if isReadableFile(candidate) {
			log.Infof("Found configuration: %s", candidate)
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	log.Debugf("No sops configuration found for %s", startPath)
	return "", kerrors.ErrConfigNotFound
}

// isReadableFile reports whether path is a regular file that can be opened.
// Unreadable candidates are treated as absent.
func isReadableFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

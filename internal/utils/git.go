package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	kerrors "github.com/PolarWolf314/sops-pre-commit/internal/errors"
	"github.com/go-git/go-git/v5"
)

// StagedFiles returns the files staged for commit in the repository
// containing dir. Deleted files are left out since there is nothing to check.
//
// Paths are relative when the working directory is the repository root, as it
// is under pre-commit, and absolute otherwise so that configuration lookup can
// still climb to the root. The result is sorted.
func StagedFiles(dir string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrNotGitRepository, dir)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open work tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read git status: %w", err)
	}

	root := worktree.Filesystem.Root()
	wd, _ := os.Getwd()

	var files []string
	for path, fileStatus := range status {
		switch fileStatus.Staging {
		case git.Unmodified, git.Untracked, git.Deleted:
			continue
		}

		files = append(files, stagedPath(wd, root, filepath.FromSlash(path)))
	}
	sort.Strings(files)

	return files, nil
}

// stagedPath resolves a repository-relative path for the given working directory.
func stagedPath(wd, root, path string) string {
	if wd != "" && filepath.Clean(wd) == filepath.Clean(root) {
		return path
	}
	return filepath.Join(root, path)
}

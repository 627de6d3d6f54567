// Package projectroot locates the directory the build configuration's relative paths resolve against.
package projectroot

import (
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Detect returns the root of the git work tree containing start. When start
// is not inside a repository (or the repository is bare) it returns start
// itself, made absolute.
func Detect(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if stderrors.Is(err, git.ErrIsBareRepository) {
			return abs, nil
		}
		return "", fmt.Errorf("worktree for %s: %w", abs, err)
	}
	return wt.Filesystem.Root(), nil
}

// Resolve returns explicit when set (made absolute), otherwise Detect(start).
func Resolve(explicit, start string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	return Detect(start)
}

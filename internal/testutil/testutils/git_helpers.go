package helpers

import (
	"testing"

	"github.com/go-git/go-git/v5"
)

// SetupTestGitRepo initializes a git work tree in a temporary directory and
// returns the repository with its absolute path.
func SetupTestGitRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()

	tempDir := t.TempDir()

	repo, err := git.PlainInit(tempDir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	return repo, tempDir
}

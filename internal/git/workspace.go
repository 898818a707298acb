package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// findGitRepositoryPath walks up from sourceFolder until it finds a folder that opens as a git repository.
func findGitRepositoryPath(sourceFolder string) (string, error) {
	if sourceFolder == "" {
		return "", fmt.Errorf("source folder is not set")
	}

	for {
		if _, err := git.PlainOpen(sourceFolder); err == nil {
			return sourceFolder, nil
		}

		parent := filepath.Dir(sourceFolder)
		if parent == sourceFolder {
			break
		}
		sourceFolder = parent
	}

	return "", ErrNotRepository
}

// FindWorkspaceRoot returns the root of the git repository enclosing start. When start is not
// inside a repository, start itself (made absolute) is the workspace root.
func FindWorkspaceRoot(start string) (string, error) {
	if start == "" {
		start = "."
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace folder: %w", err)
	}

	root, err := findGitRepositoryPath(abs)
	if err != nil {
		return filepath.Clean(abs), nil
	}
	return filepath.Clean(root), nil
}

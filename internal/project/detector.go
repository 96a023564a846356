// Package project locates the project root a marketplace manifest is
// validated against.
package project

import (
	"os"
	"path/filepath"
)

// FindRoot searches for a project root starting from the given path and
// climbing up the directory tree. A directory counts as a root when it
// holds a .claude-plugin directory, a .claude directory or a .git
// directory. Falls back to the starting directory.
func FindRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	currentDir := absPath
	for {
		if isRoot(currentDir) {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return absPath, nil
}

// isRoot determines if a directory is a project root
func isRoot(path string) bool {
	for _, marker := range []string{".claude-plugin", ".claude", ".git"} {
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return true
		}
	}
	return false
}

// Package discovery locates marketplace manifests under a project root.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// manifestPatterns are probed in order; the first match wins. The
// canonical location comes first, the ** patterns handle marketplaces
// nested in subdirectories, YAML variants support hand-authored manifests.
var manifestPatterns = []string{
	".claude-plugin/marketplace.json",
	".claude-plugin/marketplace.yaml",
	".claude-plugin/marketplace.yml",
	"**/.claude-plugin/marketplace.json",
	"**/.claude-plugin/marketplace.yaml",
	"**/.claude-plugin/marketplace.yml",
}

// FindManifest returns the path of the marketplace manifest under
// rootPath, or an error when none is found.
func FindManifest(rootPath string) (string, error) {
	for _, pattern := range manifestPatterns {
		matches, err := doublestar.Glob(os.DirFS(rootPath), pattern)
		if err != nil {
			return "", fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			fullPath := filepath.Join(rootPath, match)
			info, err := os.Stat(fullPath)
			if err != nil || info.IsDir() {
				continue
			}
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("no marketplace manifest found under %s (looked for .claude-plugin/marketplace.json)", rootPath)
}

// FindManifests returns every marketplace manifest under rootPath, for
// repositories hosting more than one marketplace.
func FindManifests(rootPath string) ([]string, error) {
	seen := make(map[string]bool)
	var found []string
	for _, pattern := range manifestPatterns {
		matches, err := doublestar.Glob(os.DirFS(rootPath), pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			fullPath := filepath.Join(rootPath, match)
			if seen[fullPath] {
				continue
			}
			info, err := os.Stat(fullPath)
			if err != nil || info.IsDir() {
				continue
			}
			seen[fullPath] = true
			found = append(found, fullPath)
		}
	}
	return found, nil
}

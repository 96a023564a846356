// Package validate implements the path existence check for marketplace
// manifests: every relative path a plugin declares in its commands, agents
// or mcpServers list must resolve to an existing file under the project
// root.
package validate

import (
	"fmt"
	"path/filepath"

	"github.com/dotcommander/mplint/internal/manifest"
)

// ValidationError describes one dangling reference: a declared path that
// does not resolve to an existing file.
type ValidationError struct {
	Plugin  string `json:"plugin"`
	Field   string `json:"field"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Stats aggregates path counts for one validation run.
// TotalPaths == ValidPaths + InvalidPaths always holds.
type Stats struct {
	TotalPaths   int `json:"totalPaths"`
	ValidPaths   int `json:"validPaths"`
	InvalidPaths int `json:"invalidPaths"`
}

// Result is the outcome of validating one manifest.
// Valid is true exactly when Errors is empty.
type Result struct {
	Valid            bool              `json:"valid"`
	Errors           []ValidationError `json:"errors"`
	ValidatedPlugins int               `json:"validatedPlugins"`
	Stats            Stats             `json:"stats"`
}

// Validator checks manifest path references against a filesystem. It holds
// no per-run state; every call returns a fresh Result, so a single
// Validator is safe to reuse and to share across goroutines.
type Validator struct {
	fs FS
}

// New creates a Validator backed by the real filesystem.
func New() *Validator {
	return &Validator{fs: OSFS{}}
}

// NewWithFS creates a Validator with a custom filesystem, for tests.
func NewWithFS(fs FS) *Validator {
	return &Validator{fs: fs}
}

// ValidateFile loads the manifest at manifestPath and validates its path
// references against rootDir. A read or parse failure is terminal: the
// Result carries a single synthetic error with the failure message,
// zero plugins and zeroed stats.
func (v *Validator) ValidateFile(manifestPath, rootDir string) Result {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return Result{
			Valid: false,
			Errors: []ValidationError{{
				Path:    manifestPath,
				Message: err.Error(),
			}},
		}
	}
	return v.ValidateData(m, rootDir)
}

// ValidateData validates already-parsed manifest data against rootDir.
// Iteration order is deterministic: plugins in manifest order; within a
// plugin commands, then agents, then mcpServers; within a field, list
// order. Errors are reported in the same order. The input is not mutated.
func (v *Validator) ValidateData(m *manifest.Manifest, rootDir string) Result {
	result := Result{Valid: true}
	if m == nil {
		return result
	}

	result.ValidatedPlugins = len(m.Plugins)
	for i := range m.Plugins {
		plugin := &m.Plugins[i]
		for _, field := range manifest.PathFields {
			for _, path := range plugin.Paths(field) {
				result.Stats.TotalPaths++
				fullPath := filepath.Join(rootDir, path)
				if v.fs.Exists(fullPath) {
					result.Stats.ValidPaths++
					continue
				}
				result.Stats.InvalidPaths++
				result.Errors = append(result.Errors, ValidationError{
					Plugin:  plugin.Name,
					Field:   field,
					Path:    path,
					Message: fmt.Sprintf("File does not exist: %s", path),
				})
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

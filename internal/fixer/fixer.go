// Package fixer removes dangling path references from a marketplace
// manifest. It consumes a validation Result, strips every (plugin, field,
// path) triple reported there, and rewrites the manifest with a backup of
// the original kept alongside.
package fixer

import (
	"fmt"

	"github.com/dotcommander/mplint/internal/manifest"
	"github.com/dotcommander/mplint/internal/validate"
)

// Options controls how Fix rewrites the manifest.
type Options struct {
	// Backup writes <manifest>.backup before rewriting.
	Backup bool
}

// Outcome reports what a Fix run did.
type Outcome struct {
	Removed    int
	BackupPath string
	// Result is the re-validation of the rewritten manifest.
	Result validate.Result
}

// Apply removes every reference listed in errors from the manifest in
// place. A field whose list becomes empty is dropped entirely so it is
// omitted when the manifest is written back. Errors without a field (the
// synthetic manifest-unreadable entry) are ignored. Returns the number of
// references removed.
func Apply(m *manifest.Manifest, errors []validate.ValidationError) int {
	dangling := make(map[[3]string]bool, len(errors))
	for _, e := range errors {
		if e.Field == "" {
			continue
		}
		dangling[[3]string{e.Plugin, e.Field, e.Path}] = true
	}
	if len(dangling) == 0 {
		return 0
	}

	removed := 0
	for i := range m.Plugins {
		plugin := &m.Plugins[i]
		for _, field := range manifest.PathFields {
			paths := plugin.Paths(field)
			if len(paths) == 0 {
				continue
			}
			kept := paths[:0:0]
			for _, path := range paths {
				if dangling[[3]string{plugin.Name, field, path}] {
					removed++
					continue
				}
				kept = append(kept, path)
			}
			plugin.SetPaths(field, kept)
		}
	}
	return removed
}

// Fix rewrites the manifest at manifestPath without the references listed
// in errors, then re-validates against rootDir. The original file is
// backed up first unless opts.Backup is false.
func Fix(manifestPath, rootDir string, errors []validate.ValidationError, opts Options) (*Outcome, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("error loading manifest: %w", err)
	}

	outcome := &Outcome{}
	outcome.Removed = Apply(m, errors)

	if opts.Backup {
		backupPath, err := manifest.Backup(manifestPath)
		if err != nil {
			return nil, err
		}
		outcome.BackupPath = backupPath
	}

	if err := manifest.Save(m, manifestPath); err != nil {
		return nil, err
	}

	outcome.Result = validate.New().ValidateFile(manifestPath, rootDir)
	return outcome, nil
}

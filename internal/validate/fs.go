package validate

import "os"

// FS is the filesystem capability the validator needs. Existence checks
// are the validator's only I/O, so keeping them behind this interface lets
// tests run without touching the real filesystem.
type FS interface {
	// Exists reports whether a regular file or directory exists at path.
	// Stat errors other than "not found" also report false; the caller
	// treats both the same way.
	Exists(path string) bool
}

// OSFS checks existence with os.Stat.
type OSFS struct{}

func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MapFS is a test double backed by a set of known paths.
type MapFS map[string]bool

func (m MapFS) Exists(path string) bool {
	return m[path]
}

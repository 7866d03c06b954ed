// Package storage defines the vault file-system abstraction.
package storage

import "io/fs"

// Provider is the interface for file operations rooted at one directory.
// Every path is relative to that root and may not escape it.
type Provider interface {
	// Root returns the absolute root directory.
	Root() string
	// MkdirAll creates dir and any missing parents. Existing dirs are fine.
	MkdirAll(dir string) error
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent dirs.
	Write(path string, content []byte) error
	// Exists reports whether path is present.
	Exists(path string) bool
	// ReadDir lists the entries of dir sorted by name.
	ReadDir(dir string) ([]fs.DirEntry, error)
	// Glob returns the paths matching a doublestar pattern.
	Glob(pattern string) ([]string, error)
}

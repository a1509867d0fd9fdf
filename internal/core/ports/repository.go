// Package ports defines the core interfaces for the application.
package ports

import "io"

// Repository is the task directory all build paths are relative to.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type Repository interface {
	// Root returns the absolute repository root.
	Root() string
	// AbsPath resolves p against the root unless it is already absolute.
	AbsPath(p string) string
	// RelPath expresses p relative to the root. Relative inputs are taken as
	// root-relative, not cwd-relative.
	RelPath(p string) (string, error)
	// MetadataDir returns the root-relative metadata directory.
	MetadataDir() string
	// IsInitialized reports whether the metadata directory exists.
	IsInitialized() bool
	// Init creates the metadata directory. It is idempotent.
	Init() error
	// RequireInitialized returns ErrRepositoryNotInitialized when the
	// metadata directory is missing.
	RequireInitialized() error
	// Mkdir creates the root-relative directory p.
	Mkdir(p string, recursive bool) error
	// Open opens the root-relative file p for reading.
	Open(p string) (io.ReadCloser, error)
	// Create opens the root-relative file p for writing, truncating it.
	Create(p string) (io.WriteCloser, error)
	// Exists reports whether the root-relative path p exists.
	Exists(p string) bool
	// IsFile reports whether the root-relative path p is a regular file.
	IsFile(p string) bool
	// ReadDir returns the sorted entry names of the root-relative directory p.
	// A missing directory has no entries.
	ReadDir(p string) ([]string, error)
	// Remove deletes the root-relative path p and everything below it.
	// Removing a missing path is not an error.
	Remove(p string) error
	// WriteIfChanged writes data to p only if it differs from the current
	// content. It reports whether the file was written.
	WriteIfChanged(p string, data []byte) (bool, error)
}

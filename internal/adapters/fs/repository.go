// Package fs implements the task directory on the local filesystem.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is a task directory rooted at an absolute path.
type Repository struct {
	root string
}

// NewRepository creates a Repository rooted at dir. The directory does not
// need to be initialized.
func NewRepository(dir string) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPath.Error()), "path", dir)
	}
	return &Repository{root: filepath.Clean(abs)}, nil
}

// FindRepository walks up from start to the closest initialized task
// directory.
func FindRepository(start string) (*Repository, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPath.Error()), "path", start)
	}
	if repo, ok := findInitialized(abs); ok {
		return repo, nil
	}
	return nil, zerr.With(domain.ErrRepositoryNotFound, "start", abs)
}

// Discover returns the closest initialized task directory containing dir, or
// an uninitialized one rooted at dir when there is none.
func Discover(dir string) (*Repository, error) {
	if repo, err := FindRepository(dir); err == nil {
		return repo, nil
	}
	return NewRepository(dir)
}

func findInitialized(dir string) (*Repository, bool) {
	for {
		repo := &Repository{root: dir}
		if repo.IsInitialized() {
			return repo, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}

// Root returns the absolute repository root.
func (r *Repository) Root() string {
	return r.root
}

// AbsPath resolves p against the root unless it is already absolute.
func (r *Repository) AbsPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.root, p)
}

// RelPath expresses p relative to the root. Paths outside the root are
// returned with leading ".." elements.
func (r *Repository) RelPath(p string) (string, error) {
	rel, err := filepath.Rel(r.root, r.AbsPath(p))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInvalidPath.Error()), "path", p)
	}
	return rel, nil
}

// MetadataDir returns the root-relative metadata directory.
func (r *Repository) MetadataDir() string {
	return domain.MetadataDirName
}

// IsInitialized reports whether the metadata directory exists.
func (r *Repository) IsInitialized() bool {
	info, err := os.Stat(r.AbsPath(domain.MetadataDirName))
	return err == nil && info.IsDir()
}

// Init creates the metadata directory.
func (r *Repository) Init() error {
	if err := os.MkdirAll(r.AbsPath(domain.MetadataDirName), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryInitFailed.Error()), "root", r.root)
	}
	return nil
}

// RequireInitialized fails when the metadata directory is missing.
func (r *Repository) RequireInitialized() error {
	if !r.IsInitialized() {
		return zerr.With(domain.ErrRepositoryNotInitialized, "root", r.root)
	}
	return nil
}

// Mkdir creates the directory p.
func (r *Repository) Mkdir(p string, recursive bool) error {
	abs := r.AbsPath(p)

	var err error
	if recursive {
		err = os.MkdirAll(abs, domain.DirPerm)
	} else {
		err = os.Mkdir(abs, domain.DirPerm)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", abs)
	}
	return nil
}

// Open opens p for reading.
func (r *Repository) Open(p string) (io.ReadCloser, error) {
	abs := r.AbsPath(p)
	f, err := os.Open(abs) //nolint:gosec // Path is scoped to the repository by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", abs)
	}
	return f, nil
}

// Create opens p for writing, truncating it and creating parent directories.
func (r *Repository) Create(p string) (io.WriteCloser, error) {
	abs := r.AbsPath(p)
	if err := os.MkdirAll(filepath.Dir(abs), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", abs)
	}
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Path is scoped to the repository by the caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", abs)
	}
	return f, nil
}

// Exists reports whether p exists.
func (r *Repository) Exists(p string) bool {
	_, err := os.Stat(r.AbsPath(p))
	return err == nil
}

// IsFile reports whether p is a regular file, following symlinks.
func (r *Repository) IsFile(p string) bool {
	info, err := os.Stat(r.AbsPath(p))
	return err == nil && info.Mode().IsRegular()
}

// ReadDir returns the sorted entry names of directory p.
func (r *Repository) ReadDir(p string) ([]string, error) {
	abs := r.AbsPath(p)
	entries, err := os.ReadDir(abs)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", abs)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

// Remove deletes p and everything below it. The root itself is never removed.
func (r *Repository) Remove(p string) error {
	abs := r.AbsPath(p)
	if abs == r.root || !strings.HasPrefix(abs, r.root+string(filepath.Separator)) {
		return zerr.With(domain.ErrInvalidPath, "path", p)
	}
	if err := os.RemoveAll(abs); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileRemoveFailed.Error()), "path", abs)
	}
	return nil
}

// WriteIfChanged writes data to p unless p already holds the same content.
func (r *Repository) WriteIfChanged(p string, data []byte) (bool, error) {
	return WriteFileIfChanged(r.AbsPath(p), data)
}

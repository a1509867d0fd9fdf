// Package shell resolves programs on the search path and runs make.
package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Locator = (*Locator)(nil)

// posixBuiltins are the special and regular builtins of the POSIX shell.
var posixBuiltins = map[string]struct{}{
	":": {}, ".": {}, "break": {}, "cd": {}, "command": {}, "continue": {},
	"eval": {}, "exec": {}, "exit": {}, "export": {}, "false": {}, "getopts": {},
	"hash": {}, "read": {}, "readonly": {}, "return": {}, "set": {}, "shift": {},
	"test": {}, "times": {}, "trap": {}, "true": {}, "type": {}, "ulimit": {},
	"umask": {}, "unset": {}, "wait": {}, "echo": {}, "printf": {}, "pwd": {},
	"[": {},
}

// Locator resolves program names against a PATH value. Relative names and
// PATH entries are taken relative to the repository root.
type Locator struct {
	path string
	root string
}

// NewLocator creates a Locator for the process's PATH rooted at root.
func NewLocator(root string) *Locator {
	return NewLocatorWithPath(os.Getenv("PATH"), root)
}

// NewLocatorWithPath creates a Locator for the given PATH value rooted at root.
func NewLocatorWithPath(path, root string) *Locator {
	return &Locator{path: path, root: root}
}

// LookPath returns the absolute path of the named program. Names containing a
// separator are checked directly instead of being searched.
func (l *Locator) LookPath(name string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) {
		abs, err := l.abs(name)
		if err == nil && findExecutable(abs) == nil {
			return abs, nil
		}
		return "", zerr.With(zerr.Wrap(exec.ErrNotFound, "program lookup failed"), "name", name)
	}

	for _, dir := range filepath.SplitList(l.path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		abs, err := l.abs(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if err := findExecutable(abs); err != nil {
			continue
		}
		return abs, nil
	}
	return "", zerr.With(zerr.Wrap(exec.ErrNotFound, "program lookup failed"), "name", name)
}

// IsBuiltin reports whether name is a POSIX shell builtin.
func (l *Locator) IsBuiltin(name string) bool {
	_, ok := posixBuiltins[name]
	return ok
}

func (l *Locator) abs(p string) (string, error) {
	if filepath.IsAbs(p) || l.root == "" {
		return filepath.Abs(p)
	}
	return filepath.Join(l.root, p), nil
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

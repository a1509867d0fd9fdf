package sources

import (
	"path/filepath"
	"strings"
)

// validFileName reports whether name is a plain file name usable for a
// source or an executable: ASCII letters, digits and "-_.+", at most one
// dot, not starting with "." or "-", and not shadowing the Makefile.
func validFileName(name string) bool {
	if name == "" || name[0] == '.' || name[0] == '-' {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("-_.+", c):
		default:
			return false
		}
	}
	if strings.Count(name, ".") > 1 {
		return false
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) != "Makefile"
}

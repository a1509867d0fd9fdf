package makefile

import (
	"path/filepath"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

// Normalize returns the canonical form of ref. Repository files become
// root-relative, absolute files and the null device absolute, and global
// commands their search-path location. Shell builtins keep their name but
// must be known to the shell or present on the search path. ref itself is
// never modified.
func Normalize(ref domain.PathRef, repo ports.Repository, locator ports.Locator) (domain.PathRef, error) {
	switch ref.Kind {
	case domain.KindPlain, domain.KindInput, domain.KindOutput, domain.KindExecutable:
		rel, err := repo.RelPath(ref.Path)
		if err != nil {
			return domain.PathRef{}, err
		}
		return domain.PathRef{Kind: ref.Kind, Path: rel}, nil
	case domain.KindAbsolute, domain.KindNullDevice:
		return domain.PathRef{Kind: ref.Kind, Path: repo.AbsPath(ref.Path)}, nil
	case domain.KindGlobalCommand:
		found, err := locator.LookPath(ref.Path)
		if err != nil {
			return domain.PathRef{}, zerr.With(zerr.Wrap(err, domain.ErrExecutableNotFound.Error()), "name", ref.Path)
		}
		return domain.PathRef{Kind: ref.Kind, Path: found}, nil
	case domain.KindShellBuiltin:
		if locator.IsBuiltin(ref.Path) {
			return ref, nil
		}
		if _, err := locator.LookPath(ref.Path); err != nil {
			return domain.PathRef{}, zerr.With(zerr.Wrap(err, domain.ErrExecutableNotFound.Error()), "name", ref.Path)
		}
		return ref, nil
	default:
		return domain.PathRef{}, zerr.With(domain.ErrInvalidPath, "kind", ref.Kind.String())
	}
}

// RelativeTo renders a normalized ref as seen from the root-relative
// directory workDir. Programs inside the repository get a "./" prefix when
// they would otherwise be looked up on the search path.
func RelativeTo(ref domain.PathRef, repo ports.Repository, workDir string) string {
	switch ref.Kind {
	case domain.KindPlain, domain.KindInput, domain.KindOutput:
		return relFrom(repo, ref.Path, workDir)
	case domain.KindExecutable:
		rel := relFrom(repo, ref.Path, workDir)
		if filepath.Base(rel) == rel {
			rel = "." + string(filepath.Separator) + rel
		}
		return rel
	default:
		return ref.Path
	}
}

func relFrom(repo ports.Repository, p, workDir string) string {
	rel, err := filepath.Rel(repo.AbsPath(workDir), repo.AbsPath(p))
	if err != nil {
		// Both paths are absolute, so this only happens across volumes.
		return repo.AbsPath(p)
	}
	return rel
}

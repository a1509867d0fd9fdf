package makefile_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/taker/internal/adapters/fs"
	"go.trai.ch/taker/internal/core/ports/mocks"
	"go.trai.ch/taker/internal/engine/makefile"
	"go.uber.org/mock/gomock"
)

var builtins = []string{"cd", "echo", "true"}

// newLocator returns a locator resolving every program to /usr/bin.
func newLocator(t *testing.T) *mocks.MockLocator {
	t.Helper()
	ctrl := gomock.NewController(t)
	loc := mocks.NewMockLocator(ctrl)
	loc.EXPECT().LookPath(gomock.Any()).DoAndReturn(func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}).AnyTimes()
	loc.EXPECT().IsBuiltin(gomock.Any()).DoAndReturn(func(name string) bool {
		return slices.Contains(builtins, name)
	}).AnyTimes()
	return loc
}

// newMissingLocator returns a locator that finds nothing.
func newMissingLocator(t *testing.T) *mocks.MockLocator {
	t.Helper()
	ctrl := gomock.NewController(t)
	loc := mocks.NewMockLocator(ctrl)
	loc.EXPECT().LookPath(gomock.Any()).Return("", errors.New("executable file not found in $PATH")).AnyTimes()
	loc.EXPECT().IsBuiltin(gomock.Any()).Return(false).AnyTimes()
	return loc
}

// newRepo creates a task directory named "task" inside a temp dir.
func newRepo(t *testing.T) *fs.Repository {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "task")
	require.NoError(t, os.Mkdir(dir, 0o750))
	repo, err := fs.NewRepository(dir)
	require.NoError(t, err)
	return repo
}

func newMakefile(t *testing.T) (*makefile.Makefile, *fs.Repository) {
	t.Helper()
	repo := newRepo(t)
	mf, err := makefile.New(repo, newLocator(t))
	require.NoError(t, err)
	return mf, repo
}

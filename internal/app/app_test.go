package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taker/internal/adapters/config"
	"go.trai.ch/taker/internal/adapters/fs"
	"go.trai.ch/taker/internal/app"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/taker/internal/core/ports/mocks"
	"go.trai.ch/taker/internal/engine/makefile"
	"go.trai.ch/taker/internal/engine/sections"
	"go.uber.org/mock/gomock"
)

type testApp struct {
	app     *app.App
	repo    *fs.Repository
	driver  *mocks.MockBuildDriver
	watcher *mocks.MockWatcher
	out     *bytes.Buffer
}

// newTestApp creates an initialized repository. Programs named in missing are
// not found on the search path.
func newTestApp(t *testing.T, missing ...string) *testApp {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, repo.Init())

	ctrl := gomock.NewController(t)

	loc := mocks.NewMockLocator(ctrl)
	loc.EXPECT().LookPath(gomock.Any()).DoAndReturn(func(name string) (string, error) {
		if slices.Contains(missing, name) {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}).AnyTimes()
	loc.EXPECT().IsBuiltin(gomock.Any()).DoAndReturn(func(name string) bool {
		return slices.Contains([]string{"echo", "true"}, name)
	}).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	driver := mocks.NewMockBuildDriver(ctrl)
	w := mocks.NewMockWatcher(ctrl)

	var out bytes.Buffer
	a := app.New(repo, loc, config.NewParser(), driver, w, log).WithOutput(&out)

	return &testApp{app: a, repo: repo, driver: driver, watcher: w, out: &out}
}

func writeFile(t *testing.T, repo *fs.Repository, path, content string) {
	t.Helper()
	abs := repo.AbsPath(path)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o750))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
}

func readMakefile(t *testing.T, repo *fs.Repository) string {
	t.Helper()
	data, err := os.ReadFile(repo.AbsPath(domain.MakefileName))
	require.NoError(t, err)
	return string(data)
}

func TestInit(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)

	var out bytes.Buffer
	a := app.New(repo, nil, nil, nil, nil, nil).WithOutput(&out)

	require.NoError(t, a.Init(context.Background()))
	assert.True(t, repo.IsInitialized())
	assert.Equal(t, "✓ Initialized task directory in "+repo.Root()+"\n", out.String())
}

func TestUpdate(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "sources:\n  dirs: [src]\n")
	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\n")

	require.NoError(t, ta.app.Update(context.Background()))

	mf := readMakefile(t, ta.repo)
	assert.Contains(t, mf, "default: all\n")
	assert.Contains(t, mf, "all: src\n.PHONY: all\n")
	assert.Contains(t, mf, "src: src/a\n.PHONY: src\n")
	assert.Contains(t, mf, "src/a: .taker/sections/_src@sources.yaml@@a.py src/a.py\n\t/usr/bin/cp src/a.py src/a\n")
	assert.Contains(t, mf, "all: Builds everything")
	assert.Contains(t, mf, "src: Builds all the sources in src")

	assert.True(t, ta.repo.Exists(".taker/sections/_src@sources.yaml@@a.py"))
	assert.Equal(t, "✓ Makefile updated\n", ta.out.String())
}

func TestUpdate_UpToDate(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "sources:\n  dirs: [src]\n")
	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\n")

	require.NoError(t, ta.app.Update(context.Background()))
	ta.out.Reset()

	require.NoError(t, ta.app.Update(context.Background()))
	assert.Equal(t, "~ Makefile up to date\n", ta.out.String())
}

func TestUpdate_RemovesStaleMarkers(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "sources:\n  dirs: [src]\n")
	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\nb.py:\n")
	require.NoError(t, ta.app.Update(context.Background()))
	require.True(t, ta.repo.Exists(".taker/sections/_src@sources.yaml@@b.py"))

	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\n")
	require.NoError(t, ta.app.Update(context.Background()))

	assert.True(t, ta.repo.Exists(".taker/sections/_src@sources.yaml@@a.py"))
	assert.False(t, ta.repo.Exists(".taker/sections/_src@sources.yaml@@b.py"))
	assert.NotContains(t, readMakefile(t, ta.repo), "src/b")
}

func TestUpdate_NotInitialized(t *testing.T) {
	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)

	a := app.New(repo, nil, config.NewParser(), nil, nil, nil)
	err = a.Update(context.Background())
	require.ErrorContains(t, err, domain.ErrRepositoryNotInitialized.Error())
}

func TestUpdate_InvalidSourcesKeepsMakefile(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "sources:\n  dirs: [src]\n")
	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\n")
	require.NoError(t, ta.app.Update(context.Background()))
	before := readMakefile(t, ta.repo)

	writeFile(t, ta.repo, "src/sources.yaml", "a.rs:\n")
	err := ta.app.Update(context.Background())
	require.ErrorContains(t, err, domain.ErrUnknownLanguage.Error())

	assert.Equal(t, before, readMakefile(t, ta.repo))
	assert.True(t, ta.repo.Exists(".taker/sections/_src@sources.yaml@@a.py"))
}

type failingSubsystem struct{}

func (failingSubsystem) Name() string         { return "failing" }
func (failingSubsystem) WatchPaths() []string { return nil }
func (failingSubsystem) Declare(context.Context, *makefile.Makefile, *sections.Cache) ([]*makefile.Rule, error) {
	return nil, domain.ErrDuplicateAlias
}

func TestUpdate_SubsystemError(t *testing.T) {
	ta := newTestApp(t)
	ta.app.WithSubsystems(func(ports.Repository, ports.SectionParser, *config.Settings) app.Subsystem {
		return failingSubsystem{}
	})

	err := ta.app.Update(context.Background())
	require.ErrorContains(t, err, domain.ErrDuplicateAlias.Error())
	assert.False(t, ta.repo.Exists(domain.MakefileName))
}

func TestBuild(t *testing.T) {
	ta := newTestApp(t)
	ta.driver.EXPECT().Run(gomock.Any(), ports.BuildRequest{
		Program: "/usr/bin/make",
		Dir:     ta.repo.Root(),
		Jobs:    3,
		Target:  "src",
	}).Return(nil)

	require.NoError(t, ta.app.Build(context.Background(), "src", 3))
	assert.True(t, ta.repo.Exists(domain.MakefileName))
	assert.Contains(t, ta.out.String(), "✓ Build finished\n")
}

func TestBuild_JobsFromSettings(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "make:\n  jobs: 2\n  program: gmake\n")

	ta.driver.EXPECT().Run(gomock.Any(), ports.BuildRequest{
		Program: "/usr/bin/gmake",
		Dir:     ta.repo.Root(),
		Jobs:    2,
	}).Return(nil)

	require.NoError(t, ta.app.Build(context.Background(), "", 0))
}

func TestBuild_DefaultJobs(t *testing.T) {
	ta := newTestApp(t)

	ta.driver.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.BuildRequest) error {
			assert.Positive(t, req.Jobs)
			return nil
		})

	require.NoError(t, ta.app.Build(context.Background(), "", 0))
}

func TestBuild_InvalidJobs(t *testing.T) {
	ta := newTestApp(t)

	for _, jobs := range []int{-1, config.MaxJobs + 1} {
		err := ta.app.Build(context.Background(), "", jobs)
		require.ErrorContains(t, err, domain.ErrInvalidJobs.Error())
	}
	assert.False(t, ta.repo.Exists(domain.MakefileName))
}

func TestBuild_Failure(t *testing.T) {
	ta := newTestApp(t)
	ta.driver.EXPECT().Run(gomock.Any(), gomock.Any()).Return(errors.New("exit status 2"))

	err := ta.app.Build(context.Background(), "", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.NotContains(t, ta.out.String(), "Build finished")
}

func TestBuild_MissingProgram(t *testing.T) {
	ta := newTestApp(t, "make")

	err := ta.app.Build(context.Background(), "", 1)
	require.ErrorContains(t, err, domain.ErrExecutableNotFound.Error())
}

func TestClean(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "sources:\n  dirs: [src]\n")
	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\n")
	require.NoError(t, ta.app.Update(context.Background()))
	writeFile(t, ta.repo, domain.MarkerPath("gen"), "")

	require.NoError(t, ta.app.Clean(context.Background()))

	assert.False(t, ta.repo.Exists(domain.MakeTargetsPath()))
	assert.False(t, ta.repo.Exists(domain.SectionsPath()))
	assert.True(t, ta.repo.Exists(domain.MakefileName))
	assert.True(t, ta.repo.IsInitialized())
}

func TestClean_NotInitialized(t *testing.T) {
	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)

	err = app.New(repo, nil, nil, nil, nil, nil).Clean(context.Background())
	require.ErrorContains(t, err, domain.ErrRepositoryNotInitialized.Error())
}

func TestWatch(t *testing.T) {
	ta := newTestApp(t)
	writeFile(t, ta.repo, domain.SettingsFileName, "sources:\n  dirs: [src]\n")
	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\n")

	events := make(chan ports.WatchEvent)
	ready := make(chan struct{})
	ta.watcher.EXPECT().Start(gomock.Any(), []string{
		ta.repo.AbsPath(domain.SettingsFileName),
		ta.repo.AbsPath("src/sources.yaml"),
	}).Return(nil)
	ta.watcher.EXPECT().Events().DoAndReturn(func() iter.Seq[ports.WatchEvent] {
		close(ready)
		return func(yield func(ports.WatchEvent) bool) {
			for e := range events {
				if !yield(e) {
					return
				}
			}
		}
	})
	ta.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ta.app.Watch(ctx) }()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not start")
	}
	require.True(t, ta.repo.Exists(domain.MakefileName))

	writeFile(t, ta.repo, "src/sources.yaml", "a.py:\nb.py:\n")
	events <- ports.WatchEvent{Path: ta.repo.AbsPath("src/sources.yaml"), Operation: ports.OpWrite}

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(ta.repo.AbsPath(domain.MakefileName))
		return err == nil && bytes.Contains(data, []byte("src/b:"))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	close(events)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_StartFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("too many files"))

	err := ta.app.Watch(context.Background())
	require.ErrorContains(t, err, domain.ErrWatchFailed.Error())
}

func TestWatch_NotInitialized(t *testing.T) {
	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)

	err = app.New(repo, nil, config.NewParser(), nil, nil, nil).Watch(context.Background())
	require.ErrorContains(t, err, domain.ErrRepositoryNotInitialized.Error())
}

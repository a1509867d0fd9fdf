package sources_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taker/internal/adapters/config"
	"go.trai.ch/taker/internal/adapters/fs"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports/mocks"
	"go.trai.ch/taker/internal/engine/makefile"
	"go.trai.ch/taker/internal/engine/sections"
	"go.trai.ch/taker/internal/engine/sources"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *fs.Repository
	settings *config.Settings
	mf       *makefile.Makefile
	cache    *sections.Cache
	sub      *sources.Subsystem
}

func newFixture(t *testing.T, list string) *fixture {
	t.Helper()

	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, repo.Init())

	if list != "" {
		path := repo.AbsPath("src/sources.yaml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(list), 0o600))
	}

	loc := mocks.NewMockLocator(gomock.NewController(t))
	loc.EXPECT().LookPath(gomock.Any()).DoAndReturn(func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}).AnyTimes()
	loc.EXPECT().IsBuiltin(gomock.Any()).DoAndReturn(func(name string) bool {
		return slices.Contains([]string{"echo", "true"}, name)
	}).AnyTimes()

	mf, err := makefile.New(repo, loc)
	require.NoError(t, err)

	settings := config.DefaultSettings()
	settings.Sources.Dirs = []string{"src"}
	parser := config.NewParser()

	return &fixture{
		repo:     repo,
		settings: settings,
		mf:       mf,
		cache:    sections.New(repo, parser),
		sub:      sources.New(repo, parser, settings),
	}
}

func (f *fixture) dump(t *testing.T, name string) string {
	t.Helper()
	rule, ok := f.mf.Rule(name)
	require.True(t, ok, "rule %s", name)
	out, err := rule.Dump()
	require.NoError(t, err)
	return out
}

func TestDeclare(t *testing.T) {
	f := newFixture(t, "a.cpp:\n  lang: cpp\nb.py:\n.hidden:\n  x: 1\n")

	top, err := f.sub.Declare(context.Background(), f.mf, f.cache)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "src", top[0].Name())
	assert.Equal(t, "Builds all the sources in src", top[0].Description())

	assert.Equal(t,
		"src/a: .taker/sections/_src@sources.yaml@@a.cpp src/a.cpp\n"+
			"\t/usr/bin/g++ -O2 -std=c++17 src/a.cpp -o src/a\n",
		f.dump(t, "src/a"))
	assert.Equal(t,
		"src/b: .taker/sections/_src@sources.yaml@@b.py src/b.py\n"+
			"\t/usr/bin/cp src/b.py src/b\n",
		f.dump(t, "src/b"))
	assert.Equal(t, "src: src/a src/b\n.PHONY: src\n", f.dump(t, "src"))

	assert.Equal(t, []domain.SectionRef{
		{Config: "src/sources.yaml", Section: "a.cpp"},
		{Config: "src/sources.yaml", Section: "b.py"},
	}, f.cache.Sections())

	_, err = f.cache.Update(context.Background())
	require.NoError(t, err)
	assert.True(t, f.repo.Exists(".taker/sections/_src@sources.yaml@@a.cpp"))
}

func TestDeclare_SettingsDependency(t *testing.T) {
	f := newFixture(t, "a.cpp:\n")
	f.settings.Path = domain.SettingsFileName
	f.settings.LanguagesDeclared = true

	_, err := f.sub.Declare(context.Background(), f.mf, f.cache)
	require.NoError(t, err)

	rule, ok := f.mf.Rule("src/a")
	require.True(t, ok)
	assert.Equal(t, []string{
		".taker/sections/_src@sources.yaml@@a.cpp",
		".taker/sections/_taker.yaml@@languages",
		"src/a.cpp",
	}, rule.Dependencies())
}

func TestDeclare_ExeName(t *testing.T) {
	f := newFixture(t, "main.cpp:\n  exe-name: solution\n")

	_, err := f.sub.Declare(context.Background(), f.mf, f.cache)
	require.NoError(t, err)

	_, ok := f.mf.Rule("src/solution")
	assert.True(t, ok)
}

func TestDeclare_SelfExecutable(t *testing.T) {
	f := newFixture(t, "run.sh:\n  lang: sh\n")
	f.settings.Languages["sh"] = config.Language{Ext: ".sh", ExeExt: ".sh"}

	top, err := f.sub.Declare(context.Background(), f.mf, f.cache)
	require.NoError(t, err)

	_, ok := f.mf.Rule("src/run.sh")
	assert.False(t, ok, "no rule is needed when the source is the executable")
	assert.Empty(t, top[0].Dependencies())
}

func TestDeclare_MissingList(t *testing.T) {
	f := newFixture(t, "")

	top, err := f.sub.Declare(context.Background(), f.mf, f.cache)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Empty(t, top[0].Dependencies())
	assert.Empty(t, f.cache.Sections())
}

func TestDeclare_Errors(t *testing.T) {
	tests := []struct {
		name string
		list string
		want error
	}{
		{"invalid source name", "\"bad name.cpp\":\n", domain.ErrInvalidSourceName},
		{"unknown language", "a.rs:\n", domain.ErrUnknownLanguage},
		{"undefined language", "a.cpp:\n  lang: rust\n", domain.ErrUnknownLanguage},
		{"wrong lang type", "a.cpp:\n  lang: 3\n", domain.ErrConfigParseFailed},
		{"wrong exe extension", "a.cpp:\n  exe-name: a.exe\n", domain.ErrInvalidSourceName},
		{"executable collision", "a.c:\na.cpp:\n", domain.ErrInvalidSourceName},
		{"executable shadows source", "a.cpp:\n  exe-name: b\nb:\n  lang: py\n", domain.ErrInvalidSourceName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.list)
			_, err := f.sub.Declare(context.Background(), f.mf, f.cache)
			require.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestWatchPaths(t *testing.T) {
	f := newFixture(t, "")
	f.settings.Sources.Dirs = []string{"src", "gen"}

	assert.Equal(t, []string{
		f.repo.AbsPath("src/sources.yaml"),
		f.repo.AbsPath("gen/sources.yaml"),
	}, f.sub.WatchPaths())
}

func TestLoad(t *testing.T) {
	f := newFixture(t, "b.py:\na.cpp:\n  lang: c\n  exe-name: fast\n")

	srcs, err := f.sub.Load("src")
	require.NoError(t, err)
	require.Len(t, srcs, 2)

	assert.Equal(t, "a.cpp", srcs[0].Name)
	assert.Equal(t, "c", srcs[0].Lang)
	assert.Equal(t, "src/fast", srcs[0].ExePath())
	assert.Equal(t, "src/a.cpp", srcs[0].SrcPath())
	assert.Equal(t, "py", srcs[1].Lang)
	assert.Equal(t, "b", srcs[1].ExeName)
}

package sections_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taker/internal/adapters/config"
	"go.trai.ch/taker/internal/adapters/fs"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports/mocks"
	"go.trai.ch/taker/internal/engine/sections"
	"go.uber.org/mock/gomock"
)

const (
	config1 = "root.yaml"
	config2 = "my/good/config.yaml"
	config3 = "_/conf3.yaml"
)

func newRepo(t *testing.T) *fs.Repository {
	t.Helper()
	repo, err := fs.NewRepository(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, repo.Init())
	return repo
}

func write(t *testing.T, repo *fs.Repository, path, content string) {
	t.Helper()
	abs := repo.AbsPath(path)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o750))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
}

func read(t *testing.T, repo *fs.Repository, path string) string {
	t.Helper()
	data, err := os.ReadFile(repo.AbsPath(path))
	require.NoError(t, err)
	return string(data)
}

func markers(t *testing.T, repo *fs.Repository) []string {
	t.Helper()
	names, err := repo.ReadDir(domain.SectionsPath())
	require.NoError(t, err)
	return names
}

func TestCache_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	write(t, repo, config1, "section1:\n  a: 3\n  b: 5\nsection2:\n  a: 4\n  d: 7\n")
	write(t, repo, config2, "\".\":\n  f1: hello\n\"1\":\n  _: \"42\"\n\"2\":\n  __: \"33\"\n")
	write(t, repo, config3, "something:\n  field: null\nto-delete:\n  \"yes\": true\nempty:\n")

	cache := sections.New(repo, config.NewParser())

	bad := filepath.Join(domain.SectionsPath(), "bad_file")
	write(t, repo, bad, "hello\n")
	_, err := cache.Update(ctx)
	require.NoError(t, err)
	assert.False(t, repo.Exists(bad), "untracked marker should be collected")

	for _, add := range []struct{ config, section string }{
		{config1, "section1"},
		{config1, "nonexistent"},
		{repo.AbsPath(config1), "nonexistent2"},
		{repo.AbsPath(config1), "section2"},
		{config1, "section1"},
		{config2, "."},
		{repo.AbsPath(config2), "2"},
		{config3, "something"},
		{config3, "to-delete"},
		{config3, "empty"},
		{repo.AbsPath(config3), "something"},
	} {
		_, err := cache.AddSection(add.config, add.section)
		require.NoError(t, err)
	}

	assert.Equal(t, []domain.SectionRef{
		{Config: config3, Section: "empty"},
		{Config: config3, Section: "something"},
		{Config: config3, Section: "to-delete"},
		{Config: config2, Section: "."},
		{Config: config2, Section: "2"},
		{Config: config1, Section: "nonexistent"},
		{Config: config1, Section: "nonexistent2"},
		{Config: config1, Section: "section1"},
		{Config: config1, Section: "section2"},
	}, cache.Sections())
	assert.Len(t, cache.Targets(), 9)

	res, err := cache.Update(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Written, 7)
	assert.Len(t, markers(t, repo), 7)

	write(t, repo, config3, "something:\n  field: null\nempty:\n")
	res, err = cache.Update(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Equal(t, []string{".taker/sections/__@conf3.yaml@@to-delete"}, res.Removed)
	assert.Len(t, markers(t, repo), 6)

	require.NoError(t, os.Remove(repo.AbsPath(config3)))
	_, err = cache.Update(ctx)
	require.NoError(t, err)
	assert.Len(t, markers(t, repo), 4)
}

func TestCache_KeepsStrayDirectories(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	stray := filepath.Join(domain.SectionsPath(), "stray")
	nested := filepath.Join(stray, "keep.txt")
	write(t, repo, nested, "data\n")

	cache := sections.New(repo, config.NewParser())
	res, err := cache.Update(ctx)
	require.NoError(t, err)

	assert.Empty(t, res.Removed)
	assert.Equal(t, "data\n", read(t, repo, nested))
}

func TestCache_HashFollowsContent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	write(t, repo, config1, "section1:\n  a: 3\nsection2:\n  a: 4\n  d: 7\n")

	cache := sections.New(repo, config.NewParser())
	_, err := cache.AddSection(config1, "section2")
	require.NoError(t, err)
	_, err = cache.Update(ctx)
	require.NoError(t, err)

	marker, err := cache.TargetFile(config1, "section2")
	require.NoError(t, err)
	original := read(t, repo, marker)
	assert.Regexp(t, `^[0-9a-f]{16}\n$`, original)

	tests := []struct {
		name    string
		content string
		same    bool
	}{
		{"unchanged", "section1:\n  a: 3\nsection2:\n  a: 4\n  d: 7\n", true},
		{"other section edited", "section1:\n  a: 9\nsection2:\n  a: 4\n  d: 7\n", true},
		{"keys reordered", "section2:\n  d: 7\n  a: 4\nsection1:\n  a: 3\n", true},
		{"key added", "section2:\n  a: 4\n  d: 7\n  e: 42\n", false},
		{"value changed", "section2:\n  a: 3\n  d: 7\n", false},
		{"type changed", "section2:\n  a: \"4\"\n  d: 7\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			write(t, repo, config1, tt.content)
			_, err := cache.Update(ctx)
			require.NoError(t, err)

			if tt.same {
				assert.Equal(t, original, read(t, repo, marker))
			} else {
				assert.NotEqual(t, original, read(t, repo, marker))
			}
		})
	}
}

func TestCache_UpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	write(t, repo, config1, "section1:\n  a: 3\n")

	cache := sections.New(repo, config.NewParser())
	_, err := cache.DependencyFor(config1, "section1")
	require.NoError(t, err)

	res, err := cache.Update(ctx)
	require.NoError(t, err)
	require.True(t, res.Changed())

	marker, err := cache.TargetFile(config1, "section1")
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(repo.AbsPath(marker), old, old))
	content := read(t, repo, marker)

	res, err = cache.Update(ctx)
	require.NoError(t, err)
	assert.False(t, res.Changed())

	info, err := os.Stat(repo.AbsPath(marker))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))
	assert.Equal(t, content, read(t, repo, marker))
}

func TestCache_DependencyFor(t *testing.T) {
	repo := newRepo(t)
	cache := sections.New(repo, config.NewParser())

	dep, err := cache.DependencyFor(repo.AbsPath("src/sources.yaml"), "main.cpp")
	require.NoError(t, err)

	assert.Equal(t, domain.Input(".taker/sections/_src@sources.yaml@@main.cpp"), dep)
	assert.Equal(t, []domain.SectionRef{{Config: "src/sources.yaml", Section: "main.cpp"}}, cache.Sections())
}

func TestCache_MissingDependedSection(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	write(t, repo, config1, "section1:\n  a: 3\nsection2:\n  b: 1\n")

	first := sections.New(repo, config.NewParser())
	_, err := first.DependencyFor(config1, "section1")
	require.NoError(t, err)
	_, err = first.Update(ctx)
	require.NoError(t, err)

	marker, err := first.TargetFile(config1, "section1")
	require.NoError(t, err)
	require.True(t, repo.Exists(marker))

	write(t, repo, config1, "section2:\n  b: 1\n")

	second := sections.New(repo, config.NewParser())
	_, err = second.DependencyFor(config1, "section1")
	require.NoError(t, err)
	_, err = second.DependencyFor(config1, "section2")
	require.NoError(t, err)

	_, err = second.Update(ctx)
	require.ErrorContains(t, err, domain.ErrSectionMissing.Error())

	assert.True(t, repo.Exists(marker), "marker must survive a failed update")
	other, err := second.TargetFile(config1, "section2")
	require.NoError(t, err)
	assert.False(t, repo.Exists(other), "nothing is written when the plan fails")
}

func TestCache_MissingFileWithoutDependents(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	cache := sections.New(repo, config.NewParser())
	_, err := cache.AddSection("gone.yaml", "x")
	require.NoError(t, err)

	res, err := cache.Update(ctx)
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Empty(t, markers(t, repo))
}

func TestCache_ParseError(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	write(t, repo, config1, "section1:\n  a: 3\n")

	parser := mocks.NewMockSectionParser(gomock.NewController(t))
	parser.EXPECT().Parse(repo.AbsPath(config1)).Return(nil, errors.New("boom"))

	cache := sections.New(repo, parser)
	_, err := cache.AddSection(config1, "section1")
	require.NoError(t, err)

	_, err = cache.Update(ctx)
	require.ErrorContains(t, err, "boom")
	assert.Empty(t, markers(t, repo))
}

func TestCache_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	parser := mocks.NewMockSectionParser(ctrl)

	section := domain.Section{Name: "section1", Entries: []domain.Entry{{Key: "a", Type: "int", Value: "3"}}}
	marker := filepath.Join(domain.SectionsPath(), "_root.yaml@@section1")

	repo.EXPECT().RelPath(config1).Return(config1, nil)
	repo.EXPECT().Exists(config1).Return(true)
	repo.EXPECT().AbsPath(config1).Return("/task/" + config1)
	parser.EXPECT().Parse("/task/"+config1).Return(&domain.ConfigFile{
		Sections: map[string]domain.Section{"section1": section},
	}, nil)
	repo.EXPECT().ReadDir(domain.SectionsPath()).Return(nil, nil)
	repo.EXPECT().Mkdir(domain.SectionsPath(), true).Return(nil)
	repo.EXPECT().WriteIfChanged(marker, []byte(sections.Hash(section))).Return(false, errors.New("disk full"))

	cache := sections.New(repo, parser)
	_, err := cache.AddSection(config1, "section1")
	require.NoError(t, err)

	_, err = cache.Update(context.Background())
	require.ErrorContains(t, err, "disk full")
}

func TestCache_Canceled(t *testing.T) {
	repo := newRepo(t)
	cache := sections.New(repo, config.NewParser())
	_, err := cache.AddSection(config1, "section1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = cache.Update(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHash(t *testing.T) {
	a := domain.Section{Name: "S", Entries: []domain.Entry{
		{Key: "a", Type: "int", Value: "1"},
		{Key: "b", Type: "int", Value: "2"},
	}}
	b := domain.Section{Name: "S", Entries: []domain.Entry{
		{Key: "b", Type: "int", Value: "2"},
		{Key: "a", Type: "int", Value: "1"},
	}}
	c := domain.Section{Name: "S", Entries: []domain.Entry{
		{Key: "a", Type: "int", Value: "3"},
		{Key: "b", Type: "int", Value: "2"},
	}}

	assert.Equal(t, sections.Hash(a), sections.Hash(b))
	assert.NotEqual(t, sections.Hash(a), sections.Hash(c))
}

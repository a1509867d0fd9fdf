// Package sources declares compile rules for the source files listed in
// per-directory sources.yaml files.
package sources

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/taker/internal/adapters/config"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/taker/internal/engine/makefile"
	"go.trai.ch/taker/internal/engine/sections"
	"go.trai.ch/zerr"
)

const (
	// LangKey names the language of a source.
	LangKey = "lang"
	// ExeNameKey overrides the executable name of a source.
	ExeNameKey = "exe-name"

	srcPlaceholder = "{src}"
	exePlaceholder = "{exe}"
)

// Source is one entry of a source list.
type Source struct {
	Dir      string
	Name     string
	Lang     string
	Language config.Language
	ExeName  string
}

// SrcPath returns the root-relative source file.
func (s Source) SrcPath() string { return filepath.Join(s.Dir, s.Name) }

// ExePath returns the root-relative executable.
func (s Source) ExePath() string { return filepath.Join(s.Dir, s.ExeName) }

// Subsystem turns source lists into build rules.
type Subsystem struct {
	repo     ports.Repository
	parser   ports.SectionParser
	settings *config.Settings
}

// New creates the source-list subsystem.
func New(repo ports.Repository, parser ports.SectionParser, settings *config.Settings) *Subsystem {
	return &Subsystem{repo: repo, parser: parser, settings: settings}
}

// Name identifies the subsystem in logs.
func (s *Subsystem) Name() string { return "sources" }

// WatchPaths returns the absolute paths of the source lists.
func (s *Subsystem) WatchPaths() []string {
	paths := make([]string, 0, len(s.settings.Sources.Dirs))
	for _, dir := range s.settings.Sources.Dirs {
		paths = append(paths, s.repo.AbsPath(listPath(dir)))
	}
	return paths
}

func listPath(dir string) string {
	return filepath.Join(dir, domain.SourcesFileName)
}

// Load reads the source list of dir. A missing list has no sources.
func (s *Subsystem) Load(dir string) ([]Source, error) {
	dir = filepath.Clean(dir)
	list := listPath(dir)
	if !s.repo.Exists(list) {
		return nil, nil
	}

	parsed, err := s.parser.Parse(s.repo.AbsPath(list))
	if err != nil {
		return nil, err
	}

	var (
		result []Source
		taken  = map[string]string{domain.SourcesFileName: ""}
	)
	for _, name := range parsed.Names() {
		if strings.HasPrefix(name, ".") {
			continue
		}
		taken[name] = name
	}

	for _, name := range parsed.Names() {
		if strings.HasPrefix(name, ".") {
			continue
		}
		section, _ := parsed.Section(name)
		src, err := s.source(dir, section)
		if err != nil {
			return nil, zerr.With(err, "list", list)
		}
		if owner, ok := taken[src.ExeName]; ok && owner != src.Name {
			return nil, zerr.With(zerr.With(domain.ErrInvalidSourceName, "exe_name", src.ExeName), "list", list)
		}
		taken[src.ExeName] = src.Name
		result = append(result, src)
	}
	return result, nil
}

func (s *Subsystem) source(dir string, section domain.Section) (Source, error) {
	src := Source{Dir: dir, Name: section.Name}
	if !validFileName(src.Name) {
		return Source{}, zerr.With(domain.ErrInvalidSourceName, "source", src.Name)
	}

	lang, ok, err := stringEntry(section, LangKey)
	if err != nil {
		return Source{}, err
	}
	if !ok {
		if lang, ok = s.detect(src.Name); !ok {
			return Source{}, zerr.With(domain.ErrUnknownLanguage, "source", src.Name)
		}
	}
	src.Lang = lang
	if src.Language, ok = s.settings.Languages[lang]; !ok {
		return Source{}, zerr.With(zerr.With(domain.ErrUnknownLanguage, "source", src.Name), "lang", lang)
	}

	exe, ok, err := stringEntry(section, ExeNameKey)
	if err != nil {
		return Source{}, err
	}
	if !ok {
		exe = strings.TrimSuffix(src.Name, filepath.Ext(src.Name)) + src.Language.ExeExt
	}
	if !validFileName(exe) || filepath.Ext(exe) != src.Language.ExeExt {
		return Source{}, zerr.With(zerr.With(domain.ErrInvalidSourceName, "source", src.Name), "exe_name", exe)
	}
	src.ExeName = exe
	return src, nil
}

// detect picks the language by file extension, trying languages in name
// order.
func (s *Subsystem) detect(name string) (string, bool) {
	ext := filepath.Ext(name)
	for _, lang := range slices.Sorted(maps.Keys(s.settings.Languages)) {
		if s.settings.Languages[lang].Ext == ext {
			return lang, true
		}
	}
	return "", false
}

// stringEntry returns the unquoted value of a string entry.
func stringEntry(section domain.Section, key string) (string, bool, error) {
	for _, e := range section.Entries {
		if e.Key != key {
			continue
		}
		if e.Type != "string" {
			return "", false, zerr.With(zerr.With(domain.ErrConfigParseFailed, "key", key), "type", e.Type)
		}
		v, err := strconv.Unquote(e.Value)
		if err != nil {
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "key", key)
		}
		return v, true, nil
	}
	return "", false, nil
}

// Declare adds one rule per source and one described phony rule per
// directory. It returns the directory rules.
func (s *Subsystem) Declare(ctx context.Context, mf *makefile.Makefile, cache *sections.Cache) ([]*makefile.Rule, error) {
	var top []*makefile.Rule
	for _, dir := range s.settings.Sources.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		srcs, err := s.Load(dir)
		if err != nil {
			return nil, err
		}

		dirRule, err := mf.AddPhonyRule(filepath.Clean(dir), makefile.WithDescription("Builds all the sources in "+dir))
		if err != nil {
			return nil, err
		}
		for _, src := range srcs {
			rule, err := s.declareSource(mf, cache, src)
			if err != nil {
				return nil, zerr.With(err, "source", src.SrcPath())
			}
			if rule == nil {
				continue
			}
			if err := dirRule.AddRuleDependency(rule); err != nil {
				return nil, err
			}
		}
		top = append(top, dirRule)
	}
	return top, nil
}

// declareSource adds the rule building src. Sources that are their own
// executable need no rule.
func (s *Subsystem) declareSource(mf *makefile.Makefile, cache *sections.Cache, src Source) (*makefile.Rule, error) {
	if len(src.Language.Compile) == 0 && src.ExeName == src.Name {
		return nil, nil
	}

	rule, err := mf.AddFileRule(src.ExePath())
	if err != nil {
		return nil, err
	}

	if len(src.Language.Compile) == 0 {
		err = rule.AddGlobalCommand("cp", makefile.Args(
			domain.Path(domain.Input(src.SrcPath())),
			domain.Path(domain.Output(src.ExePath())),
		))
	} else {
		err = rule.AddGlobalCommand(src.Language.Compile[0], makefile.Args(compileArgs(src)...))
	}
	if err != nil {
		return nil, err
	}

	dep, err := cache.DependencyFor(listPath(src.Dir), src.Name)
	if err != nil {
		return nil, err
	}
	if err := rule.AddFileDependency(dep); err != nil {
		return nil, err
	}

	if s.settings.Path != "" && s.settings.LanguagesDeclared {
		dep, err := cache.DependencyFor(s.settings.Path, config.LanguagesSection)
		if err != nil {
			return nil, err
		}
		if err := rule.AddFileDependency(dep); err != nil {
			return nil, err
		}
	}
	return rule, nil
}

// compileArgs expands the compile template. Placeholders are replaced only
// when they form a whole argument.
func compileArgs(src Source) []domain.Arg {
	args := make([]domain.Arg, 0, len(src.Language.Compile)-1)
	for _, tok := range src.Language.Compile[1:] {
		switch tok {
		case srcPlaceholder:
			args = append(args, domain.Path(domain.Input(src.SrcPath())))
		case exePlaceholder:
			args = append(args, domain.Path(domain.Output(src.ExePath())))
		default:
			args = append(args, domain.Quoted(tok))
		}
	}
	return args
}

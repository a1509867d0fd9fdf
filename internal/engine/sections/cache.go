// Package sections tracks the config sections a build depends on and keeps
// one hash marker file per tracked section, rewritten only when the
// section's content changes.
package sections

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache collects the (config file, section) pairs referenced during one
// declare pass.
type Cache struct {
	repo   ports.Repository
	parser ports.SectionParser

	configs map[string]map[string]struct{}
	// depended holds the sections handed out as rule inputs this pass.
	depended map[domain.SectionRef]struct{}
}

// Result lists the marker files an Update touched, root-relative.
type Result struct {
	Written []string
	Removed []string
}

// Changed reports whether any marker file was written or removed.
func (r Result) Changed() bool {
	return len(r.Written) > 0 || len(r.Removed) > 0
}

// New creates an empty Cache.
func New(repo ports.Repository, parser ports.SectionParser) *Cache {
	return &Cache{
		repo:     repo,
		parser:   parser,
		configs:  make(map[string]map[string]struct{}),
		depended: make(map[domain.SectionRef]struct{}),
	}
}

// AddSection registers interest in a section. configPath may be absolute or
// root-relative. Registering the same pair again has no effect.
func (c *Cache) AddSection(configPath, section string) (domain.SectionRef, error) {
	rel, err := c.repo.RelPath(configPath)
	if err != nil {
		return domain.SectionRef{}, err
	}
	names, ok := c.configs[rel]
	if !ok {
		names = make(map[string]struct{})
		c.configs[rel] = names
	}
	names[section] = struct{}{}
	return domain.SectionRef{Config: rel, Section: section}, nil
}

// Sections returns the tracked pairs ordered by config path and section name.
func (c *Cache) Sections() []domain.SectionRef {
	var refs []domain.SectionRef
	for config, names := range c.configs {
		for name := range names {
			refs = append(refs, domain.SectionRef{Config: config, Section: name})
		}
	}
	slices.SortFunc(refs, domain.SectionRef.Compare)
	return refs
}

// Targets returns the marker file names of the tracked pairs, in the order
// of Sections.
func (c *Cache) Targets() []string {
	refs := c.Sections()
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.MarkerName()
	}
	return names
}

// TargetFile returns the root-relative marker file of a section.
func (c *Cache) TargetFile(configPath, section string) (string, error) {
	rel, err := c.repo.RelPath(configPath)
	if err != nil {
		return "", err
	}
	return markerFile(domain.SectionRef{Config: rel, Section: section}), nil
}

// DependencyFor registers the section and returns its marker as a rule
// input.
func (c *Cache) DependencyFor(configPath, section string) (domain.PathRef, error) {
	ref, err := c.AddSection(configPath, section)
	if err != nil {
		return domain.PathRef{}, err
	}
	c.depended[ref] = struct{}{}
	return domain.Input(markerFile(ref)), nil
}

func markerFile(ref domain.SectionRef) string {
	return filepath.Join(domain.SectionsPath(), ref.MarkerName())
}

// Hash returns the marker content for a section.
func Hash(section domain.Section) string {
	return fmt.Sprintf("%016x\n", xxhash.Sum64String(section.CanonicalRepresentation()))
}

type plan struct {
	writes  map[string]string
	removes []string
	missing []domain.SectionRef
}

// Update brings the marker directory in line with the tracked sections:
// present sections get their hash written when it changed, vanished ones
// lose their marker, and markers of untracked sections are deleted. A
// vanished section that a rule still depends on fails the update with
// ErrSectionMissing before anything is touched.
func (c *Cache) Update(ctx context.Context) (Result, error) {
	p := plan{writes: make(map[string]string)}
	for _, config := range slices.Sorted(maps.Keys(c.configs)) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := c.planConfig(config, &p); err != nil {
			return Result{}, err
		}
	}

	if len(p.missing) > 0 {
		names := make([]string, len(p.missing))
		for i, ref := range p.missing {
			names[i] = ref.Config + "#" + ref.Section
		}
		return Result{}, zerr.With(domain.ErrSectionMissing, "sections", strings.Join(names, ", "))
	}

	stale, err := c.staleMarkers()
	if err != nil {
		return Result{}, err
	}
	p.removes = append(p.removes, stale...)

	return c.apply(p)
}

func (c *Cache) planConfig(config string, p *plan) error {
	var parsed *domain.ConfigFile
	if c.repo.Exists(config) {
		var err error
		if parsed, err = c.parser.Parse(c.repo.AbsPath(config)); err != nil {
			return err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(c.configs[config])) {
		ref := domain.SectionRef{Config: config, Section: name}
		section, ok := parsed.Section(name)
		switch {
		case ok:
			p.writes[markerFile(ref)] = Hash(section)
		case c.isDepended(ref):
			p.missing = append(p.missing, ref)
		default:
			p.removes = append(p.removes, markerFile(ref))
		}
	}
	return nil
}

func (c *Cache) isDepended(ref domain.SectionRef) bool {
	_, ok := c.depended[ref]
	return ok
}

func (c *Cache) staleMarkers() ([]string, error) {
	names, err := c.repo.ReadDir(domain.SectionsPath())
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]struct{})
	for _, name := range c.Targets() {
		tracked[name] = struct{}{}
	}

	var stale []string
	for _, name := range names {
		if _, ok := tracked[name]; !ok {
			stale = append(stale, filepath.Join(domain.SectionsPath(), name))
		}
	}
	return stale, nil
}

func (c *Cache) apply(p plan) (Result, error) {
	var res Result

	if err := c.repo.Mkdir(domain.SectionsPath(), true); err != nil {
		return res, err
	}

	for _, path := range slices.Sorted(maps.Keys(p.writes)) {
		written, err := c.repo.WriteIfChanged(path, []byte(p.writes[path]))
		if err != nil {
			return res, err
		}
		if written {
			res.Written = append(res.Written, path)
		}
	}

	// Only marker files are collected; anything else is left alone.
	for _, path := range p.removes {
		if !c.repo.IsFile(path) {
			continue
		}
		if err := c.repo.Remove(path); err != nil {
			return res, err
		}
		res.Removed = append(res.Removed, path)
	}
	return res, nil
}

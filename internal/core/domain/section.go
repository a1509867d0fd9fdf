package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Entry is one typed key/value pair of a config section.
// Value is already in the parser's canonical textual form.
type Entry struct {
	Key   string
	Type  string
	Value string
}

// Section is a named group of entries in a config file.
type Section struct {
	Name    string
	Entries []Entry
}

// CanonicalRepresentation serializes the section independently of key order.
// Equal sections always yield equal representations.
func (s Section) CanonicalRepresentation() string {
	entries := slices.Clone(s.Entries)
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})

	var sb strings.Builder
	sb.WriteString("[" + s.Name + "]\n")
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(canonicalKey(e.Key) + ":" + e.Type + "=" + e.Value)
	}
	return sb.String()
}

// canonicalKey quotes keys that contain separators, quotes or line breaks.
// Plain keys never start with a quote, so both forms stay distinct.
func canonicalKey(key string) string {
	if key == "" || strings.ContainsAny(key, ":=\"\\\n\r") {
		return strconv.Quote(key)
	}
	return key
}

// ConfigFile is the parsed content of one config file, keyed by section name.
type ConfigFile struct {
	Sections map[string]Section
}

// NewConfigFile creates an empty ConfigFile.
func NewConfigFile() *ConfigFile {
	return &ConfigFile{Sections: make(map[string]Section)}
}

// Section returns the named section and whether it exists.
func (c *ConfigFile) Section(name string) (Section, bool) {
	if c == nil {
		return Section{}, false
	}
	s, ok := c.Sections[name]
	return s, ok
}

// Names returns the section names in sorted order.
func (c *ConfigFile) Names() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SectionRef identifies a section inside a root-relative config file.
type SectionRef struct {
	Config  string
	Section string
}

// Compare orders refs by config path, then by section name.
func (r SectionRef) Compare(other SectionRef) int {
	if c := cmp.Compare(r.Config, other.Config); c != 0 {
		return c
	}
	return cmp.Compare(r.Section, other.Section)
}

// MarkerName encodes the ref as a single path segment: "_" + config + "@@" +
// section, with path separators replaced by "@".
func (r SectionRef) MarkerName() string {
	name := "_" + r.Config + "@@" + r.Section
	return strings.NewReplacer("/", "@", `\`, "@").Replace(name)
}

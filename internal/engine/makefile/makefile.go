// Package makefile models build rules and renders them as a GNU make
// Makefile.
package makefile

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultRuleName is the first rule, built by a bare "make".
	DefaultRuleName = "default"
	// HelpRuleName lists the described rules.
	HelpRuleName = "help"
)

// Makefile is an ordered set of rules plus the alias table mapping dynamic
// rule names to their marker files.
type Makefile struct {
	repo    ports.Repository
	locator ports.Locator

	rules   []*Rule
	byName  map[string]*Rule
	aliases map[string]string

	defaultRule *Rule
	helpRule    *Rule
}

type ruleConfig struct {
	options     *domain.RuleOption
	description string
}

// RuleOption configures a new rule.
type RuleOption func(*ruleConfig)

// WithOptions replaces the default options of the rule kind.
func WithOptions(opts ...domain.RuleOption) RuleOption {
	return func(c *ruleConfig) {
		var set domain.RuleOption
		for _, o := range opts {
			set |= o
		}
		c.options = &set
	}
}

// WithDescription lists the rule in the help output.
func WithDescription(description string) RuleOption {
	return func(c *ruleConfig) { c.description = description }
}

// New creates a Makefile holding the built-in default and help rules.
func New(repo ports.Repository, locator ports.Locator) (*Makefile, error) {
	mf := &Makefile{
		repo:    repo,
		locator: locator,
		byName:  make(map[string]*Rule),
		aliases: make(map[string]string),
	}

	var err error
	if mf.defaultRule, err = mf.AddPhonyRule(DefaultRuleName); err != nil {
		return nil, err
	}
	if mf.helpRule, err = mf.AddPhonyRule(HelpRuleName); err != nil {
		return nil, err
	}
	if err := mf.echoHelp("Available commands:"); err != nil {
		return nil, err
	}
	if err := mf.describe(HelpRuleName, "Prints this help"); err != nil {
		return nil, err
	}
	return mf, nil
}

// Default returns the built-in default rule.
func (m *Makefile) Default() *Rule { return m.defaultRule }

// Help returns the built-in help rule.
func (m *Makefile) Help() *Rule { return m.helpRule }

// AddFileRule adds a rule producing the file at path.
func (m *Makefile) AddFileRule(path string, opts ...RuleOption) (*Rule, error) {
	rel, err := m.repo.RelPath(path)
	if err != nil {
		return nil, err
	}
	return m.addRule(domain.RuleFile, rel, opts)
}

// AddDynamicRule adds a logical rule backed by a marker file and aliases
// its name to the marker.
func (m *Makefile) AddDynamicRule(name string, opts ...RuleOption) (*Rule, error) {
	return m.addRule(domain.RuleDynamic, name, opts)
}

// AddPhonyRule adds a logical rule that always runs.
func (m *Makefile) AddPhonyRule(name string, opts ...RuleOption) (*Rule, error) {
	return m.addRule(domain.RulePhony, name, opts)
}

func (m *Makefile) addRule(kind domain.RuleKind, name string, opts []RuleOption) (*Rule, error) {
	if _, ok := m.byName[name]; ok {
		return nil, zerr.With(domain.ErrDuplicateAlias, "name", name)
	}

	var cfg ruleConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	rule := newRule(m, kind, name, cfg)

	if kind == domain.RuleDynamic {
		if err := m.Alias(name, rule.MarkerPath()); err != nil {
			return nil, err
		}
		mkdir, err := MakeDirCommand(m.repo, m.locator, domain.MakeTargetsPath(), true)
		if err != nil {
			return nil, err
		}
		touch, err := TouchCommand(m.repo, m.locator, domain.File(rule.MarkerPath()))
		if err != nil {
			return nil, err
		}
		rule.trailer = []*Command{mkdir, touch}
	}

	if cfg.description != "" {
		if err := m.describe(name, cfg.description); err != nil {
			return nil, err
		}
	}

	m.rules = append(m.rules, rule)
	m.byName[name] = rule
	return rule, nil
}

func (m *Makefile) describe(name, description string) error {
	return m.echoHelp(fmt.Sprintf("%20s: %s", name, description))
}

func (m *Makefile) echoHelp(line string) error {
	cmd, err := EchoCommand(m.repo, m.locator, line, nil)
	if err != nil {
		return err
	}
	return m.helpRule.AddCommand(cmd)
}

// Alias maps word to meaning when resolving targets and dependencies.
func (m *Makefile) Alias(word, meaning string) error {
	if _, ok := m.aliases[word]; ok {
		return zerr.With(domain.ErrDuplicateAlias, "name", word)
	}
	m.aliases[word] = meaning
	return nil
}

// Unalias resolves word through the alias table.
func (m *Makefile) Unalias(word string) string {
	if meaning, ok := m.aliases[word]; ok {
		return meaning
	}
	return word
}

// ListTargets returns the rendered targets of r: its own resolved name
// first, then the other distinct resolved targets in sorted order.
func (m *Makefile) ListTargets(r *Rule) []string {
	result := []string{m.Unalias(r.name)}
	for _, t := range r.Targets() {
		if t = m.Unalias(t); !slices.Contains(result, t) {
			result = append(result, t)
		}
	}
	return result
}

// ListDependencies returns the sorted, distinct, resolved prerequisites of r.
func (m *Makefile) ListDependencies(r *Rule) []string {
	deps := make([]string, 0, len(r.inputs)+len(r.deps))
	for _, d := range r.Dependencies() {
		deps = append(deps, m.Unalias(d))
	}
	slices.Sort(deps)
	return slices.Compact(deps)
}

// Rules returns the rules in declaration order.
func (m *Makefile) Rules() []*Rule {
	return slices.Clone(m.rules)
}

// Rule returns the rule with the given name.
func (m *Makefile) Rule(name string) (*Rule, bool) {
	r, ok := m.byName[name]
	return r, ok
}

// Dump renders every rule in declaration order, separated by blank lines.
// All rules are validated before any is rendered.
func (m *Makefile) Dump() (string, error) {
	for _, r := range m.rules {
		if err := r.Validate(); err != nil {
			return "", err
		}
	}

	parts := make([]string, 0, len(m.rules))
	for _, r := range m.rules {
		text, err := r.Dump()
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}

// Save writes the Makefile to the repository root when its content
// changed. It reports whether the file was written.
func (m *Makefile) Save() (bool, error) {
	text, err := m.Dump()
	if err != nil {
		return false, err
	}
	return m.repo.WriteIfChanged(domain.MakefileName, []byte(text))
}

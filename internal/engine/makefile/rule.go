package makefile

import (
	"slices"
	"strings"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/zerr"
)

// Rule is a named build step. Its kind decides the rendered targets and
// trailer directives.
type Rule struct {
	kind        domain.RuleKind
	name        string
	description string
	options     domain.RuleOption
	mf          *Makefile

	commands []*Command
	// trailer holds the commands a dynamic rule appends to stamp its marker.
	trailer []*Command

	// files holds every path seen so far; inputs and outputs keep the
	// classification a path received when it was first seen.
	files   map[string]struct{}
	inputs  map[string]struct{}
	outputs map[string]struct{}
	deps    map[string]struct{}

	rendered bool
}

func newRule(mf *Makefile, kind domain.RuleKind, name string, cfg ruleConfig) *Rule {
	options := domain.DefaultRuleOptions(kind)
	if cfg.options != nil {
		options = *cfg.options
	}
	return &Rule{
		kind:        kind,
		name:        name,
		description: cfg.description,
		options:     options,
		mf:          mf,
		files:       make(map[string]struct{}),
		inputs:      make(map[string]struct{}),
		outputs:     make(map[string]struct{}),
		deps:        make(map[string]struct{}),
	}
}

// Kind returns the rule variant.
func (r *Rule) Kind() domain.RuleKind { return r.kind }

// Name returns the rule name: a root-relative path for file rules, a
// logical name otherwise.
func (r *Rule) Name() string { return r.name }

// Description returns the help text, if any.
func (r *Rule) Description() string { return r.description }

// Options returns the rule options.
func (r *Rule) Options() domain.RuleOption { return r.options }

// SetOptions replaces the rule options. It fails once the rule is rendered.
func (r *Rule) SetOptions(opts domain.RuleOption) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	r.options = opts
	return nil
}

// Commands returns the user commands in order.
func (r *Rule) Commands() []*Command { return slices.Clone(r.commands) }

// MarkerPath returns the marker file of a dynamic rule and "" otherwise.
func (r *Rule) MarkerPath() string {
	if r.kind != domain.RuleDynamic {
		return ""
	}
	return domain.MarkerPath(r.name)
}

// AddCommand appends cmd and merges its files. A file first seen as an
// output stays an output even when later commands read it.
func (r *Rule) AddCommand(cmd *Command) error {
	if err := r.checkOpen(); err != nil {
		return err
	}

	for _, f := range cmd.OutputFiles() {
		if _, seen := r.files[f]; !seen {
			r.outputs[f] = struct{}{}
			r.files[f] = struct{}{}
		}
	}
	for _, f := range cmd.InputFiles() {
		if _, seen := r.files[f]; !seen {
			r.inputs[f] = struct{}{}
			r.files[f] = struct{}{}
		}
	}
	for _, ref := range cmd.AllFiles() {
		r.files[ref.Path] = struct{}{}
	}

	r.commands = append(r.commands, cmd)
	return nil
}

// AddExecutable appends a command running a program inside the repository.
func (r *Rule) AddExecutable(path string, opts ...CommandOption) error {
	return r.add(domain.Executable(path), opts)
}

// AddGlobalCommand appends a command running a program from the search path.
func (r *Rule) AddGlobalCommand(name string, opts ...CommandOption) error {
	return r.add(domain.GlobalCommand(name), opts)
}

// AddShellBuiltin appends a command running a shell builtin.
func (r *Rule) AddShellBuiltin(name string, opts ...CommandOption) error {
	return r.add(domain.ShellBuiltin(name), opts)
}

func (r *Rule) add(exe domain.PathRef, opts []CommandOption) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	cmd, err := NewCommand(r.mf.repo, r.mf.locator, exe, opts...)
	if err != nil {
		return zerr.With(err, "rule", r.name)
	}
	return r.AddCommand(cmd)
}

// AddDependency adds a prerequisite by name. Names already known as
// derived inputs are ignored.
func (r *Rule) AddDependency(name string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	if _, ok := r.inputs[name]; ok {
		return nil
	}
	r.deps[name] = struct{}{}
	return nil
}

// AddRuleDependency makes other a prerequisite.
func (r *Rule) AddRuleDependency(other *Rule) error {
	return r.AddDependency(other.name)
}

// AddFileDependency makes a repository file a prerequisite.
func (r *Rule) AddFileDependency(ref domain.PathRef) error {
	rel, err := r.mf.repo.RelPath(ref.Path)
	if err != nil {
		return err
	}
	return r.AddDependency(rel)
}

func (r *Rule) checkOpen() error {
	if r.rendered {
		return zerr.With(domain.ErrRuleRendered, "rule", r.name)
	}
	return nil
}

// Targets returns the sorted derived targets before alias resolution.
func (r *Rule) Targets() []string {
	if r.options.Has(domain.ForceSingleTarget) {
		return []string{r.name}
	}
	targets := sortedKeys(r.outputs)
	if r.kind == domain.RuleDynamic {
		targets = append(targets, r.MarkerPath())
		slices.Sort(targets)
		targets = slices.Compact(targets)
	}
	return targets
}

// Dependencies returns the sorted derived inputs and explicit dependencies
// before alias resolution.
func (r *Rule) Dependencies() []string {
	deps := append(sortedKeys(r.inputs), sortedKeys(r.deps)...)
	slices.Sort(deps)
	return slices.Compact(deps)
}

// Validate checks the single-target constraint. File rules must in addition
// produce exactly the file they are named after. Phony rules are counted by
// their derived outputs, since their own name is no file.
func (r *Rule) Validate() error {
	if !r.options.Has(domain.CheckSingleTarget) {
		return nil
	}

	targets := r.mf.ListTargets(r)
	if r.kind == domain.RulePhony {
		targets = r.resolvedTargets()
	}
	ok := len(targets) == 1
	if ok && r.kind == domain.RuleFile && !r.options.Has(domain.ForceSingleTarget) {
		_, ok = r.outputs[r.name]
	}
	if !ok {
		return zerr.With(zerr.With(domain.ErrBuildRule, "rule", r.name), "targets", strings.Join(targets, " "))
	}
	return nil
}

// Dump validates and renders the rule. Afterwards the rule accepts no more
// commands or dependencies.
func (r *Rule) Dump() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	targets, err := makeWords(r.mf.ListTargets(r))
	if err != nil {
		return "", zerr.With(err, "rule", r.name)
	}
	deps, err := makeWords(r.mf.ListDependencies(r))
	if err != nil {
		return "", zerr.With(err, "rule", r.name)
	}
	names, err := makeWords([]string{r.name, r.mf.Unalias(r.name)})
	if err != nil {
		return "", zerr.With(err, "rule", r.name)
	}
	name, unaliased := names[0], names[1]

	header := strings.Join(targets, " ") + ": " + strings.Join(deps, " ")
	lines := []string{strings.TrimRight(header, " ")}

	for _, cmd := range slices.Concat(r.commands, r.trailer) {
		line := cmd.ShellString()
		if strings.ContainsAny(line, "\n\r") {
			return "", zerr.With(zerr.With(domain.ErrInvalidPath, "rule", r.name), "command", line)
		}
		lines = append(lines, "\t"+line)
	}

	if r.options.Has(domain.RuleIgnore) {
		lines = append(lines, ".IGNORE: "+unaliased)
	}
	if r.options.Has(domain.RuleSilent) {
		lines = append(lines, ".SILENT: "+unaliased)
	}

	switch r.kind {
	case domain.RuleDynamic:
		lines = append(lines, name+": "+unaliased, ".PHONY: "+name)
	case domain.RulePhony:
		lines = append(lines, ".PHONY: "+name)
	}

	r.rendered = true
	return strings.Join(lines, "\n") + "\n", nil
}

// resolvedTargets returns the distinct alias-resolved derived targets.
func (r *Rule) resolvedTargets() []string {
	var targets []string
	for _, t := range r.Targets() {
		if t = r.mf.Unalias(t); !slices.Contains(targets, t) {
			targets = append(targets, t)
		}
	}
	return targets
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

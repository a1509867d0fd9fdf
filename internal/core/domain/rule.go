package domain

import "strings"

// RuleKind is the variant tag of a build rule.
type RuleKind uint8

const (
	// RuleFile produces the single physical file it is named after.
	RuleFile RuleKind = iota
	// RuleDynamic is a logical target backed by a marker file.
	RuleDynamic
	// RulePhony is a logical target that always runs.
	RulePhony
)

func (k RuleKind) String() string {
	switch k {
	case RuleFile:
		return "file"
	case RuleDynamic:
		return "dynamic"
	case RulePhony:
		return "phony"
	default:
		return "unknown"
	}
}

// RuleOption is a set of rule-level switches.
type RuleOption uint8

const (
	// CheckSingleTarget requires the rule to resolve to exactly one target.
	CheckSingleTarget RuleOption = 1 << iota
	// ForceSingleTarget renders the rule name as its only target.
	ForceSingleTarget
	// RuleSilent emits a .SILENT directive for the rule.
	RuleSilent
	// RuleIgnore emits an .IGNORE directive for the rule.
	RuleIgnore
)

// Has reports whether every option in other is set.
func (o RuleOption) Has(other RuleOption) bool {
	return o&other == other
}

func (o RuleOption) String() string {
	var parts []string
	if o.Has(CheckSingleTarget) {
		parts = append(parts, "check-single-target")
	}
	if o.Has(ForceSingleTarget) {
		parts = append(parts, "force-single-target")
	}
	if o.Has(RuleSilent) {
		parts = append(parts, "silent")
	}
	if o.Has(RuleIgnore) {
		parts = append(parts, "ignore")
	}
	return strings.Join(parts, ",")
}

// DefaultRuleOptions returns the options a rule of the given kind gets when
// none are specified. File rules must produce exactly their own file; logical
// rules are unchecked.
func DefaultRuleOptions(kind RuleKind) RuleOption {
	if kind == RuleFile {
		return CheckSingleTarget
	}
	return 0
}

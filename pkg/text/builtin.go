package text

import (
	"sort"
)

const (
	// RuleSetMember renames `_mFoo` members to `mFoo_d`
	RuleSetMember = "member"

	// RuleSetCodestyle adds the double underscore and type name rules to RuleSetMember
	RuleSetCodestyle = "codestyle"
)

// Word characters include every Unicode letter and digit, not only ASCII,
// so a suffix never lands inside a word.
var memberRule = ReplacementRule{
	Name:        "member-suffix",
	Pattern:     `([^a-zA-Z])_m([\p{L}\p{N}_]+)`,
	Replacement: `${1}m${2}_d`,
}

var builtins = map[string]RuleSet{
	RuleSetMember: {
		Name:        RuleSetMember,
		Description: "_mFoo -> mFoo_d",
		Rules:       []ReplacementRule{memberRule},
	},
	RuleSetCodestyle: {
		Name:        RuleSetCodestyle,
		Description: "__x -> _ex, _mFoo -> mFoo_d, _Foo -> Foo_",
		Rules: []ReplacementRule{
			{
				Name:        "double-underscore",
				Pattern:     `__([^a-zA-Z])`,
				Replacement: `_e${1}`,
			},
			memberRule,
			{
				Name:        "type-suffix",
				Pattern:     `([^a-zA-Z])_([A-Z][\p{L}\p{N}_]+)`,
				Replacement: `${1}${2}_`,
			},
		},
	},
}

// Builtin returns a copy of the named built-in rule set
func Builtin(name string) (RuleSet, bool) {
	set, ok := builtins[name]
	if !ok {
		return RuleSet{}, false
	}
	set.Rules = append([]ReplacementRule(nil), set.Rules...)
	return set, true
}

// BuiltinRuleSets returns every built-in rule set sorted by name
func BuiltinRuleSets() []RuleSet {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]RuleSet, 0, len(names))
	for _, name := range names {
		set, _ := Builtin(name)
		sets = append(sets, set)
	}
	return sets
}

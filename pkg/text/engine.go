// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// templateRefRE finds $name, ${name} and $$ in a replacement template
var templateRefRE = regexp.MustCompile(`\$(\$|\{([^}]*)\}|([a-zA-Z0-9_]+))`)

// CompiledRule is a ReplacementRule with its pattern compiled
type CompiledRule struct {
	ReplacementRule
	re *regexp.Regexp
}

// Compile compiles a single rule and checks its template against the pattern
func Compile(rule ReplacementRule) (*CompiledRule, error) {
	if rule.Pattern == "" {
		return nil, errors.Errorf("%w: rule %q: pattern is required", ErrInvalidRule, rule.Name)
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return nil, errors.Errorf("%w: rule %q: compiling pattern: %s", ErrInvalidRule, rule.Name, err)
	}

	if err := checkTemplate(re, rule.Replacement); err != nil {
		return nil, errors.Errorf("%w: rule %q: %s", ErrInvalidRule, rule.Name, err)
	}

	if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
		return nil, errors.Errorf("%w: rule %q: bad file_filter_glob %q", ErrInvalidRule, rule.Name, rule.FileFilterGlob)
	}

	return &CompiledRule{ReplacementRule: rule, re: re}, nil
}

// checkTemplate rejects references to groups the pattern does not define.
// regexp expands those to the empty string, which silently eats text: `$1m`
// names a group called "1m", not group 1 followed by "m".
func checkTemplate(re *regexp.Regexp, tmpl string) error {
	for _, m := range templateRefRE.FindAllStringSubmatch(tmpl, -1) {
		if m[1] == "$" {
			continue
		}
		name := m[2]
		if name == "" {
			name = m[3]
		}
		if n, err := strconv.Atoi(name); err == nil {
			if n > re.NumSubexp() {
				return errors.Errorf("replacement references group %d but pattern has %d", n, re.NumSubexp())
			}
			continue
		}
		if re.SubexpIndex(name) < 0 {
			return errors.Errorf("replacement references unknown group %q (use ${N} to follow a group with text)", name)
		}
	}
	return nil
}

// Applies reports whether the rule selects the given slash separated path
func (r *CompiledRule) Applies(path string) bool {
	if r.FileFilterGlob == "" {
		return true
	}
	ok, err := doublestar.Match(r.FileFilterGlob, path)
	return err == nil && ok
}

// ValidateRules checks that every rule compiles
func ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if _, err := Compile(rule); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

// 🔧 Engine applies a compiled rule set
type Engine struct {
	name  string
	rules []*CompiledRule
}

// 🏭 NewEngine compiles every rule in the set
func NewEngine(set RuleSet) (*Engine, error) {
	e := &Engine{name: set.Name}
	for i, rule := range set.Rules {
		if rule.Name == "" {
			rule.Name = set.Name + "#" + strconv.Itoa(i+1)
		}
		cr, err := Compile(rule)
		if err != nil {
			return nil, errors.Errorf("rule set %q: %w", set.Name, err)
		}
		e.rules = append(e.rules, cr)
	}
	return e, nil
}

// Name returns the rule set name
func (e *Engine) Name() string {
	return e.name
}

// Rules returns the compiled rules in application order
func (e *Engine) Rules() []*CompiledRule {
	return e.rules
}

// Rewrite implements Rewriter
func (e *Engine) Rewrite(path string, content []byte) (*ReplacementResult, error) {
	selected := make([]*CompiledRule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.Applies(path) {
			selected = append(selected, r)
		}
	}
	return Apply(content, selected)
}

// Apply runs each rule over the whole text, in order, each on the output of
// the previous one. Content without matches comes back unchanged.
func Apply(content []byte, rules []*CompiledRule) (*ReplacementResult, error) {
	if off := invalidUTF8Offset(content); off >= 0 {
		return nil, errors.Errorf("%w: invalid UTF-8 at byte %d", ErrInvalidEncoding, off)
	}

	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
		Changes:         make([]RuleChange, 0, len(rules)),
	}

	current := string(content)
	for _, rule := range rules {
		count := len(rule.re.FindAllStringIndex(current, -1))
		result.Changes = append(result.Changes, RuleChange{Rule: rule.Name, Count: count})
		if count == 0 {
			continue
		}
		current = rule.re.ReplaceAllString(current, rule.Replacement)
		result.ReplacementCount += count
	}

	if result.ReplacementCount > 0 {
		result.ModifiedContent = []byte(current)
		result.WasModified = current != string(content)
	}

	return result, nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

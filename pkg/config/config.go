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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/codestyle/pkg/text"
	"github.com/walteh/codestyle/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultPath is the config file read when none is given
	DefaultPath = ".codestyle.hcl"

	// DefaultRoot is the directory rewritten when none is configured
	DefaultRoot = "core"

	// DefaultRuleSet is the rule set applied when none is configured
	DefaultRuleSet = text.RuleSetMember
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, filename is used for diagnostics
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Root     string         `json:"root,omitempty" yaml:"root,omitempty"`
	RuleSet  string         `json:"rule_set,omitempty" yaml:"rule_set,omitempty"`
	Ignore   []string       `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	DryRun   bool           `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	RuleSets []text.RuleSet `json:"rule_sets,omitempty" yaml:"rule_sets,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Root:    DefaultRoot,
		RuleSet: DefaultRuleSet,
	}
}

// Location returns the file the config was loaded from, empty for Default
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate fills defaults and checks the configuration
func (cfg *Config) Validate(ctx context.Context) error {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if cfg.RuleSet == "" {
		cfg.RuleSet = DefaultRuleSet
	}

	seen := map[string]bool{}
	for i, set := range cfg.RuleSets {
		if set.Name == "" {
			return errors.Errorf("rule_sets[%d]: name is required", i)
		}
		if seen[set.Name] {
			return errors.Errorf("rule_sets[%d]: duplicate rule set %q", i, set.Name)
		}
		seen[set.Name] = true

		if len(set.Rules) == 0 {
			return errors.Errorf("rule set %q: at least one rule is required", set.Name)
		}
		if err := text.ValidateRules(set.Rules); err != nil {
			return errors.Errorf("rule set %q: %w", set.Name, err)
		}
		if _, ok := text.Builtin(set.Name); ok {
			zerolog.Ctx(ctx).Debug().Str("rule_set", set.Name).Msg("config rule set overrides builtin")
		}
	}

	if _, err := cfg.ResolveRuleSet(cfg.RuleSet); err != nil {
		return err
	}

	if err := (walk.Options{Ignore: cfg.Ignore}).Validate(); err != nil {
		return err
	}

	return nil
}

// ResolveRoot returns the absolute root. A relative root is taken relative
// to the config file's directory, or to the working directory for Default.
func (cfg *Config) ResolveRoot() (string, error) {
	if filepath.IsAbs(cfg.Root) {
		return cfg.Root, nil
	}

	base := ""
	if cfg.location != "" {
		base = filepath.Dir(cfg.location)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(filepath.Join(base, cfg.Root))
	if err != nil {
		return "", errors.Errorf("resolving root %s: %w", cfg.Root, err)
	}
	return abs, nil
}

// ResolveRuleSet finds a rule set by name, config definitions first
func (cfg *Config) ResolveRuleSet(name string) (text.RuleSet, error) {
	for _, set := range cfg.RuleSets {
		if set.Name == name {
			return set, nil
		}
	}
	if set, ok := text.Builtin(name); ok {
		return set, nil
	}

	var options []string
	for _, set := range cfg.AvailableRuleSets() {
		options = append(options, set.Name)
	}
	return text.RuleSet{}, errors.Errorf("rule set %q not found, options: %v", name, options)
}

// NamedRuleSet is a rule set with where it was defined
type NamedRuleSet struct {
	text.RuleSet
	Source string // "builtin" or the config file
}

// AvailableRuleSets lists every rule set by name, config definitions
// replacing builtins of the same name
func (cfg *Config) AvailableRuleSets() []NamedRuleSet {
	source := cfg.location
	if source == "" {
		source = "config"
	}

	byName := map[string]NamedRuleSet{}
	for _, set := range text.BuiltinRuleSets() {
		byName[set.Name] = NamedRuleSet{RuleSet: set, Source: "builtin"}
	}
	for _, set := range cfg.RuleSets {
		byName[set.Name] = NamedRuleSet{RuleSet: set, Source: source}
	}

	out := make([]NamedRuleSet, 0, len(byName))
	for _, set := range byName {
		out = append(out, set)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s", cfg.RuleSet, cfg.Root)
}

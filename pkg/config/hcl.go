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
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/codestyle/pkg/text"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Quoted HCL strings interpolate ${...} and reject unknown escapes, so
// regexp templates are written as "$${1}" and \w as "\\w":
//
//	root     = "${cwd}/core"
//	rule_set = "dstruct"
//
//	rules "dstruct" {
//	  rule "member" {
//	    pattern     = "([^a-zA-Z])_m(\\w+)"
//	    replacement = "$${1}m$${2}_d"
//	  }
//	}
type HCLParser struct{}

type hclRule struct {
	Name           string `hcl:"name,label"`
	Pattern        string `hcl:"pattern"`
	Replacement    string `hcl:"replacement,optional"`
	FileFilterGlob string `hcl:"file_filter_glob,optional"`
}

type hclRuleSet struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Rules       []hclRule `hcl:"rule,block"`
}

type hclConfig struct {
	Root     string       `hcl:"root,optional"`
	RuleSet  string       `hcl:"rule_set,optional"`
	Ignore   []string     `hcl:"ignore,optional"`
	DryRun   bool         `hcl:"dry_run,optional"`
	RuleSets []hclRuleSet `hcl:"rules,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL. The variables cwd and config_dir are
// available to expressions.
func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}
	configDir, err := filepath.Abs(filepath.Dir(filename))
	if err != nil {
		return nil, errors.Errorf("resolving config directory: %w", err)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cwd":        cty.StringVal(cwd),
			"config_dir": cty.StringVal(configDir),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:    hclCfg.Root,
		RuleSet: hclCfg.RuleSet,
		Ignore:  hclCfg.Ignore,
		DryRun:  hclCfg.DryRun,
	}

	for _, s := range hclCfg.RuleSets {
		set := text.RuleSet{
			Name:        s.Name,
			Description: s.Description,
		}
		for _, r := range s.Rules {
			set.Rules = append(set.Rules, text.ReplacementRule{
				Name:           r.Name,
				Pattern:        r.Pattern,
				Replacement:    r.Replacement,
				FileFilterGlob: r.FileFilterGlob,
			})
		}
		cfg.RuleSets = append(cfg.RuleSets, set)
	}

	return cfg, nil
}

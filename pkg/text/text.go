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
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidEncoding is returned when file content is not valid UTF-8
	ErrInvalidEncoding = errors.Base("invalid text encoding")

	// ErrInvalidRule is returned when a rule cannot be compiled
	ErrInvalidRule = errors.Base("invalid rule")
)

// ReplacementRule defines a single regular expression substitution
type ReplacementRule struct {
	// Name identifies the rule in logs and reports
	Name string `json:"name" yaml:"name"`

	// Pattern is an RE2 regular expression matched against the raw text
	Pattern string `json:"pattern" yaml:"pattern"`

	// Replacement is a regexp template, ${1} refers to the first group
	Replacement string `json:"replacement" yaml:"replacement"`

	// FileFilterGlob restricts the rule to matching paths, empty means every file
	FileFilterGlob string `json:"file_filter_glob,omitempty" yaml:"file_filter_glob,omitempty"`
}

// RuleSet is an ordered list of rules applied to a file in one pass
type RuleSet struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Rules       []ReplacementRule `json:"rules" yaml:"rules"`
}

// RuleChange records how many matches a single rule replaced
type RuleChange struct {
	Rule  string
	Count int
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the content differs from the original
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// Changes holds one entry per applied rule, in rule order
	Changes []RuleChange

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// Rewriter transforms file content without touching the filesystem
type Rewriter interface {
	// Rewrite applies every rule that selects path to content
	Rewrite(path string, content []byte) (*ReplacementResult, error)
}

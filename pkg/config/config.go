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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/srcpatch/pkg/pattern"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for rule file parsers
type Parser interface {
	// 📝 Parse parses a rule file from bytes
	Parse(ctx context.Context, data []byte) (*File, error)

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

// 🔄 RuleDef is one rule as written in a rule file
type RuleDef struct {
	Name string `json:"name" yaml:"name" hcl:"name,label"`

	// Pattern holds pattern lines, see pattern.Parse
	Pattern []string `json:"pattern" yaml:"pattern" hcl:"pattern"`

	// Replacement is a template, see text.ParseTemplate
	Replacement string `json:"replacement" yaml:"replacement" hcl:"replacement"`
}

// 📦 RuleSetDef is a named, ordered list of rules aimed at one kind of file.
// Target is a doublestar glob the patched path must match.
type RuleSetDef struct {
	Name        string    `json:"name" yaml:"name" hcl:"name,label"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Target      string    `json:"target" yaml:"target" hcl:"target"`
	Rules       []RuleDef `json:"rules" yaml:"rules" hcl:"rule,block"`
}

// 📚 File is the content of a rule file
type File struct {
	RuleSets []RuleSetDef `json:"rulesets" yaml:"rulesets"`
}

// 🔍 Validate checks that the definition is complete
func (d *RuleSetDef) Validate() error {
	if d.Name == "" {
		return errors.Errorf("ruleset name is required")
	}
	if d.Target == "" {
		return errors.Errorf("ruleset %s: target is required", d.Name)
	}
	if !doublestar.ValidatePattern(d.Target) {
		return errors.Errorf("ruleset %s: invalid target glob %q", d.Name, d.Target)
	}
	if len(d.Rules) == 0 {
		return errors.Errorf("ruleset %s: at least one rule is required", d.Name)
	}

	seen := map[string]bool{}
	for i, r := range d.Rules {
		if r.Name == "" {
			return errors.Errorf("ruleset %s: rule %d: name is required", d.Name, i)
		}
		if seen[r.Name] {
			return errors.Errorf("ruleset %s: duplicate rule %q", d.Name, r.Name)
		}
		seen[r.Name] = true
		if len(r.Pattern) == 0 {
			return errors.Errorf("ruleset %s: rule %s: pattern is required", d.Name, r.Name)
		}
	}
	return nil
}

// 🏗️ Compile validates the definition and builds its rules
func (d *RuleSetDef) Compile() (*RuleSet, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	rules := make([]*text.Rule, 0, len(d.Rules))
	for _, r := range d.Rules {
		p, err := pattern.Parse(r.Name, r.Pattern)
		if err != nil {
			return nil, errors.Errorf("ruleset %s: %w", d.Name, err)
		}
		rule, err := text.NewRule(r.Name, p, r.Replacement)
		if err != nil {
			return nil, errors.Errorf("ruleset %s: %w", d.Name, err)
		}
		rules = append(rules, rule)
	}

	return NewRuleSet(d.Name, d.Description, d.Target, rules...)
}

// 🎯 Load reads a rule file and compiles every rule set it defines
func Load(ctx context.Context, path string) ([]*RuleSet, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rule file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	f, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing rule file %s: %w", path, err)
	}
	if len(f.RuleSets) == 0 {
		return nil, errors.Errorf("rule file %s defines no rulesets", path)
	}

	sets := make([]*RuleSet, 0, len(f.RuleSets))
	for i := range f.RuleSets {
		rs, err := f.RuleSets[i].Compile()
		if err != nil {
			return nil, errors.Errorf("compiling rule file %s: %w", path, err)
		}
		sets = append(sets, rs)
	}

	logger.Debug().Str("path", path).Int("rulesets", len(sets)).Msg("loaded rule file")
	return sets, nil
}

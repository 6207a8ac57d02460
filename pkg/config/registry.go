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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnknownRuleSet is returned when a rule set is requested by a name nobody registered
	ErrUnknownRuleSet = errors.New("unknown ruleset")

	// ErrNoRuleSet is returned when no rule set targets a path
	ErrNoRuleSet = errors.New("no ruleset targets path")
)

// 📦 RuleSet is a compiled, ordered list of rules for one kind of file
type RuleSet struct {
	Name        string
	Description string
	Target      string
	Rules       []*text.Rule
}

// 🏭 NewRuleSet creates a rule set, validating the target glob
func NewRuleSet(name, description, target string, rules ...*text.Rule) (*RuleSet, error) {
	if name == "" {
		return nil, errors.Errorf("ruleset name is required")
	}
	if !doublestar.ValidatePattern(target) {
		return nil, errors.Errorf("ruleset %s: invalid target glob %q", name, target)
	}
	return &RuleSet{
		Name:        name,
		Description: description,
		Target:      target,
		Rules:       rules,
	}, nil
}

// 🔍 Matches reports whether path is a file this rule set is written for
func (rs *RuleSet) Matches(path string) bool {
	p := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	ok, err := doublestar.Match(rs.Target, p)
	return err == nil && ok
}

// 🔗 Pipeline returns a pipeline running the rule set in order
func (rs *RuleSet) Pipeline() *text.Pipeline {
	return text.NewPipeline(rs.Rules...)
}

// 📝 String returns a string representation of the rule set
func (rs *RuleSet) String() string {
	return fmt.Sprintf("%s (%d rules) -> %s", rs.Name, len(rs.Rules), rs.Target)
}

// 🗺️ Registry holds rule sets by name, in registration order
type Registry struct {
	sets []*RuleSet
}

// 🏭 NewRegistry creates a registry holding sets
func NewRegistry(sets ...*RuleSet) (*Registry, error) {
	r := &Registry{}
	if err := r.Add(sets...); err != nil {
		return nil, err
	}
	return r, nil
}

// 📝 Add registers rule sets; names must be unique
func (r *Registry) Add(sets ...*RuleSet) error {
	for _, rs := range sets {
		if _, err := r.Get(rs.Name); err == nil {
			return errors.Errorf("ruleset %s already registered", rs.Name)
		}
		r.sets = append(r.sets, rs)
	}
	return nil
}

// 🎯 Get returns the rule set named name
func (r *Registry) Get(name string) (*RuleSet, error) {
	for _, rs := range r.sets {
		if rs.Name == name {
			return rs, nil
		}
	}
	return nil, errors.Errorf("%w: %s", ErrUnknownRuleSet, name)
}

// 🎯 Select returns the first registered rule set whose target matches path
func (r *Registry) Select(path string) (*RuleSet, error) {
	for _, rs := range r.sets {
		if rs.Matches(path) {
			return rs, nil
		}
	}
	return nil, errors.Errorf("%w: %s", ErrNoRuleSet, path)
}

// 📋 List returns every rule set in registration order
func (r *Registry) List() []*RuleSet {
	return append([]*RuleSet(nil), r.sets...)
}

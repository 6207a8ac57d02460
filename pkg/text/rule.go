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
	"github.com/walteh/srcpatch/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownCapture is returned when a template references a capture its
// pattern does not declare
var ErrUnknownCapture = errors.New("unknown capture")

// 📄 Buffer is a snapshot of file content. Operations return new Buffers and
// never modify their input.
type Buffer string

// String returns the buffer content
func (b Buffer) String() string { return string(b) }

// 🔄 Rule pairs a pattern with the template that replaces its match
type Rule struct {
	name     string
	pattern  *pattern.Pattern
	template *Template
}

// NewRule creates a rule, checking every template reference against the
// captures the pattern declares
func NewRule(name string, p *pattern.Pattern, replacement string) (*Rule, error) {
	if name == "" {
		return nil, errors.Errorf("rule name is required")
	}
	if p == nil {
		return nil, errors.Errorf("rule %s: pattern is required", name)
	}

	tmpl, err := ParseTemplate(replacement)
	if err != nil {
		return nil, errors.Errorf("rule %s: %w", name, err)
	}

	for _, ref := range tmpl.References() {
		if !p.HasCapture(ref) {
			return nil, errors.Errorf("rule %s: %w %q (pattern captures %q)", name, ErrUnknownCapture, ref, p.Captures())
		}
	}

	return &Rule{name: name, pattern: p, template: tmpl}, nil
}

// MustRule is like NewRule but panics on error
func MustRule(name string, p *pattern.Pattern, replacement string) *Rule {
	r, err := NewRule(name, p, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the rule name
func (r *Rule) Name() string { return r.name }

// Pattern returns the rule pattern
func (r *Rule) Pattern() *pattern.Pattern { return r.pattern }

// Template returns the rule template
func (r *Rule) Template() *Template { return r.template }

// Apply replaces the first occurrence of the rule pattern in buf. The
// returned match is nil, and buf is returned as is, when the pattern is
// absent.
func (r *Rule) Apply(buf Buffer) (Buffer, *pattern.Match) {
	m := r.pattern.Find(string(buf))
	return Apply(buf, m, r.template), m
}

// Apply splices the rendered template into buf in place of m. Every byte
// outside m's span is kept. A nil m returns buf unchanged.
func Apply(buf Buffer, m *pattern.Match, tmpl *Template) Buffer {
	if m == nil {
		return buf
	}
	s := string(buf)
	return Buffer(s[:m.Span.Start] + tmpl.Render(m) + s[m.Span.End:])
}

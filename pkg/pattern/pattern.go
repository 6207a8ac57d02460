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

package pattern

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPattern is wrapped by every error returned while building a pattern.
var ErrInvalidPattern = errors.New("invalid pattern")

var captureNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// 🧩 Kind identifies what a Segment matches
type Kind int

const (
	KindAnchor Kind = iota + 1 // exact token text
	KindGap                    // whitespace run
	KindSkip                   // shortest run of any text
	KindBegin                  // opens a named capture
	KindEnd                    // closes the innermost capture
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindGap:
		return "gap"
	case KindSkip:
		return "skip"
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// 🧩 Segment is one element of a pattern
type Segment struct {
	Kind     Kind
	Text     string // anchor text
	Required bool   // gap needs at least one whitespace character
	Name     string // capture name
}

// Anchor matches text exactly.
func Anchor(text string) Segment { return Segment{Kind: KindAnchor, Text: text} }

// Gap matches a whitespace run, possibly empty unless required.
func Gap(required bool) Segment { return Segment{Kind: KindGap, Required: required} }

// Skip matches the shortest run of any text that lets the rest of the pattern match.
func Skip() Segment { return Segment{Kind: KindSkip} }

// Begin opens a capture.
func Begin(name string) Segment { return Segment{Kind: KindBegin, Name: name} }

// End closes the innermost open capture.
func End() Segment { return Segment{Kind: KindEnd} }

func (s Segment) expr() string {
	switch s.Kind {
	case KindAnchor:
		return regexp.QuoteMeta(s.Text)
	case KindGap:
		if s.Required {
			return `\s+`
		}
		return `\s*`
	case KindSkip:
		return `(?s:.*?)`
	case KindBegin:
		return `(?P<` + s.Name + `>`
	case KindEnd:
		return `)`
	}
	return ""
}

// 🎯 Pattern is a compiled structural pattern: ordered anchors separated by
// whitespace-tolerant gaps, with optional named capture spans.
//
// A Pattern is immutable and safe to share.
type Pattern struct {
	name     string
	segments []Segment
	captures []string
	re       *regexp.Regexp
}

// Compile validates segs and compiles them into a Pattern.
func Compile(name string, segs ...Segment) (*Pattern, error) {
	if len(segs) == 0 {
		return nil, errors.Errorf("%w: %s: no segments", ErrInvalidPattern, name)
	}

	var (
		expr     strings.Builder
		open     []string
		captures []string
		seen     = map[string]bool{}
		first    = -1
		last     = -1
	)

	for i, seg := range segs {
		switch seg.Kind {
		case KindAnchor:
			if seg.Text == "" {
				return nil, errors.Errorf("%w: %s: segment %d: empty anchor", ErrInvalidPattern, name, i)
			}
		case KindGap, KindSkip:
		case KindBegin:
			if !captureNameRe.MatchString(seg.Name) {
				return nil, errors.Errorf("%w: %s: segment %d: bad capture name %q", ErrInvalidPattern, name, i, seg.Name)
			}
			if seen[seg.Name] {
				return nil, errors.Errorf("%w: %s: duplicate capture %q", ErrInvalidPattern, name, seg.Name)
			}
			seen[seg.Name] = true
			open = append(open, seg.Name)
			captures = append(captures, seg.Name)
		case KindEnd:
			if len(open) == 0 {
				return nil, errors.Errorf("%w: %s: segment %d: end without begin", ErrInvalidPattern, name, i)
			}
			open = open[:len(open)-1]
		default:
			return nil, errors.Errorf("%w: %s: segment %d: unknown kind %d", ErrInvalidPattern, name, i, seg.Kind)
		}

		if seg.Kind == KindAnchor || seg.Kind == KindGap || seg.Kind == KindSkip {
			if first < 0 {
				first = i
			}
			last = i
		}
		expr.WriteString(seg.expr())
	}

	if len(open) > 0 {
		return nil, errors.Errorf("%w: %s: unclosed capture %q", ErrInvalidPattern, name, open[len(open)-1])
	}
	if first < 0 {
		return nil, errors.Errorf("%w: %s: nothing to match", ErrInvalidPattern, name)
	}
	if segs[first].Kind != KindAnchor || segs[last].Kind != KindAnchor {
		return nil, errors.Errorf("%w: %s: must start and end with an anchor", ErrInvalidPattern, name)
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, errors.Errorf("%w: %s: compiling: %s", ErrInvalidPattern, name, err.Error())
	}

	return &Pattern{
		name:     name,
		segments: append([]Segment(nil), segs...),
		captures: captures,
		re:       re,
	}, nil
}

// Name returns the pattern name
func (p *Pattern) Name() string { return p.name }

// Captures returns the declared capture names in declaration order
func (p *Pattern) Captures() []string { return append([]string(nil), p.captures...) }

// HasCapture reports whether the pattern declares the named capture
func (p *Pattern) HasCapture(name string) bool {
	for _, c := range p.captures {
		if c == name {
			return true
		}
	}
	return false
}

// String returns the compiled expression
func (p *Pattern) String() string { return p.re.String() }

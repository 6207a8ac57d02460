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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏗️ Builder assembles a pattern from code-shaped text
type Builder struct {
	name string
	segs []Segment
	err  error
}

// New starts a pattern named name
func New(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) lastMatching() Kind {
	for i := len(b.segs) - 1; i >= 0; i-- {
		if k := b.segs[i].Kind; k != KindBegin && k != KindEnd {
			return k
		}
	}
	return 0
}

// Text appends s split on whitespace: each field is an anchor and every
// whitespace run inside s becomes a required gap. Text following an anchor
// from an earlier call is joined by an optional gap.
func (b *Builder) Text(s string) *Builder {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		b.fail(errors.Errorf("%w: %s: empty text", ErrInvalidPattern, b.name))
		return b
	}
	if b.lastMatching() == KindAnchor {
		b.insertGap()
	}
	for i, f := range fields {
		if i > 0 {
			b.segs = append(b.segs, Gap(true))
		}
		b.segs = append(b.segs, Anchor(f))
	}
	return b
}

// insertGap places an optional gap ahead of any trailing Begin so captures
// opened since the last anchor start at the next anchor.
func (b *Builder) insertGap() {
	at := len(b.segs)
	for at > 0 && b.segs[at-1].Kind == KindBegin {
		at--
	}
	b.segs = append(b.segs, Segment{})
	copy(b.segs[at+1:], b.segs[at:])
	b.segs[at] = Gap(false)
}

// Space appends a required whitespace gap
func (b *Builder) Space() *Builder {
	b.segs = append(b.segs, Gap(true))
	return b
}

// OptionalSpace appends a whitespace gap that may be empty
func (b *Builder) OptionalSpace() *Builder {
	b.segs = append(b.segs, Gap(false))
	return b
}

// Skip appends a lazy any-text run
func (b *Builder) Skip() *Builder {
	b.segs = append(b.segs, Skip())
	return b
}

// Begin opens a named capture
func (b *Builder) Begin(name string) *Builder {
	b.segs = append(b.segs, Begin(name))
	return b
}

// End closes the innermost capture
func (b *Builder) End() *Builder {
	b.segs = append(b.segs, End())
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build validates and compiles the pattern
func (b *Builder) Build() (*Pattern, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Compile(b.name, b.segs...)
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Pattern {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

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
	"strings"

	"github.com/walteh/srcpatch/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidTemplate is wrapped by template parse errors
var ErrInvalidTemplate = errors.New("invalid template")

var refNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type part struct {
	literal string
	ref     string
}

// 📝 Template is replacement text that may reuse captured spans of a match.
//
// "${name}" is replaced with the text of capture name. "$${" yields a
// literal "${". Any other "$" is copied as is.
type Template struct {
	source string
	parts  []part
}

// ParseTemplate parses replacement text
func ParseTemplate(s string) (*Template, error) {
	var (
		parts []part
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, part{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "$${"):
			lit.WriteString("${")
			i += 3
		case strings.HasPrefix(s[i:], "${"):
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return nil, errors.Errorf("%w: unterminated reference at offset %d", ErrInvalidTemplate, i)
			}
			name := s[i+2 : i+2+end]
			if !refNameRe.MatchString(name) {
				return nil, errors.Errorf("%w: bad reference %q at offset %d", ErrInvalidTemplate, name, i)
			}
			flush()
			parts = append(parts, part{ref: name})
			i += 2 + end + 1
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flush()

	return &Template{source: s, parts: parts}, nil
}

// References returns the capture names the template uses, in order of first use
func (t *Template) References() []string {
	var refs []string
	seen := map[string]bool{}
	for _, p := range t.parts {
		if p.ref == "" || seen[p.ref] {
			continue
		}
		seen[p.ref] = true
		refs = append(refs, p.ref)
	}
	return refs
}

// Render substitutes the captures of m
func (t *Template) Render(m *pattern.Match) string {
	var sb strings.Builder
	for _, p := range t.parts {
		if p.ref == "" {
			sb.WriteString(p.literal)
			continue
		}
		if v, ok := m.Capture(p.ref); ok {
			sb.WriteString(v)
		}
	}
	return sb.String()
}

// String returns the template source
func (t *Template) String() string { return t.source }

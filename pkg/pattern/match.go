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

// 📍 Span is a half-open byte range [Start, End) in a buffer
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes
func (s Span) Len() int { return s.End - s.Start }

// 🔍 Match is a single located occurrence of a pattern
type Match struct {
	Span     Span
	source   string
	captures map[string]Span
}

// Text returns the matched text
func (m *Match) Text() string {
	return m.source[m.Span.Start:m.Span.End]
}

// Capture returns the text of a named capture
func (m *Match) Capture(name string) (string, bool) {
	sp, ok := m.captures[name]
	if !ok {
		return "", false
	}
	return m.source[sp.Start:sp.End], true
}

// Find returns the leftmost occurrence of the pattern in s, or nil when the
// pattern is absent. Only the first occurrence is ever reported.
func (p *Pattern) Find(s string) *Match {
	idx := p.re.FindStringSubmatchIndex(s)
	if idx == nil {
		return nil
	}

	m := &Match{
		Span:     Span{Start: idx[0], End: idx[1]},
		source:   s,
		captures: make(map[string]Span, len(p.captures)),
	}
	for i, name := range p.re.SubexpNames() {
		if i == 0 || name == "" || idx[2*i] < 0 {
			continue
		}
		m.captures[name] = Span{Start: idx[2*i], End: idx[2*i+1]}
	}
	return m
}

// Count returns how many non-overlapping occurrences of the pattern s holds.
// A well-scoped pattern has a count of zero or one.
func (p *Pattern) Count(s string) int {
	return len(p.re.FindAllStringIndex(s, -1))
}

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

// Parse builds a pattern from its line form, as written in rule files.
//
// Each line is either anchor text, handled like Builder.Text, or one of the
// directives:
//
//	@begin <name>
//	@end
//	@skip
//	@space
//	@optional-space
//
// A line starting with "@@" is anchor text beginning with a literal "@".
// Blank lines are ignored.
func Parse(name string, lines []string) (*Pattern, error) {
	b := New(name)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "@@"):
			b.Text(trimmed[1:])
		case strings.HasPrefix(trimmed, "@"):
			fields := strings.Fields(trimmed)
			if fields[0] == "@begin" {
				if len(fields) != 2 {
					return nil, errors.Errorf("%w: %s: line %d: @begin takes one name", ErrInvalidPattern, name, i+1)
				}
				b.Begin(fields[1])
				continue
			}
			if len(fields) != 1 && isDirective(fields[0]) {
				return nil, errors.Errorf("%w: %s: line %d: %s takes no arguments", ErrInvalidPattern, name, i+1, fields[0])
			}
			switch fields[0] {
			case "@end":
				b.End()
			case "@skip":
				b.Skip()
			case "@space":
				b.Space()
			case "@optional-space":
				b.OptionalSpace()
			default:
				return nil, errors.Errorf("%w: %s: line %d: unknown directive %q", ErrInvalidPattern, name, i+1, fields[0])
			}
		default:
			b.Text(trimmed)
		}
	}
	return b.Build()
}

func isDirective(word string) bool {
	switch word {
	case "@end", "@skip", "@space", "@optional-space":
		return true
	}
	return false
}

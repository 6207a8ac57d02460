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
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/srcpatch/pkg/pattern"
)

// RuleOutcome describes what one rule did to the buffer it was given
type RuleOutcome struct {
	// Rule is the rule name
	Rule string

	// Applied indicates the pattern was found and replaced
	Applied bool

	// Span is the replaced region of the rule's input buffer
	Span pattern.Span

	// Candidates is the number of non-overlapping occurrences in the rule's input
	Candidates int

	// LinesAdded and LinesRemoved count the line-level change of the replacement
	LinesAdded   int
	LinesRemoved int
}

// Result contains the results of running a pipeline
type Result struct {
	// OriginalContent is the content before any rule ran
	OriginalContent Buffer

	// ModifiedContent is the content after the last rule ran
	ModifiedContent Buffer

	// WasModified indicates the content changed
	WasModified bool

	// AppliedCount is the number of rules that matched
	AppliedCount int

	// Outcomes holds one entry per rule, in rule order
	Outcomes []RuleOutcome
}

// 🔗 Pipeline applies rules in order, each to the output of the one before
type Pipeline struct {
	rules []*Rule
}

// NewPipeline creates a pipeline
func NewPipeline(rules ...*Rule) *Pipeline {
	return &Pipeline{rules: append([]*Rule(nil), rules...)}
}

// Run threads buf through every rule. A rule whose pattern is absent leaves
// the buffer unchanged and the next rule runs on the same content.
func (p *Pipeline) Run(ctx context.Context, buf Buffer) *Result {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: buf,
		Outcomes:        make([]RuleOutcome, 0, len(p.rules)),
	}

	current := buf
	for _, rule := range p.rules {
		outcome := RuleOutcome{
			Rule:       rule.Name(),
			Candidates: rule.Pattern().Count(string(current)),
		}

		if outcome.Candidates > 1 {
			logger.Warn().
				Str("rule", rule.Name()).
				Int("candidates", outcome.Candidates).
				Msg("pattern has several candidates, only the first is replaced")
		}

		next, m := rule.Apply(current)
		if m == nil {
			logger.Debug().Str("rule", rule.Name()).Msg("pattern not found, rule skipped")
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		outcome.Applied = true
		outcome.Span = m.Span
		outcome.LinesAdded, outcome.LinesRemoved = lineStats(m.Text(), rule.Template().Render(m))
		result.AppliedCount++
		result.Outcomes = append(result.Outcomes, outcome)

		logger.Debug().
			Str("rule", rule.Name()).
			Int("start", m.Span.Start).
			Int("end", m.Span.End).
			Int("matched_bytes", m.Span.Len()).
			Int("lines_added", outcome.LinesAdded).
			Int("lines_removed", outcome.LinesRemoved).
			Msg("rule applied")

		current = next
	}

	result.ModifiedContent = current
	result.WasModified = current != buf
	return result
}

// lineStats counts the lines a line-mode diff of before and after inserts and deletes
func lineStats(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		case diffmatchpatch.DiffEqual:
		}
	}
	return added, removed
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

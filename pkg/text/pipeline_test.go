package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/srcpatch/pkg/pattern"
)

func literalRule(t *testing.T, name, from, to string) *Rule {
	t.Helper()
	r, err := NewRule(name, pattern.New(name).Text(from).MustBuild(), to)
	require.NoError(t, err)
	return r
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        func(t *testing.T) []*Rule
		want         string
		wantApplied  []bool
		wantModified bool
	}{
		{
			name:    "single_rule",
			content: "alpha();",
			rules: func(t *testing.T) []*Rule {
				return []*Rule{literalRule(t, "a", "alpha();", "omega();")}
			},
			want:         "omega();",
			wantApplied:  []bool{true},
			wantModified: true,
		},
		{
			name:    "first_rule_creates_candidate_for_second",
			content: "alpha();",
			rules: func(t *testing.T) []*Rule {
				return []*Rule{
					literalRule(t, "add-beta", "alpha();", "alpha();\nbeta();"),
					literalRule(t, "beta-to-gamma", "beta();", "gamma();"),
				}
			},
			want:         "alpha();\ngamma();",
			wantApplied:  []bool{true, true},
			wantModified: true,
		},
		{
			name:    "first_rule_destroys_candidate_for_second",
			content: "beta();",
			rules: func(t *testing.T) []*Rule {
				return []*Rule{
					literalRule(t, "beta-to-delta", "beta();", "delta();"),
					literalRule(t, "beta-to-gamma", "beta();", "gamma();"),
				}
			},
			want:         "delta();",
			wantApplied:  []bool{true, false},
			wantModified: true,
		},
		{
			name:    "only_first_occurrence",
			content: "beta(); beta();",
			rules: func(t *testing.T) []*Rule {
				return []*Rule{literalRule(t, "b", "beta();", "gamma();")}
			},
			want:         "gamma(); beta();",
			wantApplied:  []bool{true},
			wantModified: true,
		},
		{
			name:    "no_rule_matches",
			content: "nothing here",
			rules: func(t *testing.T) []*Rule {
				return []*Rule{
					literalRule(t, "a", "alpha();", "omega();"),
					literalRule(t, "b", "beta();", "gamma();"),
				}
			},
			want:         "nothing here",
			wantApplied:  []bool{false, false},
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules: func(t *testing.T) []*Rule {
				return []*Rule{literalRule(t, "a", "alpha();", "omega();")}
			},
			want:         "",
			wantApplied:  []bool{false},
			wantModified: false,
		},
		{
			name:    "empty_rules",
			content: "alpha();",
			rules: func(t *testing.T) []*Rule {
				return nil
			},
			want:         "alpha();",
			wantApplied:  []bool{},
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.rules(t)...)
			result := p.Run(testContext(t), Buffer(tt.content))

			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalContent.String())
			assert.Equal(t, tt.want, result.ModifiedContent.String())
			assert.Equal(t, tt.wantModified, result.WasModified)

			applied := make([]bool, 0, len(result.Outcomes))
			count := 0
			for _, o := range result.Outcomes {
				applied = append(applied, o.Applied)
				if o.Applied {
					count++
				}
			}
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, count, result.AppliedCount)
		})
	}
}

func TestPipeline_Run_SecondRuleSeesOnlyFirstRuleOutput(t *testing.T) {
	addBeta := literalRule(t, "add-beta", "alpha();", "alpha();\nbeta();")
	betaToGamma := literalRule(t, "beta-to-gamma", "beta();", "gamma();")

	// against the original buffer the second rule has nothing to do
	_, m := betaToGamma.Apply("alpha();")
	assert.Nil(t, m)

	result := NewPipeline(addBeta, betaToGamma).Run(testContext(t), "alpha();")
	assert.Equal(t, Buffer("alpha();\ngamma();"), result.ModifiedContent)
	assert.Equal(t, pattern.Span{Start: len("alpha();\n"), End: len("alpha();\nbeta();")}, result.Outcomes[1].Span)
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	p := NewPipeline(
		fGuardRule(t),
		literalRule(t, "rename", "return 1;", "return one;"),
	)

	first := p.Run(testContext(t), Buffer(guardedFunctions))
	require.True(t, first.WasModified)
	require.Equal(t, 2, first.AppliedCount)

	second := p.Run(testContext(t), first.ModifiedContent)
	assert.False(t, second.WasModified)
	assert.Equal(t, 0, second.AppliedCount)
	assert.Equal(t, first.ModifiedContent, second.ModifiedContent)
}

func TestPipeline_Run_Outcomes(t *testing.T) {
	ambiguous := literalRule(t, "guard", "throw e;", "throw wrap(e);")
	p := NewPipeline(fGuardRule(t), ambiguous)

	result := p.Run(testContext(t), Buffer(guardedFunctions))
	require.Len(t, result.Outcomes, 2)

	fGuard := result.Outcomes[0]
	assert.Equal(t, "f-guard", fGuard.Rule)
	assert.True(t, fGuard.Applied)
	assert.Equal(t, 1, fGuard.Candidates)
	// the rethrow moves two columns right, so its old line counts as removed
	assert.Equal(t, 5, fGuard.LinesAdded)
	assert.Equal(t, 1, fGuard.LinesRemoved)

	guard := result.Outcomes[1]
	assert.Equal(t, 2, guard.Candidates)
	assert.True(t, guard.Applied)
	assert.Equal(t, 1, guard.LinesAdded)
	assert.Equal(t, 1, guard.LinesRemoved)
}

func TestLineStats(t *testing.T) {
	tests := []struct {
		name        string
		before      string
		after       string
		wantAdded   int
		wantRemoved int
	}{
		{name: "identical", before: "a\nb", after: "a\nb"},
		{name: "insert_line", before: "a\nb", after: "a\nx\nb", wantAdded: 1},
		{name: "replace_line", before: "a\nb", after: "a\nc", wantAdded: 1, wantRemoved: 1},
		{name: "delete_all", before: "a\nb\n", after: "", wantRemoved: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := lineStats(tt.before, tt.after)
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

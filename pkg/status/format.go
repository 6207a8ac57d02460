package status

import (
	"fmt"

	"github.com/walteh/srcpatch/pkg/text"
)

// Formatter defines how rule outcomes and file results should be formatted
type Formatter interface {
	// FormatRuleOutcome formats the outcome of one rule
	FormatRuleOutcome(o text.RuleOutcome) string

	// FormatSummary formats the result for a whole file
	FormatSummary(path string, applied, total int, st FileStatus) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatRuleOutcome formats a rule outcome with emojis
func (f *DefaultFormatter) FormatRuleOutcome(o text.RuleOutcome) string {
	if !o.Applied {
		return fmt.Sprintf("👍 Skipped %s (pattern not found)", o.Rule)
	}
	return fmt.Sprintf("📝 Applied %s (+%d -%d)", o.Rule, o.LinesAdded, o.LinesRemoved)
}

// FormatSummary formats the file result
func (f *DefaultFormatter) FormatSummary(path string, applied, total int, st FileStatus) string {
	if st == StatusUnchanged {
		return fmt.Sprintf("%s already up to date (%d/%d rules applied)", path, applied, total)
	}
	return fmt.Sprintf("Successfully patched %s (%d/%d rules applied)", path, applied, total)
}

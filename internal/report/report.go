// Package report renders a plain-text summary of what a normalization
// run did, rule by rule.
package report

import (
	"bytes"
	"fmt"

	"github.com/mcncl/jsonflex/internal/normalize"
)

// Render produces a human-readable summary of a normalize result. Rules
// that never matched are still listed so a typo'd pattern is visible.
func Render(result *normalize.Result) string {
	var buf bytes.Buffer

	buf.WriteString("Normalization summary\n")
	if len(result.Rules) == 0 {
		buf.WriteString("  no rules configured\n")
		return buf.String()
	}

	// Size the pattern column to the widest pattern.
	width := len("pattern")
	for _, stats := range result.Rules {
		if len(stats.Pattern) > width {
			width = len(stats.Pattern)
		}
	}

	buf.WriteString(fmt.Sprintf("  %-*s  %-8s  %5s  %8s  %8s  %7s\n",
		width, "pattern", "to", "hits", "coerced", "skipped", "failed"))
	for _, stats := range result.Rules {
		buf.WriteString(fmt.Sprintf("  %-*s  %-8s  %5d  %8d  %8d  %7d\n",
			width, stats.Pattern, stats.To, stats.Hits, stats.Coerced, stats.Skipped, stats.Failed))
	}

	return buf.String()
}

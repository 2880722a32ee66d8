// Package report renders scope-exit reports as the text blocks the CLI
// prints on success.
package report

import (
	"strings"

	"github.com/agueguen-LR/imp/pkg/evaluator"
)

// Format renders one scope report as a block: a header naming the scope
// followed by its bindings, one per line, already sorted by the
// snapshot.
func Format(r evaluator.ScopeReport) string {
	var sb strings.Builder
	sb.WriteString("scope ")
	sb.WriteString(r.Label)
	sb.WriteString(":\n")
	if len(r.Bindings) == 0 {
		sb.WriteString("  (empty)\n")
		return sb.String()
	}
	for _, b := range r.Bindings {
		sb.WriteString("  ")
		sb.WriteString(b.Name)
		sb.WriteString(" = ")
		sb.WriteString(b.Value.Render())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Buffer accumulates scope reports during a run so nothing prints until
// the run is known to have succeeded.
type Buffer struct {
	reports []evaluator.ScopeReport
}

// Add appends a report in arrival order.
func (b *Buffer) Add(r evaluator.ScopeReport) {
	b.reports = append(b.reports, r)
}

// Reports returns the accumulated reports in arrival order.
func (b *Buffer) Reports() []evaluator.ScopeReport {
	return b.reports
}

// Render formats every buffered report, blocks separated by one blank
// line.
func (b *Buffer) Render() string {
	parts := make([]string, len(b.reports))
	for i, r := range b.reports {
		parts[i] = Format(r)
	}
	return strings.Join(parts, "\n")
}

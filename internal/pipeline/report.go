package pipeline

import (
	"fmt"
	"strings"

	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/schema"
)

// FormatReport generates a human-readable session report.
func FormatReport(sess model.Session, report model.CompletenessReport, reg *schema.Registry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Extraction Report: %s\n", sess.ID)
	fmt.Fprintf(&b, "Status: %s\n\n", sess.Status)

	// Summary.
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Fields present: %d / %d\n", report.ExtractedCount, report.TotalFields)
	fmt.Fprintf(&b, "- Fields missing: %d\n", report.MissingCount)
	fmt.Fprintf(&b, "- Token usage: %d input, %d output\n",
		sess.Usage.InputTokens, sess.Usage.OutputTokens)
	fmt.Fprintf(&b, "- Estimated cost: $%.4f\n\n", sess.Usage.Cost)

	// Provenance breakdown.
	counts := sess.Record.CountByProvenance()
	b.WriteString("## Provenance\n")
	for _, p := range []model.Provenance{
		model.ProvenanceExtracted,
		model.ProvenanceDefault,
		model.ProvenanceAIGenerated,
		model.ProvenanceUserProvided,
	} {
		fmt.Fprintf(&b, "- %s: %d\n", p, counts[p])
	}
	b.WriteString("\n")

	// Missing fields per category, schema order.
	b.WriteString("## Missing Fields\n")
	if report.Complete() {
		b.WriteString("None.\n")
	} else {
		for _, cat := range reg.Categories() {
			ids := report.Missing[cat]
			if len(ids) == 0 {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", cat, strings.Join(ids, ", "))
		}
	}

	return b.String()
}

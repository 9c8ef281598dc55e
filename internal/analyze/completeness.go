// Package analyze computes missing-field reports for a record against the
// schema. Pure functions only; records are never mutated here.
package analyze

import (
	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/schema"
)

// Completeness derives the missing-field report for a record. A field counts
// as present only when it has a non-null, non-empty string value. The report
// preserves schema ordering within each category.
func Completeness(rec model.Record, reg *schema.Registry) model.CompletenessReport {
	report := model.CompletenessReport{
		Missing:     make(map[string][]string),
		TotalFields: reg.Len(),
	}

	for _, cat := range reg.Categories() {
		for _, id := range reg.FieldsIn(cat) {
			if rec.Has(id) {
				report.ExtractedCount++
				continue
			}
			report.Missing[cat] = append(report.Missing[cat], id)
			report.MissingCount++
		}
	}

	return report
}

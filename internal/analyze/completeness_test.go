package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/schema"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	r, err := schema.New([]schema.Category{
		{Name: "company", Fields: []string{"NAME", "CODE"}},
		{Name: "project", Fields: []string{"TITLE", "BUDGET", "DURATION"}},
	})
	require.NoError(t, err)
	return r
}

func TestCompleteness_Accounting(t *testing.T) {
	reg := testRegistry(t)
	rec := model.NewRecord()
	rec.Set(model.FieldValue{FieldID: "NAME", Value: "Acme", Provenance: model.ProvenanceExtracted})
	rec.Set(model.FieldValue{FieldID: "TITLE", Value: "Sensors", Provenance: model.ProvenanceExtracted})

	report := Completeness(rec, reg)

	assert.Equal(t, 5, report.TotalFields)
	assert.Equal(t, 2, report.ExtractedCount)
	assert.Equal(t, 3, report.MissingCount)
	assert.Equal(t, report.TotalFields, report.ExtractedCount+report.MissingCount)
	assert.False(t, report.Complete())
}

func TestCompleteness_SchemaOrderPreserved(t *testing.T) {
	reg := testRegistry(t)
	rec := model.NewRecord()
	rec.Set(model.FieldValue{FieldID: "BUDGET", Value: "200000", Provenance: model.ProvenanceExtracted})

	report := Completeness(rec, reg)

	assert.Equal(t, []string{"NAME", "CODE"}, report.Missing["company"])
	assert.Equal(t, []string{"TITLE", "DURATION"}, report.Missing["project"])
	assert.Equal(t, []string{"NAME", "CODE", "TITLE", "DURATION"},
		report.MissingIDs(reg.Categories()))
}

func TestCompleteness_EmptyStringCountsMissing(t *testing.T) {
	reg := testRegistry(t)
	rec := model.NewRecord()
	rec.Set(model.FieldValue{FieldID: "NAME", Value: "", Provenance: model.ProvenanceExtracted})

	report := Completeness(rec, reg)
	assert.Equal(t, 0, report.ExtractedCount)
	assert.Contains(t, report.Missing["company"], "NAME")
}

func TestCompleteness_FullRecord(t *testing.T) {
	reg := testRegistry(t)
	rec := model.NewRecord()
	for _, id := range reg.AllFields() {
		rec.Set(model.FieldValue{FieldID: id, Value: "value-" + id, Provenance: model.ProvenanceDefault})
	}

	report := Completeness(rec, reg)
	assert.True(t, report.Complete())
	assert.Empty(t, report.Missing)
	assert.Equal(t, 5, report.ExtractedCount)
}

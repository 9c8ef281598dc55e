package parser

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
		{Name: "company", Fields: []string{"COMPANY_NAME", "CEO_NAME", "I_C"}},
		{Name: "project", Fields: []string{"PROJECT_TITLE", "JUS_PRO", "REVENUE_RATIO"}},
	})
	require.NoError(t, err)
	return r
}

func TestParse_BasicLines(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("COMPANY_NAME: Acme UAB\nPROJECT_TITLE: Smart Sensors\n", reg)

	assert.Equal(t, 2, rec.Len())
	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "Acme UAB", fv.Value)
	assert.Equal(t, model.ProvenanceExtracted, fv.Provenance)
}

func TestParse_BracketWrapStripped(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("COMPANY_NAME: [Acme UAB]", reg)

	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "Acme UAB", fv.Value)
}

func TestParse_PartialBracketKept(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("COMPANY_NAME: [Acme UAB\nCEO_NAME: Jonas] Petraitis", reg)

	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "[Acme UAB", fv.Value)

	fv, ok = rec.Get("CEO_NAME")
	require.True(t, ok)
	assert.Equal(t, "Jonas] Petraitis", fv.Value)
}

func TestParse_InstructionPrefixStripped(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("JUS_PRO: Extract justification for the project from the idea", reg)

	fv, ok := rec.Get("JUS_PRO")
	require.True(t, ok)
	assert.Equal(t, "justification for the project from the idea", fv.Value)
}

func TestParse_PrefixStrippedOnce(t *testing.T) {
	reg := testRegistry(t)
	// Only the first matching prefix is removed, a second instruction word
	// in the remainder is real content.
	rec := New().Parse("JUS_PRO: Extract Choose something meaningful", reg)

	fv, ok := rec.Get("JUS_PRO")
	require.True(t, ok)
	assert.Equal(t, "Choose something meaningful", fv.Value)
}

func TestParse_QuotesTrimmed(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse(`COMPANY_NAME: "Acme UAB"`, reg)

	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "Acme UAB", fv.Value)
}

func TestParse_NotFoundRejected(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("COMPANY_NAME: NOT_FOUND\nCEO_NAME: [NOT_FOUND]", reg)

	assert.Equal(t, 0, rec.Len())
}

func TestParse_ShortValueRejected(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("COMPANY_NAME: ab\nCEO_NAME: abc", reg)

	assert.False(t, rec.Has("COMPANY_NAME"))
	assert.True(t, rec.Has("CEO_NAME"))
}

func TestParse_MinValueLenOption(t *testing.T) {
	reg := testRegistry(t)
	rec := New(WithMinValueLen(5)).Parse("COMPANY_NAME: Acme\nCEO_NAME: Jonas P", reg)

	assert.False(t, rec.Has("COMPANY_NAME"))
	assert.True(t, rec.Has("CEO_NAME"))
}

func TestParse_FirstOccurrenceWins(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("COMPANY_NAME: Acme UAB\nCOMPANY_NAME: Other Ltd\n", reg)

	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "Acme UAB", fv.Value)
}

func TestParse_RejectedFirstThenAccepted(t *testing.T) {
	reg := testRegistry(t)
	// A rejected line does not claim the field; a later valid line still lands.
	rec := New().Parse("COMPANY_NAME: NOT_FOUND\nCOMPANY_NAME: Acme UAB\n", reg)

	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "Acme UAB", fv.Value)
}

func TestParse_CaseInsensitiveFallback(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("company_name: Acme UAB", reg)

	fv, ok := rec.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, "Acme UAB", fv.Value)
}

func TestParse_FirstColonSplits(t *testing.T) {
	reg := testRegistry(t)
	rec := New().Parse("REVENUE_RATIO: Ratio: 2.5:1", reg)

	fv, ok := rec.Get("REVENUE_RATIO")
	require.True(t, ok)
	assert.Equal(t, "Ratio: 2.5:1", fv.Value)
}

func TestParse_UnknownAndMalformedSkipped(t *testing.T) {
	reg := testRegistry(t)
	text := "NOT_A_FIELD: something here\n" +
		"just prose without structure\n" +
		"The COMPANY_NAME appears mid line: ignored\n" +
		"CEO_NAME: Jonas Petraitis\n"
	rec := New().Parse(text, reg)

	assert.Equal(t, 1, rec.Len())
	assert.True(t, rec.Has("CEO_NAME"))
}

func TestParse_EmptyInput(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, 0, New().Parse("", reg).Len())
	assert.Equal(t, 0, New().Parse("\n\n  \n", reg).Len())
}

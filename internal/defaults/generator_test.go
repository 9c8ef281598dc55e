package defaults

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inostartas/grant-cli/internal/model"
)

func TestClassifyDomain_PriorityOrder(t *testing.T) {
	// Health keywords outrank AI keywords when both appear.
	d := ClassifyDomain("AI-powered biotechnology diagnostics platform")
	assert.Equal(t, "Health technologies", d.RDPriority)

	d = ClassifyDomain("machine learning analytics for logistics")
	assert.Equal(t, "Artificial intelligence, big and distributed data", d.ProjectSubtopic)

	d = ClassifyDomain("renewable energy storage systems")
	assert.Equal(t, "Production processes", d.RDPriority)
}

func TestClassifyDomain_Fallback(t *testing.T) {
	d := ClassifyDomain("blockchain marketplace for secondhand furniture")
	assert.Equal(t, "Information and communication technologies", d.RDPriority)
	assert.Equal(t, "62.01", d.CESEClass)
	assert.Empty(t, d.Keywords)
}

func TestGenerate_HealthDomainValues(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)))
	rec := g.Generate("medical device startup for remote patient monitoring")

	fv, ok := rec.Get("RD_PRIORITY")
	require.True(t, ok)
	assert.Equal(t, "Health technologies", fv.Value)

	fv, _ = rec.Get("RESEARCH_AREA")
	assert.Equal(t, "Medical Sciences", fv.Value)
	fv, _ = rec.Get("CESE_CLASS")
	assert.Equal(t, "72.11", fv.Value)

	// Health bucket carries no subtopic.
	assert.False(t, rec.Has("PROJECT_SUBTOPIC"))
}

func TestGenerate_AllDefaultProvenance(t *testing.T) {
	g := New(rand.New(rand.NewSource(2)))
	rec := g.Generate("energy efficiency platform")

	for _, id := range rec.FieldIDs() {
		fv, _ := rec.Get(id)
		assert.Equal(t, model.ProvenanceDefault, fv.Provenance, id)
	}
}

func TestGenerate_SeededDeterminism(t *testing.T) {
	a := New(rand.New(rand.NewSource(42))).Generate("ai assistant for accounting")
	b := New(rand.New(rand.NewSource(42))).Generate("ai assistant for accounting")

	require.Equal(t, a.Len(), b.Len())
	for _, id := range a.FieldIDs() {
		av, _ := a.Get(id)
		bv, ok := b.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, av.Value, bv.Value, id)
	}
}

func TestGenerate_JobCountsOrdered(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rec := New(rand.New(rand.NewSource(seed))).Generate("manufacturing automation")

		total := mustInt(t, rec, "TOTAL_RESEARCH_JOBS")
		during := mustInt(t, rec, "JOBS_DURING_PROJECT")
		after := mustInt(t, rec, "JOBS_AFTER_PROJECT")

		assert.LessOrEqual(t, after, during, "seed %d", seed)
		assert.LessOrEqual(t, during, total, "seed %d", seed)
	}
}

func TestGenerate_BoundedRandoms(t *testing.T) {
	rec := New(rand.New(rand.NewSource(7))).Generate("some generic idea")

	budget := mustInt(t, rec, "RD_BUDGET")
	assert.GreaterOrEqual(t, budget, 150000)
	assert.LessOrEqual(t, budget, 300000)

	share := mustInt(t, rec, "SHARE_HS")
	assert.GreaterOrEqual(t, share, 60)
	assert.LessOrEqual(t, share, 100)
}

func TestGenerate_RiskTable(t *testing.T) {
	rec := New(rand.New(rand.NewSource(3))).Generate("any idea at all")

	fv, ok := rec.Get("RISK_STAGE_1")
	require.True(t, ok)
	assert.Contains(t, fv.Value, "feasibility")

	for n := 1; n <= 4; n++ {
		for _, prefix := range []string{"RISK_STAGE_", "RISK_DESCRIPTION_", "CRITICAL_POINT_", "MITIGATION_ACTION_"} {
			assert.True(t, rec.Has(prefix+strconv.Itoa(n)), prefix+strconv.Itoa(n))
		}
	}
}

func TestNew_NilSource(t *testing.T) {
	g := New(nil)
	rec := g.Generate("idea")
	assert.Greater(t, rec.Len(), 0)
}

func mustInt(t *testing.T, rec model.Record, id string) int {
	t.Helper()
	fv, ok := rec.Get(id)
	require.True(t, ok, id)
	n, err := strconv.Atoi(fv.Value)
	require.NoError(t, err, id)
	return n
}

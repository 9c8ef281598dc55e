package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inostartas/grant-cli/internal/config"
	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/parser"
	"github.com/inostartas/grant-cli/internal/schema"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	r, err := schema.New([]schema.Category{
		{Name: "company", Fields: []string{"COMPANY_NAME", "CEO_NAME"}},
		{Name: "project", Fields: []string{"PROJECT_TITLE"}},
	})
	require.NoError(t, err)
	return r
}

func testAnthropicConfig() config.AnthropicConfig {
	return config.AnthropicConfig{
		Model:          "claude-sonnet-4-5-20250929",
		MaxTokens:      4096,
		FieldMaxTokens: 256,
	}
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt("An AI-driven sensor platform", testRegistry(t))

	assert.Contains(t, prompt, "An AI-driven sensor platform")
	assert.Contains(t, prompt, "## company")
	assert.Contains(t, prompt, "## project")
	assert.Contains(t, prompt, "COMPANY_NAME: [")
	assert.Contains(t, prompt, `or "NOT_FOUND"]`)
}

func TestExtractPhase_ParsesCompletion(t *testing.T) {
	client := &mockAnthropicClient{
		response: textResponse("COMPANY_NAME: Acme UAB\nCEO_NAME: NOT_FOUND\nPROJECT_TITLE: Smart Sensors\n", 1200, 300),
	}
	reg := testRegistry(t)

	result := ExtractPhase(context.Background(), "idea text", reg, parser.New(), client, testAnthropicConfig())

	assert.False(t, result.GenerationFailed)
	assert.Equal(t, 2, result.Record.Len())
	assert.True(t, result.Record.Has("COMPANY_NAME"))
	assert.False(t, result.Record.Has("CEO_NAME"))

	assert.Equal(t, 2, result.Report.ExtractedCount)
	assert.Equal(t, 1, result.Report.MissingCount)

	assert.Equal(t, 1200, result.Usage.InputTokens)
	assert.Equal(t, 300, result.Usage.OutputTokens)
	assert.Greater(t, result.Usage.Cost, 0.0)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "claude-sonnet-4-5-20250929", client.requests[0].Model)
	assert.Contains(t, client.requests[0].Messages[0].Content, "idea text")
}

func TestExtractPhase_ProvenanceExtracted(t *testing.T) {
	client := &mockAnthropicClient{response: textResponse("COMPANY_NAME: Acme UAB\n", 10, 10)}

	result := ExtractPhase(context.Background(), "idea", testRegistry(t), parser.New(), client, testAnthropicConfig())

	fv, ok := result.Record.Get("COMPANY_NAME")
	require.True(t, ok)
	assert.Equal(t, model.ProvenanceExtracted, fv.Provenance)
}

func TestExtractPhase_GenerationFailure(t *testing.T) {
	client := &mockAnthropicClient{err: errors.New("api unavailable")}
	reg := testRegistry(t)

	result := ExtractPhase(context.Background(), "idea", reg, parser.New(), client, testAnthropicConfig())

	assert.True(t, result.GenerationFailed)
	assert.Equal(t, 0, result.Record.Len())
	assert.Equal(t, reg.Len(), result.Report.MissingCount)
	assert.Equal(t, model.TokenUsage{}, result.Usage)
}

func TestFormatReport(t *testing.T) {
	reg := testRegistry(t)
	rec := model.NewRecord()
	rec.Set(model.FieldValue{FieldID: "COMPANY_NAME", Value: "Acme UAB", Provenance: model.ProvenanceExtracted})
	rec.Set(model.FieldValue{FieldID: "PROJECT_TITLE", Value: "Smart Sensors", Provenance: model.ProvenanceDefault})

	sess := model.Session{
		ID:     "abc-123",
		Status: model.SessionStatusExtracted,
		Record: rec,
		Usage:  model.TokenUsage{InputTokens: 100, OutputTokens: 50, Cost: 0.0123},
	}

	out := FormatReport(sess, model.CompletenessReport{
		Missing:        map[string][]string{"company": {"CEO_NAME"}},
		TotalFields:    3,
		ExtractedCount: 2,
		MissingCount:   1,
	}, reg)

	assert.Contains(t, out, "abc-123")
	assert.Contains(t, out, "Fields present: 2 / 3")
	assert.Contains(t, out, "extracted: 1")
	assert.Contains(t, out, "default: 1")
	assert.Contains(t, out, "- company: CEO_NAME")
}

func TestFormatReport_Complete(t *testing.T) {
	out := FormatReport(model.Session{Record: model.NewRecord()}, model.CompletenessReport{TotalFields: 3, ExtractedCount: 3}, testRegistry(t))
	assert.Contains(t, out, "None.")
}

// Package pipeline is the thin orchestration layer between the LLM client
// and the pure extraction core: it builds prompts, performs the blocking
// generation calls, and feeds raw text into the parser. No business rules
// live here beyond failure recovery.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inostartas/grant-cli/internal/analyze"
	"github.com/inostartas/grant-cli/internal/config"
	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/parser"
	"github.com/inostartas/grant-cli/internal/schema"
	"github.com/inostartas/grant-cli/pkg/anthropic"
)

const extractSystemText = "You are an analyst preparing a Lithuanian MTEP (R&D) grant application. Extract structured information from the business idea. Respond with one field per line in the exact format FIELD_NAME: value. If information for a field is not available in the idea, write NOT_FOUND as the value. Do not add commentary."

const extractPromptHeader = `Extract structured information from the business idea below and format responses exactly to match the document structure of the MTEP Business Plan.

Business idea:
%s

Fill in every field below. Use NOT_FOUND when the idea does not contain the information.

`

// BuildExtractionPrompt renders the field-by-field extraction prompt from the
// schema, one "FIELD: [description]" line per field in schema order.
func BuildExtractionPrompt(idea string, reg *schema.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, extractPromptHeader, idea)
	for _, cat := range reg.Categories() {
		fmt.Fprintf(&b, "## %s\n", cat)
		for _, id := range reg.FieldsIn(cat) {
			fmt.Fprintf(&b, "%s: [%s or \"NOT_FOUND\"]\n", id, reg.Description(id))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ExtractResult is the outcome of one extraction phase.
type ExtractResult struct {
	Record model.Record
	Report model.CompletenessReport
	Usage  model.TokenUsage

	// GenerationFailed marks a run where the LLM call failed and the record
	// is the empty fallback. Extraction never propagates generation errors;
	// every field simply routes through the merge stage.
	GenerationFailed bool
}

// ExtractPhase runs one blocking generation call for the idea and parses the
// completion into a partial record. A failed call degrades to an all-absent
// record rather than an error.
func ExtractPhase(ctx context.Context, idea string, reg *schema.Registry, p *parser.Parser, client anthropic.Client, cfg config.AnthropicConfig) ExtractResult {
	var result ExtractResult
	result.Record = model.NewRecord()

	resp, err := client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		System:    extractSystemText,
		Messages: []anthropic.Message{
			{Role: "user", Content: BuildExtractionPrompt(idea, reg)},
		},
	})
	if err != nil {
		zap.L().Warn("extract: generation failed, continuing with empty record", zap.Error(err))
		result.GenerationFailed = true
		result.Report = analyze.Completeness(result.Record, reg)
		return result
	}

	result.Usage = model.TokenUsage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
		Cost:         resp.Usage.EstimateCost(cfg.Model),
	}
	resp.Usage.LogCost(cfg.Model, "extract")

	result.Record = p.Parse(resp.Text(), reg)
	result.Report = analyze.Completeness(result.Record, reg)
	zap.L().Info("extract: parsed completion",
		zap.Int("fields_found", result.Record.Len()),
		zap.Int("fields_total", reg.Len()),
	)
	return result
}

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inostartas/grant-cli/internal/config"
	"github.com/inostartas/grant-cli/internal/schema"
	"github.com/inostartas/grant-cli/pkg/anthropic"
)

const fieldSystemText = "You are a professional project data analyst. Generate realistic, detailed, contextually appropriate field values for a Lithuanian R&D grant application. Respond with the value only, no explanation or formatting."

const fieldPrompt = `Based on this business idea: %s

Generate a realistic value for the field: %s
Field description: %s

Generate only the value, no explanation. Make it realistic and appropriate for a Lithuanian R&D project.`

// AIFieldGenerator generates single field values via the LLM. It implements
// merge.FieldGenerator for the auto and hybrid strategies.
type AIFieldGenerator struct {
	reg    *schema.Registry
	client anthropic.Client
	cfg    config.AnthropicConfig
	usage  anthropic.TokenUsage
}

// NewAIFieldGenerator creates an AIFieldGenerator.
func NewAIFieldGenerator(reg *schema.Registry, client anthropic.Client, cfg config.AnthropicConfig) *AIFieldGenerator {
	return &AIFieldGenerator{reg: reg, client: client, cfg: cfg}
}

// GenerateField asks the model for one field value. A failed call degrades to
// a visible placeholder so a merge pass never stalls on a single field.
func (g *AIFieldGenerator) GenerateField(ctx context.Context, fieldID, description string) (string, error) {
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.cfg.Model,
		MaxTokens: g.cfg.FieldMaxTokens,
		System:    fieldSystemText,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(fieldPrompt, description, fieldID, g.reg.Description(fieldID))},
		},
	})
	if err != nil {
		zap.L().Warn("generate: field generation failed",
			zap.String("field_id", fieldID),
			zap.Error(err),
		)
		return fmt.Sprintf("Generated value for %s", fieldID), nil
	}

	g.usage.InputTokens += resp.Usage.InputTokens
	g.usage.OutputTokens += resp.Usage.OutputTokens

	return strings.TrimSpace(resp.Text()), nil
}

// Usage returns the accumulated token usage across GenerateField calls.
func (g *AIFieldGenerator) Usage() anthropic.TokenUsage {
	return g.usage
}

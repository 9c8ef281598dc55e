// Package merge reconciles candidate value sources into the final field
// record. Precedence is absolute: a field that already carries an extracted
// value is never touched by any strategy; only fields absent after parsing
// are candidates for defaults, AI generation, or manual input.
package merge

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/inostartas/grant-cli/internal/defaults"
	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/schema"
)

// Strategy selects how missing fields are resolved.
type Strategy string

const (
	StrategyAuto   Strategy = "auto"
	StrategyManual Strategy = "manual"
	StrategyHybrid Strategy = "hybrid"
)

// ParseStrategy validates a strategy name from user input.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAuto, StrategyManual, StrategyHybrid:
		return Strategy(s), nil
	}
	return "", eris.Errorf("merge: unknown strategy %q", s)
}

// Choice is the operator's per-field decision under the hybrid strategy.
type Choice string

const (
	ChoiceAuto   Choice = "auto"
	ChoiceManual Choice = "manual"
)

// FieldGenerator produces an AI-generated value for a single field outside
// the default generator's fixed coverage. Implementations live in the
// orchestration layer; the merge core only sees the interface.
type FieldGenerator interface {
	GenerateField(ctx context.Context, fieldID, description string) (string, error)
}

// Input carries everything one merge pass needs.
type Input struct {
	// Description is the free-text business idea, consumed by the default
	// generator's domain classification and the AI fallback.
	Description string

	// UserValues holds operator-typed values keyed by field id (manual and
	// hybrid strategies). An empty string leaves the field absent.
	UserValues map[string]string

	// Choices partitions missing fields under the hybrid strategy. Fields
	// without an entry default to ChoiceManual.
	Choices map[string]Choice
}

// Merger fills missing fields in a record according to a strategy.
type Merger struct {
	reg *schema.Registry
	gen *defaults.Generator
	ai  FieldGenerator
}

// New creates a Merger. The FieldGenerator may be nil, in which case fields
// outside the default generator's coverage stay absent under auto.
func New(reg *schema.Registry, gen *defaults.Generator, ai FieldGenerator) *Merger {
	return &Merger{reg: reg, gen: gen, ai: ai}
}

// Apply resolves the missing fields of rec per the strategy and returns a new
// record; rec itself is not mutated. Present fields are copied bit-identical
// regardless of strategy. Re-applying to an already-complete record is a
// no-op. Unknown field ids in UserValues or Choices are schema violations and
// fail loudly.
func (m *Merger) Apply(ctx context.Context, rec model.Record, strategy Strategy, in Input) (model.Record, error) {
	if err := m.checkKnownFields(in); err != nil {
		return model.Record{}, err
	}

	out := rec.Clone()

	var missing []string
	for _, id := range m.reg.AllFields() {
		if !out.Has(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	switch strategy {
	case StrategyAuto:
		m.applyAuto(ctx, out, missing, in.Description)
	case StrategyManual:
		applyManual(out, missing, in.UserValues)
	case StrategyHybrid:
		var autoIDs, manualIDs []string
		for _, id := range missing {
			if in.Choices[id] == ChoiceAuto {
				autoIDs = append(autoIDs, id)
			} else {
				manualIDs = append(manualIDs, id)
			}
		}
		m.applyAuto(ctx, out, autoIDs, in.Description)
		applyManual(out, manualIDs, in.UserValues)
	default:
		return model.Record{}, eris.Errorf("merge: unknown strategy %q", strategy)
	}

	zap.L().Info("merge: applied strategy",
		zap.String("strategy", string(strategy)),
		zap.Int("missing_before", len(missing)),
		zap.Int("present_after", out.Len()),
	)
	return out, nil
}

// applyAuto fills ids from the default generator where covered, falling back
// to per-field AI generation for the rest.
func (m *Merger) applyAuto(ctx context.Context, out model.Record, ids []string, description string) {
	generated := m.gen.Generate(description)

	for _, id := range ids {
		if fv, ok := generated.Get(id); ok {
			out.Set(fv)
			continue
		}
		if m.ai == nil {
			continue
		}
		value, err := m.ai.GenerateField(ctx, id, description)
		if err != nil || value == "" {
			zap.L().Warn("merge: AI field generation failed",
				zap.String("field_id", id),
				zap.Error(err),
			)
			continue
		}
		out.Set(model.FieldValue{
			FieldID:    id,
			Value:      value,
			Provenance: model.ProvenanceAIGenerated,
		})
	}
}

// applyManual accepts typed values for the given ids. Empty submissions leave
// the field absent by operator consent.
func applyManual(out model.Record, ids []string, userValues map[string]string) {
	for _, id := range ids {
		v, ok := userValues[id]
		if !ok || v == "" {
			continue
		}
		out.Set(model.FieldValue{
			FieldID:    id,
			Value:      v,
			Provenance: model.ProvenanceUserProvided,
		})
	}
}

func (m *Merger) checkKnownFields(in Input) error {
	for id := range in.UserValues {
		if !m.reg.Has(id) {
			return eris.Errorf("merge: user value for unknown field id %q", id)
		}
	}
	for id := range in.Choices {
		if !m.reg.Has(id) {
			return eris.Errorf("merge: choice for unknown field id %q", id)
		}
	}
	return nil
}

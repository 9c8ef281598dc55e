// Package validate is the LLM-assisted semantic completeness check: given the
// finalized free-text corpus and a battery of prompt-requirement documents,
// it scores how well the corpus satisfies each document's informational
// needs. The load-bearing design rule is conservatism about absence: a
// paraphrased or inferable piece of information is credited as present, and a
// field is only reported missing when the model is certain. A false "present"
// costs less downstream than a false "missing".
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inostartas/grant-cli/internal/config"
	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/pkg/anthropic"
)

const validateSystemText = "You are a thorough data validation expert with semantic understanding. Be CONSERVATIVE about marking data as missing - only mark something as missing if you are absolutely certain it is not present in any form. Recognize synonyms, paraphrases, and inferable information as present. Always respond with valid JSON."

const validatePrompt = `You are validating whether the input data below contains all information required by a document prompt.

VALIDATION RULES:
- Scan the ENTIRE input data before marking anything as missing.
- Recognize that required information might be expressed differently:
  "project costs" = "budget" = "expenses"; "team" = "staff" = "personnel";
  "timeline" = "schedule" = "duration"; "methodology" = "approach" = "process".
- Only mark data as missing if you are certain it is not present in ANY form.
- If information is partially present or can be reasonably inferred, mark it as present.

PROMPT NAME: %s

PROMPT REQUIREMENTS:
%s

INPUT DATA TO VALIDATE:
%s

Respond in JSON:
{
  "completeness_score": 0-100,
  "required_fields": ["data fields needed by this prompt"],
  "present_fields": ["fields found in the input"],
  "missing_fields": ["only fields genuinely missing after thorough search"],
  "present_evidence": {"field_name": "quote from input showing the data exists"},
  "missing_details": {"field_name": "what is missing and why it matters"},
  "suggestions": ["actionable suggestions for truly missing data only"]
}`

// PromptDoc is one prompt-requirement document: the informational needs of a
// downstream legal form, treated opaquely.
type PromptDoc struct {
	Name    string
	Content string
}

// LoadPromptDocs reads every .txt file in dir as a PromptDoc, sorted by name.
func LoadPromptDocs(dir string) ([]PromptDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "validate: read prompts dir %s", dir)
	}

	var docs []PromptDoc
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, eris.Wrapf(err, "validate: read prompt %s", e.Name())
		}
		docs = append(docs, PromptDoc{
			Name:    strings.TrimSuffix(e.Name(), ".txt"),
			Content: string(data),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	if len(docs) == 0 {
		return nil, eris.Errorf("validate: no prompt files in %s", dir)
	}
	return docs, nil
}

// Validator scores corpus completeness against prompt documents.
type Validator struct {
	client anthropic.Client
	aiCfg  config.AnthropicConfig
	cfg    config.ValidateConfig
}

// New creates a Validator.
func New(client anthropic.Client, aiCfg config.AnthropicConfig, cfg config.ValidateConfig) *Validator {
	return &Validator{client: client, aiCfg: aiCfg, cfg: cfg}
}

// ValidateAll evaluates the corpus against every prompt document, bounded-
// concurrently, and aggregates the results. Individual evaluation failures
// degrade to conservative fallback evaluations; ValidateAll errs only on
// context cancellation.
func (v *Validator) ValidateAll(ctx context.Context, corpus string, docs []PromptDoc) (*model.ValidationSummary, error) {
	evals := make([]model.PromptEvaluation, len(docs))
	var mu sync.Mutex
	var usage model.TokenUsage

	g, gctx := errgroup.WithContext(ctx)
	concurrency := v.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			eval, u := v.evaluate(gctx, corpus, doc)
			mu.Lock()
			evals[i] = eval
			usage.Add(u)
			mu.Unlock()
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "validate: all prompts")
	}

	return v.summarize(evals, usage), nil
}

// evaluate runs one prompt evaluation. All failure paths return a usable
// evaluation with a non-zero conservative score.
func (v *Validator) evaluate(ctx context.Context, corpus string, doc PromptDoc) (model.PromptEvaluation, model.TokenUsage) {
	resp, err := v.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     v.aiCfg.Model,
		MaxTokens: v.aiCfg.MaxTokens,
		System:    validateSystemText,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(validatePrompt, doc.Name, doc.Content, corpus)},
		},
	})
	if err != nil {
		zap.L().Warn("validate: evaluation call failed",
			zap.String("prompt", doc.Name),
			zap.Error(err),
		)
		return v.fallbackEvaluation(doc.Name, ""), model.TokenUsage{}
	}

	usage := model.TokenUsage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
		Cost:         resp.Usage.EstimateCost(v.aiCfg.Model),
	}

	eval, ok := v.parseEvaluation(doc.Name, resp.Text())
	if !ok {
		zap.L().Warn("validate: unparseable evaluation, using fallback score",
			zap.String("prompt", doc.Name),
		)
		return v.fallbackEvaluation(doc.Name, resp.Text()), usage
	}
	return eval, usage
}

// parseEvaluation decodes the model's JSON verdict, tolerating markdown
// fences, and enforces the conservatism invariant: a field listed as both
// present and missing is kept as present only.
func (v *Validator) parseEvaluation(name, text string) (model.PromptEvaluation, bool) {
	var raw struct {
		CompletenessScore float64           `json:"completeness_score"`
		RequiredFields    []string          `json:"required_fields"`
		PresentFields     []string          `json:"present_fields"`
		MissingFields     []string          `json:"missing_fields"`
		PresentEvidence   map[string]string `json:"present_evidence"`
		MissingDetails    map[string]string `json:"missing_details"`
		Suggestions       []string          `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return model.PromptEvaluation{}, false
	}

	eval := model.PromptEvaluation{
		PromptName:        name,
		CompletenessScore: clampScore(raw.CompletenessScore),
		RequiredFields:    raw.RequiredFields,
		PresentFields:     raw.PresentFields,
		PresentEvidence:   raw.PresentEvidence,
		MissingDetails:    raw.MissingDetails,
		Suggestions:       raw.Suggestions,
	}

	present := make(map[string]bool, len(raw.PresentFields))
	for _, f := range raw.PresentFields {
		present[f] = true
	}
	for _, f := range raw.MissingFields {
		if present[f] {
			continue
		}
		eval.MissingFields = append(eval.MissingFields, f)
	}

	return eval, true
}

// fallbackEvaluation is the recovery path for unparseable or failed scoring
// calls: a conservative non-zero score (never 0, which would falsely signal
// that nothing is present), the raw text retained for manual inspection, and
// an explicit manual-review flag distinct from a genuine low score.
func (v *Validator) fallbackEvaluation(name, rawResponse string) model.PromptEvaluation {
	score := v.cfg.FallbackScore
	if m := scorePattern.FindStringSubmatch(rawResponse); m != nil {
		if parsed, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = clampScore(parsed)
		}
	}
	return model.PromptEvaluation{
		PromptName:        name,
		CompletenessScore: score,
		Suggestions:       []string{"Manual review recommended - response parsing failed"},
		ParseFailed:       true,
		RawResponse:       rawResponse,
	}
}

func (v *Validator) summarize(evals []model.PromptEvaluation, usage model.TokenUsage) *model.ValidationSummary {
	summary := &model.ValidationSummary{
		Evaluations: evals,
		Usage:       usage,
	}

	var total float64
	missingSet := make(map[string]bool)
	for _, e := range evals {
		total += e.CompletenessScore
		if e.CompletenessScore < v.cfg.ScoreThreshold {
			summary.PromptsWithIssues = append(summary.PromptsWithIssues, e.PromptName)
		}
		if e.ParseFailed {
			continue
		}
		for _, f := range e.MissingFields {
			missingSet[f] = true
		}
	}
	if len(evals) > 0 {
		summary.OverallScore = total / float64(len(evals))
	}

	for f := range missingSet {
		summary.AllMissingFields = append(summary.AllMissingFields, f)
	}
	sort.Strings(summary.AllMissingFields)

	return summary
}

// scorePattern salvages a completeness score from otherwise unparseable text.
var scorePattern = regexp.MustCompile(`"completeness_score"\s*:\s*(\d+(?:\.\d+)?)`)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// stripFences unwraps a markdown-fenced JSON block if present.
func stripFences(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

package model

// CompletenessReport is the derived missing-field report for a Record against
// a schema. It is recomputed on demand and never mutated in place.
type CompletenessReport struct {
	// Missing maps category name to the ordered field ids absent from the
	// record, preserving schema order. Categories with nothing missing are
	// omitted.
	Missing map[string][]string `json:"missing"`

	TotalFields    int `json:"total_fields"`
	ExtractedCount int `json:"extracted_count"`
	MissingCount   int `json:"missing_count"`
}

// Complete reports whether every schema field has a value.
func (c CompletenessReport) Complete() bool {
	return c.MissingCount == 0
}

// MissingIDs flattens the per-category missing lists into one slice, in the
// order the categories were declared.
func (c CompletenessReport) MissingIDs(categoryOrder []string) []string {
	var out []string
	for _, cat := range categoryOrder {
		out = append(out, c.Missing[cat]...)
	}
	return out
}

// PromptEvaluation is the semantic validator's verdict for one
// prompt-requirement document.
type PromptEvaluation struct {
	PromptName        string            `json:"prompt_name"`
	CompletenessScore float64           `json:"completeness_score"`
	RequiredFields    []string          `json:"required_fields,omitempty"`
	PresentFields     []string          `json:"present_fields"`
	MissingFields     []string          `json:"missing_fields"`
	PresentEvidence   map[string]string `json:"present_evidence,omitempty"`
	MissingDetails    map[string]string `json:"missing_details,omitempty"`
	Suggestions       []string          `json:"suggestions,omitempty"`

	// ParseFailed marks an evaluation whose LLM response could not be parsed
	// as JSON. The score is a conservative fallback and RawResponse holds the
	// unparsed text for manual review.
	ParseFailed bool   `json:"parse_failed,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// ValidationSummary aggregates prompt evaluations over a corpus.
type ValidationSummary struct {
	OverallScore      float64            `json:"overall_completeness_score"`
	Evaluations       []PromptEvaluation `json:"evaluations"`
	PromptsWithIssues []string           `json:"prompts_with_issues"`
	AllMissingFields  []string           `json:"all_missing_fields"`
	Usage             TokenUsage         `json:"usage"`
}

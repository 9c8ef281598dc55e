package model

import (
	"sort"
	"time"
)

// Provenance identifies the source that produced a field's current value.
type Provenance string

const (
	ProvenanceExtracted    Provenance = "extracted"
	ProvenanceDefault      Provenance = "default"
	ProvenanceAIGenerated  Provenance = "ai_generated"
	ProvenanceUserProvided Provenance = "user_provided"
)

// Valid reports whether p is one of the four known provenance values.
func (p Provenance) Valid() bool {
	switch p {
	case ProvenanceExtracted, ProvenanceDefault, ProvenanceAIGenerated, ProvenanceUserProvided:
		return true
	}
	return false
}

// FieldValue is a resolved value for a single schema field, tagged with the
// source that produced it.
type FieldValue struct {
	FieldID    string     `json:"field_id"`
	Value      string     `json:"value"`
	Provenance Provenance `json:"provenance"`
}

// Record is the evolving field map for one application session. Keys are
// schema field ids; a field absent from the map has no value yet. An empty
// string value is treated the same as absence.
type Record struct {
	Values map[string]FieldValue `json:"values"`
}

// NewRecord returns an empty Record.
func NewRecord() Record {
	return Record{Values: make(map[string]FieldValue)}
}

// Get returns the value for the given field id and whether it is present.
// Empty-string values count as absent.
func (r Record) Get(id string) (FieldValue, bool) {
	fv, ok := r.Values[id]
	if !ok || fv.Value == "" {
		return FieldValue{}, false
	}
	return fv, true
}

// Has reports whether the field has a non-empty value.
func (r Record) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Set stores a value. Callers are expected to have checked merge precedence;
// Set itself does not enforce it.
func (r Record) Set(fv FieldValue) {
	if r.Values == nil {
		return
	}
	r.Values[fv.FieldID] = fv
}

// Len returns the number of present (non-empty) values.
func (r Record) Len() int {
	n := 0
	for _, fv := range r.Values {
		if fv.Value != "" {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{Values: make(map[string]FieldValue, len(r.Values))}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}

// FieldIDs returns the present field ids in sorted order.
func (r Record) FieldIDs() []string {
	ids := make([]string, 0, len(r.Values))
	for id := range r.Values {
		if r.Values[id].Value != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Strings flattens the record into a plain field id → string map, the shape
// consumed by the document-template filler.
func (r Record) Strings() map[string]string {
	out := make(map[string]string, len(r.Values))
	for id, fv := range r.Values {
		if fv.Value != "" {
			out[id] = fv.Value
		}
	}
	return out
}

// CountByProvenance tallies present values per provenance.
func (r Record) CountByProvenance() map[Provenance]int {
	out := make(map[Provenance]int)
	for _, fv := range r.Values {
		if fv.Value != "" {
			out[fv.Provenance]++
		}
	}
	return out
}

// TokenUsage tracks token consumption across LLM calls in a session.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

// Add accumulates another usage into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Cost += other.Cost
}

// SessionStatus is the lifecycle state of an extraction session.
type SessionStatus string

const (
	SessionStatusExtracted SessionStatus = "extracted"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusFinalized SessionStatus = "finalized"
)

// Session is one business-idea extraction session. Each session owns its own
// Record; sessions never share state.
type Session struct {
	ID        string        `json:"id"`
	Idea      string        `json:"idea"`
	Status    SessionStatus `json:"status"`
	Record    Record        `json:"record"`
	Usage     TokenUsage    `json:"usage"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

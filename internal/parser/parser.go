// Package parser turns raw model completions into partial field records. The
// matching is deliberately tolerant: model output drifts in case, wraps
// values in template brackets, and occasionally leaks instruction text into
// the value, so normalization handles all of that before a value is accepted.
package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/schema"
)

// DefaultMinValueLen is the length floor below which a normalized value is
// treated as placeholder noise rather than a real answer. Values of exactly
// this length or shorter are rejected.
const DefaultMinValueLen = 2

// notFoundSentinel is the literal the extraction prompt instructs the model
// to emit for fields absent from the idea text.
const notFoundSentinel = "NOT_FOUND"

// instructionPrefixes are instruction-style phrases the model sometimes
// copies from the prompt template into the value. Checked in order,
// case-sensitive; only the first matching prefix is removed, once.
var instructionPrefixes = []string{
	"Extract ",
	"Choose ",
	"Determine ",
	"Generate ",
	"Extract and ",
	"Choose from ",
	"Determine: ",
	"Extract the ",
	"Choose the ",
	"Select ",
}

// Parser extracts field values from line-oriented "FIELD: value" text.
type Parser struct {
	minValueLen int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMinValueLen overrides the rejection length floor.
func WithMinValueLen(n int) Option {
	return func(p *Parser) { p.minValueLen = n }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{minValueLen: DefaultMinValueLen}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse scans the completion text for "FIELD: value" lines against the
// schema and returns a record of the accepted values, all tagged extracted.
// Malformed or rejected lines are skipped, never an error. The first accepted
// occurrence of a field wins; later duplicates are ignored.
func (p *Parser) Parse(text string, reg *schema.Registry) model.Record {
	rec := model.NewRecord()

	// Case-insensitive fallback index, built once per parse.
	lowered := make(map[string]string, reg.Len())
	for _, id := range reg.AllFields() {
		lowered[strings.ToLower(id)] = id
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Only the first colon separates name from value; the value itself may
		// contain colons ("Ratio: 2.5:1").
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}

		candidate := strings.TrimSpace(line[:colon])
		rawValue := strings.TrimSpace(line[colon+1:])

		fieldID, exact := candidate, reg.Has(candidate)
		if !exact {
			id, ok := lowered[strings.ToLower(candidate)]
			if !ok {
				continue
			}
			fieldID = id
			zap.L().Debug("parser: case-insensitive field match",
				zap.String("line_field", candidate),
				zap.String("field_id", fieldID),
			)
		}

		value, ok := p.normalize(rawValue)
		if !ok {
			zap.L().Debug("parser: rejected value",
				zap.String("field_id", fieldID),
				zap.String("raw", rawValue),
			)
			continue
		}

		if rec.Has(fieldID) {
			continue // first occurrence wins
		}
		rec.Set(model.FieldValue{
			FieldID:    fieldID,
			Value:      value,
			Provenance: model.ProvenanceExtracted,
		})
	}

	return rec
}

// normalize cleans a raw value and reports whether it survives rejection.
func (p *Parser) normalize(v string) (string, bool) {
	// A single full-value bracket wrap is a template placeholder artifact.
	// Brackets appearing as literal content inside the value stay untouched.
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}

	for _, prefix := range instructionPrefixes {
		if strings.HasPrefix(v, prefix) {
			v = strings.TrimSpace(v[len(prefix):])
			break
		}
	}

	v = strings.Trim(v, "\"'`")

	if v == "" || v == notFoundSentinel || len(v) <= p.minValueLen {
		return "", false
	}
	return v, true
}

// Package schema declares the field registry for the grant application data
// model: every recognized field id, grouped into ordered categories. The
// registry is immutable after construction and is the single source of truth
// for what a complete record looks like.
package schema

import (
	"github.com/rotisserie/eris"
)

// Category is an ordered group of field ids.
type Category struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

// Registry is an indexed, immutable field schema.
type Registry struct {
	categories []Category
	byID       map[string]string // field id → category name
	all        []string
}

// New builds a Registry from ordered categories. A field id appearing in two
// categories is a configuration error and fails construction.
func New(categories []Category) (*Registry, error) {
	r := &Registry{
		categories: categories,
		byID:       make(map[string]string),
	}
	for _, cat := range categories {
		for _, id := range cat.Fields {
			if id == "" {
				return nil, eris.Errorf("schema: empty field id in category %q", cat.Name)
			}
			if prev, ok := r.byID[id]; ok {
				return nil, eris.Errorf("schema: duplicate field id %q in categories %q and %q", id, prev, cat.Name)
			}
			r.byID[id] = cat.Name
			r.all = append(r.all, id)
		}
	}
	return r, nil
}

// Categories returns the ordered category names.
func (r *Registry) Categories() []string {
	out := make([]string, len(r.categories))
	for i, c := range r.categories {
		out[i] = c.Name
	}
	return out
}

// FieldsIn returns the ordered field ids of a category, or nil for an unknown
// category.
func (r *Registry) FieldsIn(category string) []string {
	for _, c := range r.categories {
		if c.Name == category {
			out := make([]string, len(c.Fields))
			copy(out, c.Fields)
			return out
		}
	}
	return nil
}

// AllFields returns every field id in schema order.
func (r *Registry) AllFields() []string {
	out := make([]string, len(r.all))
	copy(out, r.all)
	return out
}

// Has reports whether the field id is part of the schema.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// CategoryOf returns the category a field id belongs to, or "" if unknown.
func (r *Registry) CategoryOf(id string) string {
	return r.byID[id]
}

// Len returns the total field count.
func (r *Registry) Len() int {
	return len(r.all)
}

// Description returns a human-readable description for a field id, used when
// prompting the operator for manual input and when asking the model to
// generate a single field. Falls back to a generic phrase for fields without
// a curated description.
func (r *Registry) Description(id string) string {
	if d, ok := fieldDescriptions[id]; ok {
		return d
	}
	return "Information related to " + id
}

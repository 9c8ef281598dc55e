package parser

import (
	"strings"

	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/schema"
)

// Encode writes a record as "FIELD: value" lines in schema order, one field
// per line. The format is the same grammar Parse consumes, so an encoded
// record round-trips through the parser. Multi-line values are flattened to a
// single line since the grammar is line-oriented.
func Encode(rec model.Record, reg *schema.Registry) string {
	var b strings.Builder
	for _, id := range reg.AllFields() {
		fv, ok := rec.Get(id)
		if !ok {
			continue
		}
		b.WriteString(id)
		b.WriteString(": ")
		b.WriteString(flattenValue(fv.Value))
		b.WriteString("\n")
	}
	return b.String()
}

func flattenValue(v string) string {
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.Join(strings.Fields(v), " ")
}

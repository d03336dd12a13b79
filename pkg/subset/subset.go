// Package subset extracts a named subset of fields from a form description.
// Presentation entries can be redirected through an alias table so one field
// borrows the rendering hints configured for another key.
package subset

import (
	"strings"

	"github.com/goliatone/go-formlayers/pkg/layers"
)

// Aliases maps a field name to the presentation key it should take hints
// from.
type Aliases map[string]string

// AliasesFrom reads an alias table from a decoded document. Anything other
// than an object of strings (an empty list, nil, a scalar) yields no aliases.
func AliasesFrom(raw any) Aliases {
	var out Aliases
	switch typed := raw.(type) {
	case Aliases:
		return typed
	case map[string]string:
		out = make(Aliases, len(typed))
		for field, alias := range typed {
			out.add(field, alias)
		}
	case map[string]any:
		out = make(Aliases, len(typed))
		for field, value := range typed {
			if alias, ok := value.(string); ok {
				out.add(field, alias)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (a Aliases) add(field, alias string) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return
	}
	a[field] = alias
}

// ExtractPresentation returns the presentation entries for fields. A field
// with an alias takes the aliased entry; fields with no entry at all are
// skipped. Returned entries are copies.
func ExtractPresentation(fields []string, p layers.Presentation, aliases Aliases) layers.Presentation {
	out := make(layers.Presentation, len(fields))
	for _, field := range fields {
		key := field
		if alias, ok := aliases[field]; ok {
			key = alias
		}
		entry, ok := p[key]
		if !ok {
			continue
		}
		out[field] = entry
	}
	return out.Clone()
}

// ExtractSchema keeps only the listed fields of s, in the schema's own
// declaration order, with their required-ness. Unknown names are ignored.
func ExtractSchema(fields []string, s layers.Schema) layers.Schema {
	wanted := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		wanted[field] = struct{}{}
	}

	out := layers.NewSchema()
	out.Keywords = s.Clone().Keywords
	if s.Properties == nil {
		return out
	}
	for _, kv := range s.Properties.Order {
		if _, ok := wanted[kv.Key]; !ok {
			continue
		}
		out.Add(kv.Key, kv.Value, s.IsRequired(kv.Key))
	}
	return out
}

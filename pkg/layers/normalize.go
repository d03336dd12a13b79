package layers

import "cogentcore.org/core/base/ordmap"

// NormalizeSchema returns an independent copy of s with an empty, non-nil
// required list when none was declared.
func NormalizeSchema(s Schema) Schema {
	out := s.Clone()
	if out.Required == nil {
		out.Required = []string{}
	}
	if out.Properties == nil {
		out.Properties = ordmap.New[string, any]()
	}
	return out
}

// NormalizePresentation returns an independent copy of p where every routing
// hint is a list of tab ids. Hints that carry no id are removed so an empty
// list is never observed downstream.
func NormalizePresentation(p Presentation) Presentation {
	out := clone(p)
	if out == nil {
		return Presentation{}
	}
	for _, raw := range out {
		hints, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		value, present := hints[TabKey]
		if !present {
			continue
		}
		tag, ok := tagSequence(value)
		if !ok {
			delete(hints, TabKey)
			continue
		}
		hints[TabKey] = tag
	}
	return out
}

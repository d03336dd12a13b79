package layers

import "cogentcore.org/core/base/ordmap"

// ExtractForLayer returns a schema holding only the fields routed to layer.
// Fields keep the input property order and their required-ness; required
// follows property order rather than the input's required order. Field
// definitions are shared with s, keywords are copied.
func ExtractForLayer(layer string, s Schema, p Presentation) Schema {
	out := Schema{
		Properties: ordmap.New[string, any](),
		Required:   []string{},
		Keywords:   clone(s.Keywords),
	}
	if s.Properties == nil {
		return out
	}
	for _, kv := range s.Properties.Order {
		if LayerOf(kv.Key, p) != layer {
			continue
		}
		if s.IsRequired(kv.Key) {
			out.Required = append(out.Required, kv.Key)
		}
		out.Properties.Add(kv.Key, kv.Value)
	}
	return out
}

package layers

// LayerOf returns the outermost tab id routing field, or DefaultLayer when
// the field is untagged.
func LayerOf(field string, p Presentation) string {
	tag := p.RoutingTag(field)
	if len(tag) == 0 {
		return DefaultLayer
	}
	return tag[0]
}

// DistinctLayers lists the layers used by the schema's fields in first-seen
// property order. The order becomes tab display order.
func DistinctLayers(s Schema, p Presentation) []string {
	names := s.Names()
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		layer := LayerOf(name, p)
		if _, exists := seen[layer]; exists {
			continue
		}
		seen[layer] = struct{}{}
		out = append(out, layer)
	}
	return out
}

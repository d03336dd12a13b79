package layers

// StripOneLevel returns a copy of p with the outermost tab id consumed from
// every routing hint. A hint is removed once its last id is consumed; other
// hints of the field are kept.
func StripOneLevel(p Presentation) Presentation {
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
		tag, _ := tagSequence(value)
		if len(tag) > 1 {
			hints[TabKey] = tag[1:]
			continue
		}
		delete(hints, TabKey)
	}
	return out
}

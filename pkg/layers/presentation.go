package layers

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

const (
	// TabKey is the presentation hint that routes a field to a tab. Its value
	// is a tab id or a list of tab ids, outermost first.
	TabKey = "ui:tabID"

	// DefaultLayer identifies fields with no remaining routing tag. Callers
	// must not use it as a real tab id.
	DefaultLayer = "default"
)

// Presentation maps field names to presentation definitions (bags of
// rendering hints). Entries that are not objects are carried through as-is.
type Presentation map[string]any

// Hints returns the presentation definition for field when it is an object.
func (p Presentation) Hints(field string) (map[string]any, bool) {
	if p == nil {
		return nil, false
	}
	hints, ok := p[field].(map[string]any)
	return hints, ok
}

// RoutingTag returns the tab path attached to field, outermost first. Bare ids
// are reported as a one element path.
func (p Presentation) RoutingTag(field string) []string {
	hints, ok := p.Hints(field)
	if !ok {
		return nil
	}
	tag, _ := tagSequence(hints[TabKey])
	return tag
}

// Clone returns a deep, independent copy of the presentation.
func (p Presentation) Clone() Presentation {
	return clone(p)
}

// tagSequence converts a routing hint into a list of tab ids. The boolean is
// false when the hint is absent, an empty string or an empty list. Any other
// string, blank or not, is a tab id.
func tagSequence(value any) ([]string, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case []string:
		if len(typed) == 0 {
			return nil, false
		}
		return append([]string(nil), typed...), true
	case []any:
		if len(typed) == 0 {
			return nil, false
		}
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, tagString(item))
		}
		return out, true
	case string:
		if typed == "" {
			return nil, false
		}
		return []string{typed}, true
	default:
		return []string{tagString(typed)}, true
	}
}

func tagString(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

// clone is the deep-copy collaborator shared by the normalizer and stripper.
func clone[T any](value T) T {
	copied, ok := deepcopy.Copy(value).(T)
	if !ok {
		return value
	}
	return copied
}

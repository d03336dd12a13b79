package formdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formlayers/pkg/layers"
)

// Violation is one problem found by Lint.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint reports problems that Split would silently tolerate: routing hints
// that carry no tab id, a blank id or the reserved default id, hints for
// undeclared fields, required names without a property, and tab data that is
// duplicated or never referenced.
func Lint(b Bundle) []Violation {
	var result []Violation
	add := func(location, format string, args ...any) {
		result = append(result, Violation{Location: location, Message: fmt.Sprintf(format, args...)})
	}

	for _, name := range b.Schema.Required {
		if _, ok := b.Schema.Definition(name); !ok {
			add("schema > required", "required field %q is not declared in properties", name)
		}
	}

	used := make(map[string]struct{})
	for _, field := range sortedKeys(b.Presentation) {
		hints, ok := b.Presentation[field].(map[string]any)
		if !ok {
			continue
		}
		value, present := hints[layers.TabKey]
		if !present {
			continue
		}
		location := "uiSchema > " + field + " > " + layers.TabKey
		if _, declared := b.Schema.Definition(field); !declared {
			add(location, "routing hint for undeclared field %q", field)
		}
		ids, ok := tagIDs(value)
		if !ok {
			add(location, "must be a tab id or a list of tab ids, found %T", value)
			continue
		}
		if len(ids) == 0 {
			add(location, "carries no tab id; the field stays in the default layer")
			continue
		}
		for i, id := range ids {
			switch {
			case strings.TrimSpace(id) == "":
				add(location, "tab id at position %d is blank", i)
			case id == layers.DefaultLayer:
				add(location, "tab id %q at position %d is reserved; the field stays in that level's default layer", id, i)
			}
			used[id] = struct{}{}
		}
	}

	seen := make(map[string]int, len(b.Tabs))
	for i, tab := range b.Tabs {
		location := fmt.Sprintf("tabData > %d", i)
		if prev, dup := seen[tab.ID]; dup {
			add(location, "duplicate tab id %q (first declared at %d)", tab.ID, prev)
			continue
		}
		seen[tab.ID] = i
		if tab.ID == layers.DefaultLayer {
			add(location, "tab id %q is reserved for untagged fields", tab.ID)
			continue
		}
		if _, ok := used[tab.ID]; !ok {
			add(location, "tab %q is not referenced by any field", tab.ID)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Location < result[j].Location
	})
	return result
}

func tagIDs(value any) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		if v == "" {
			return nil, true
		}
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, false
			}
			ids = append(ids, id)
		}
		return ids, true
	default:
		return nil, false
	}
}

func sortedKeys(p layers.Presentation) []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

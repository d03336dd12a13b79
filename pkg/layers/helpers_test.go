package layers

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tagged(ids ...string) map[string]any {
	tag := make([]any, 0, len(ids))
	for _, id := range ids {
		tag = append(tag, id)
	}
	return map[string]any{TabKey: tag}
}

func field(name string, required bool) Field {
	return Field{Name: name, Definition: map[string]any{"type": "string"}, Required: required}
}

func assertNames(t *testing.T, label string, got Schema, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	names := got.Names()
	if names == nil {
		names = []string{}
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("%s: property names mismatch (-want +got):\n%s", label, diff)
	}
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

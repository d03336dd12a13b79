package layers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizePresentation_WrapsBareTag(t *testing.T) {
	input := Presentation{
		"a":       map[string]any{TabKey: "x", "classNames": "col-md-5"},
		"b":       map[string]any{TabKey: []any{"x", "y"}},
		"c":       map[string]any{"classNames": "wide"},
		"d":       map[string]any{TabKey: ""},
		"ui:order": []any{"a", "b"},
	}

	got := NormalizePresentation(input)

	want := Presentation{
		"a":       map[string]any{TabKey: []string{"x"}, "classNames": "col-md-5"},
		"b":       map[string]any{TabKey: []string{"x", "y"}},
		"c":       map[string]any{"classNames": "wide"},
		"d":       map[string]any{},
		"ui:order": []any{"a", "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized presentation mismatch (-want +got):\n%s", diff)
	}

	if _, ok := input["a"].(map[string]any)[TabKey].(string); !ok {
		t.Fatalf("input presentation was modified")
	}
}

func TestNormalizePresentation_Nil(t *testing.T) {
	got := NormalizePresentation(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty presentation, got %#v", got)
	}
}

func TestNormalizeSchema_Copies(t *testing.T) {
	s := SchemaOf(field("a", false))
	s.Required = nil

	got := NormalizeSchema(s)
	got.Add("b", nil, true)

	if s.Len() != 1 {
		t.Fatalf("normalized schema shares properties with input")
	}
	if s.Required != nil {
		t.Fatalf("input required list was modified: %#v", s.Required)
	}
}

func TestNormalizePresentation_WhitespaceTagIsATab(t *testing.T) {
	got := NormalizePresentation(Presentation{"a": map[string]any{TabKey: " "}})

	want := Presentation{"a": map[string]any{TabKey: []string{" "}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized presentation mismatch (-want +got):\n%s", diff)
	}

	root := Split(SchemaOf(field("a", false), field("b", false)), Presentation{"a": map[string]any{TabKey: " "}}, nil)
	child, ok := root.Child(" ")
	if !ok {
		t.Fatalf("expected a child for the whitespace tab, tabs %+v", root.Tabs())
	}
	assertNames(t, "whitespace tab", child.Schema(), "a")
	assertNames(t, "root", root.Schema(), "b")
}

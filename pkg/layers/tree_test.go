package layers

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestSplit_UntaggedSchema(t *testing.T) {
	s := SchemaOf(field("firstName", true), field("lastName", false))

	root := Split(s, nil, nil)

	if got := root.Tabs(); len(got) != 0 {
		t.Fatalf("expected no tabs, got %+v", got)
	}
	if len(root.Children()) != 0 {
		t.Fatalf("expected no children")
	}
	assertNames(t, "root", root.Schema(), "firstName", "lastName")
	if diff := cmp.Diff([]string{"firstName"}, root.Schema().Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if root.Active() != DefaultLayer {
		t.Fatalf("expected default selection, got %q", root.Active())
	}
	if root.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", root.Depth())
	}
}

func TestSplit_SingleTab(t *testing.T) {
	s := SchemaOf(field("a", false), field("b", false))
	p := Presentation{"b": tagged("x")}

	root := Split(s, p, nil)

	if diff := cmp.Diff([]Tab{{ID: "x", Name: "x"}}, root.Tabs()); diff != "" {
		t.Fatalf("tabs mismatch (-want +got):\n%s", diff)
	}
	assertNames(t, "root", root.Schema(), "a")
	child, ok := root.Child("x")
	if !ok {
		t.Fatalf("expected child x")
	}
	assertNames(t, "x", child.Schema(), "b")
	if root.Active() != "x" {
		t.Fatalf("expected first tab selected, got %q", root.Active())
	}
	if _, present := child.Presentation()["b"].(map[string]any)[TabKey]; present {
		t.Fatalf("child presentation still carries the consumed routing hint")
	}
}

func TestSplit_NestedTabs(t *testing.T) {
	s := SchemaOf(field("double", false), field("single", false))
	p := Presentation{
		"double": tagged("x", "y"),
		"single": tagged("x"),
	}

	root := Split(s, p, nil)

	if diff := cmp.Diff([]Tab{{ID: "x", Name: "x"}}, root.Tabs()); diff != "" {
		t.Fatalf("root tabs mismatch (-want +got):\n%s", diff)
	}
	assertNames(t, "root", root.Schema())

	x, ok := root.Child("x")
	if !ok {
		t.Fatalf("expected child x")
	}
	assertNames(t, "x", x.Schema(), "single")
	if diff := cmp.Diff([]Tab{{ID: "y", Name: "y"}}, x.Tabs()); diff != "" {
		t.Fatalf("x tabs mismatch (-want +got):\n%s", diff)
	}

	y, ok := x.Child("y")
	if !ok {
		t.Fatalf("expected child y under x")
	}
	assertNames(t, "y", y.Schema(), "double")
	if root.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", root.Depth())
	}
}

func TestSplit_EmptySchema(t *testing.T) {
	root := Split(Schema{}, Presentation{"ghost": tagged("x")}, nil)

	if len(root.Tabs()) != 0 || len(root.Children()) != 0 {
		t.Fatalf("expected a bare node, got tabs %+v", root.Tabs())
	}
	if root.Schema().Len() != 0 || root.Schema().Required == nil {
		t.Fatalf("expected an empty default schema, got %+v", root.Schema())
	}
}

func TestSplit_UsesTabData(t *testing.T) {
	s := SchemaOf(field("a", false), field("b", false), field("c", false))
	p := Presentation{
		"a": tagged("contact"),
		"b": tagged("billing"),
		"c": tagged("contact"),
	}
	tabData := []Tab{
		{ID: "unused", Name: "Never shown"},
		{ID: "contact", Name: "Contact details", Extra: map[string]any{"icon": "phone"}},
	}

	root := Split(s, p, tabData)

	want := []Tab{
		{ID: "contact", Name: "Contact details", Extra: map[string]any{"icon": "phone"}},
		{ID: "billing", Name: "billing"},
	}
	if diff := cmp.Diff(want, root.Tabs()); diff != "" {
		t.Fatalf("tabs mismatch (-want +got):\n%s", diff)
	}
	child, _ := root.Child("contact")
	assertNames(t, "contact", child.Schema(), "a", "c")
}

func TestSplit_DefaultTagIsUntagged(t *testing.T) {
	s := SchemaOf(field("a", false), field("b", false))
	p := Presentation{"a": tagged(DefaultLayer), "b": map[string]any{TabKey: DefaultLayer}}

	root := Split(s, p, nil)

	assertNames(t, "root", root.Schema(), "a", "b")
	if len(root.Tabs()) != 0 {
		t.Fatalf("default layer must not produce a tab: %+v", root.Tabs())
	}
}

func TestSplit_DoesNotModifyInputs(t *testing.T) {
	s := SchemaOf(field("a", true), field("b", false))
	s.Required = nil
	p := Presentation{
		"a": map[string]any{TabKey: "x"},
		"b": tagged("x", "y"),
	}
	before := p.Clone()

	Split(s, p, nil)

	if diff := cmp.Diff(before, p); diff != "" {
		t.Fatalf("presentation modified (-before +after):\n%s", diff)
	}
	if s.Required != nil {
		t.Fatalf("schema required modified: %#v", s.Required)
	}
}

func TestSplit_Lossless(t *testing.T) {
	s, p := wideFixture()

	root := Split(s, p, nil)

	fields := root.Fields()
	if diff := cmp.Diff(sorted(s.Names()), sorted(fields)); diff != "" {
		t.Fatalf("fields lost or duplicated (-want +got):\n%s", diff)
	}
}

func TestSplit_RequiredPreserved(t *testing.T) {
	s, p := wideFixture()

	root := Split(s, p, nil)

	var required []string
	root.Walk(func(_ []string, node *Node) bool {
		required = append(required, node.Schema().Required...)
		return true
	})
	if diff := cmp.Diff(sorted(s.Required), sorted(required)); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_FieldDepthMatchesTagLength(t *testing.T) {
	s, p := wideFixture()
	normalized := NormalizePresentation(p)

	root := Split(s, p, nil)

	root.Walk(func(path []string, node *Node) bool {
		for _, name := range node.Schema().Names() {
			tag := normalized.RoutingTag(name)
			if len(tag) != len(path) {
				t.Fatalf("field %q with tag %v found at depth %d (%v)", name, tag, len(path), path)
			}
			if diff := cmp.Diff(tag, path, cmpEmptyEqual); diff != "" {
				t.Fatalf("field %q reached through the wrong tabs (-tag +path):\n%s", name, diff)
			}
		}
		return true
	})

	if got, want := root.Depth(), 4; got != want {
		t.Fatalf("depth = %d, want %d", got, want)
	}
}

func TestNodeMarshalJSON(t *testing.T) {
	root := Split(SchemaOf(field("a", false), field("b", true)), Presentation{"b": tagged("x")}, nil)

	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		ActiveTab string `json:"activeTab"`
		Tabs      []Tab  `json:"tabs"`
		Children  map[string]struct {
			Schema Schema `json:"schema"`
		} `json:"children"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, raw)
	}
	if decoded.ActiveTab != "x" || len(decoded.Tabs) != 1 {
		t.Fatalf("unexpected encoding: %s", raw)
	}
	assertNames(t, "encoded child", decoded.Children["x"].Schema, "b")
}

var cmpEmptyEqual = cmp.Comparer(func(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
})

// wideFixture mixes untagged fields, shared tabs and nesting up to three
// levels deep.
func wideFixture() (Schema, Presentation) {
	s := SchemaOf(
		field("name", true),
		field("email", true),
		field("phone", false),
		field("street", true),
		field("city", false),
		field("zip", false),
		field("notes", false),
		field("iban", true),
		field("vat", false),
	)
	p := Presentation{
		"email":  tagged("contact"),
		"phone":  map[string]any{TabKey: "contact", "widget": "tel"},
		"street": tagged("contact", "address"),
		"city":   tagged("contact", "address"),
		"zip":    tagged("contact", "address", "postal"),
		"iban":   tagged("billing", "bank"),
		"vat":    tagged("billing"),
		"notes":  map[string]any{"widget": "textarea"},
	}
	return s, p
}

func TestNodeMarshal_ChildrenInTabOrder(t *testing.T) {
	s := SchemaOf(field("phone", false), field("street", false))
	p := Presentation{"phone": tagged("contact"), "street": tagged("address")}
	root := Split(s, p, nil)

	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	var top struct {
		Children json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(top.Children))
	var jsonKeys []string
	if _, err := dec.Token(); err != nil {
		t.Fatalf("children token: %v", err)
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			t.Fatalf("key token: %v", err)
		}
		jsonKeys = append(jsonKeys, key.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			t.Fatalf("child value: %v", err)
		}
	}
	if diff := cmp.Diff([]string{"contact", "address"}, jsonKeys); diff != "" {
		t.Fatalf("json children order mismatch (-want +got):\n%s", diff)
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	var yamlKeys []string
	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != "children" {
			continue
		}
		children := mapping.Content[i+1]
		for j := 0; j+1 < len(children.Content); j += 2 {
			yamlKeys = append(yamlKeys, children.Content[j].Value)
		}
	}
	if diff := cmp.Diff([]string{"contact", "address"}, yamlKeys); diff != "" {
		t.Fatalf("yaml children order mismatch (-want +got):\n%s", diff)
	}
}

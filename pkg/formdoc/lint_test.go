package formdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLint(t *testing.T) {
	bundle, err := Parse([]byte(`
schema:
  required: [name, ghost]
  properties:
    name: {}
    email: {}
    phone: {}
    fax: {}
    blank: {}
    back: {}
uiSchema:
  email:
    ui:tabID: contact
  phone:
    ui:tabID: []
  fax:
    ui:tabID:
      nested: true
  pager:
    ui:tabID: contact
  blank:
    ui:tabID: " "
  back:
    ui:tabID: [contact, default]
tabData:
  - {id: contact, name: Contact}
  - {id: billing, name: Billing}
  - {id: contact, name: Again}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var got []string
	for _, v := range Lint(bundle) {
		got = append(got, v.String())
	}
	want := []string{
		"schema > required -> required field \"ghost\" is not declared in properties",
		"tabData > 1 -> tab \"billing\" is not referenced by any field",
		"tabData > 2 -> duplicate tab id \"contact\" (first declared at 0)",
		"uiSchema > back > ui:tabID -> tab id \"default\" at position 1 is reserved; the field stays in that level's default layer",
		"uiSchema > blank > ui:tabID -> tab id at position 0 is blank",
		"uiSchema > fax > ui:tabID -> must be a tab id or a list of tab ids, found map[string]interface {}",
		"uiSchema > pager > ui:tabID -> routing hint for undeclared field \"pager\"",
		"uiSchema > phone > ui:tabID -> carries no tab id; the field stays in the default layer",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_Clean(t *testing.T) {
	bundle, err := Parse([]byte(profileJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := Lint(bundle); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

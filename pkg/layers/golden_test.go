package layers_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formlayers/pkg/testsupport"
)

func TestSplit_Golden(t *testing.T) {
	bundle := testsupport.LoadBundle(t, filepath.Join("testdata", "signup.json"))
	root := bundle.Split()
	testsupport.AssertJSONGolden(t, filepath.Join("testdata", "signup.tree.golden.json"), root)

	forms, err := root.Materialize([]string{"contact", "address"})
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if len(forms) != 3 {
		t.Fatalf("expected 3 sub-forms, got %d", len(forms))
	}
	if got := forms[2].Schema.Names(); len(got) != 1 || got[0] != "city" {
		t.Fatalf("unexpected leaf fields %v", got)
	}
}

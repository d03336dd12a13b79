package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry(t *testing.T) {
	registry, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if diff := cmp.Diff([]string{HTMLName, TextName}, registry.List()); diff != "" {
		t.Fatalf("renderer names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has(TextName) {
		t.Fatalf("expected text renderer registered")
	}
	if _, err := registry.Get("pdf"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	html, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := registry.Register(html); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
}

package visibility

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayers/pkg/layers"
)

func TestFilter(t *testing.T) {
	tabs := []layers.Tab{
		{ID: "contact", Name: "Contact"},
		{ID: "billing", Name: "Billing", Extra: map[string]any{RuleKey: "paid"}},
		{ID: "admin", Name: "Admin", Extra: map[string]any{RuleKey: "  "}},
	}

	var seen []string
	eval := EvaluatorFunc(func(tabPath []string, rule string, ctx Context) (bool, error) {
		seen = append(seen, strings.Join(tabPath, "/")+"="+rule)
		return ctx.Values["paid"] == true, nil
	})

	got, err := Filter(eval, []string{"account"}, tabs, Context{Values: map[string]any{"paid": false}})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	var ids []string
	for _, tab := range got {
		ids = append(ids, tab.ID)
	}
	if diff := cmp.Diff([]string{"contact", "admin"}, ids); diff != "" {
		t.Fatalf("visible tabs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"account/billing=paid"}, seen); diff != "" {
		t.Fatalf("evaluated rules mismatch (-want +got):\n%s", diff)
	}
}

func TestVisible_NilEvaluator(t *testing.T) {
	tab := layers.Tab{ID: "x", Extra: map[string]any{RuleKey: "false"}}
	visible, err := Visible(nil, nil, tab, Context{})
	if err != nil || !visible {
		t.Fatalf("expected visible without evaluator, got %v, %v", visible, err)
	}
}

func TestVisible_WrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	eval := EvaluatorFunc(func([]string, string, Context) (bool, error) {
		return false, boom
	})
	tab := layers.Tab{ID: "x", Extra: map[string]any{RuleKey: "rule"}}
	if _, err := Visible(eval, []string{"a"}, tab, Context{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

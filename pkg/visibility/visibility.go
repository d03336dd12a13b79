// Package visibility decides whether a tab is offered to the user. Tabs carry
// an optional rule in their metadata under RuleKey; an Evaluator interprets it
// against the current form values.
package visibility

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayers/pkg/layers"
)

// RuleKey is the tab metadata entry holding a visibility rule.
const RuleKey = "visibleWhen"

// Evaluator determines whether a tab should be shown. tabPath is the chain of
// tab ids from the root to the tab being checked.
type Evaluator interface {
	Eval(tabPath []string, rule string, ctx Context) (bool, error)
}

// Context carries the inputs a rule may reference. Values usually holds the
// form data entered so far; Extras lets callers inject roles or feature flags.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(tabPath []string, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(tabPath []string, rule string, ctx Context) (bool, error) {
	return fn(tabPath, rule, ctx)
}

// Rule returns the trimmed visibility rule of tab, if any.
func Rule(tab layers.Tab) (string, bool) {
	raw, ok := tab.Extra[RuleKey].(string)
	if !ok {
		return "", false
	}
	rule := strings.TrimSpace(raw)
	return rule, rule != ""
}

// Visible reports whether tab passes its rule. Tabs without a rule, or
// checked with a nil evaluator, are visible.
func Visible(eval Evaluator, parent []string, tab layers.Tab, ctx Context) (bool, error) {
	rule, ok := Rule(tab)
	if !ok || eval == nil {
		return true, nil
	}
	path := append(append([]string(nil), parent...), tab.ID)
	visible, err := eval.Eval(path, rule, ctx)
	if err != nil {
		return false, fmt.Errorf("visibility: tab %q: %w", strings.Join(path, "/"), err)
	}
	return visible, nil
}

// Filter returns the tabs that pass their rules, keeping their order.
func Filter(eval Evaluator, parent []string, tabs []layers.Tab, ctx Context) ([]layers.Tab, error) {
	out := make([]layers.Tab, 0, len(tabs))
	for _, tab := range tabs {
		visible, err := Visible(eval, parent, tab, ctx)
		if err != nil {
			return nil, err
		}
		if visible {
			out = append(out, tab)
		}
	}
	return out, nil
}

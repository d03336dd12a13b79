// Package expr implements visibility rules on top of github.com/expr-lang/expr.
//
// Rules see the form values as top-level variables, caller extras under
// "extras" and the checked tab path under "tab":
//
//	country == "DE" && extras.role in ["admin", "billing"]
package expr

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formlayers/pkg/visibility"
)

// Evaluator compiles rules once and caches the programs. It is safe for
// concurrent use.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*exprvm.Program
}

var _ visibility.Evaluator = (*Evaluator)(nil)

// New constructs an Evaluator.
func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*exprvm.Program)}
}

// Eval runs rule against ctx. Blank rules are visible. Undefined variables
// evaluate to nil, so a rule naming a field not yet filled in is false.
func (e *Evaluator) Eval(tabPath []string, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}
	program, err := e.compile(trimmed)
	if err != nil {
		return false, err
	}
	result, err := exprlang.Run(program, environment(tabPath, ctx))
	if err != nil {
		return false, fmt.Errorf("expr: evaluate %q: %w", trimmed, err)
	}
	visible, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expr: rule %q returned %T, want bool", trimmed, result)
	}
	return visible, nil
}

func (e *Evaluator) compile(rule string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(rule,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("expr: compile %q: %w", rule, err)
	}

	e.mu.Lock()
	if e.programs == nil {
		e.programs = make(map[string]*exprvm.Program)
	}
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func environment(tabPath []string, ctx visibility.Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+2)
	for key, value := range ctx.Values {
		env[key] = value
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env["extras"] = extras
	env["tab"] = append([]string(nil), tabPath...)
	return env
}

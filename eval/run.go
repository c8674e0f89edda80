package eval

import (
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

// EvaluateNode resolves hostname against the Registry per spec.md
// §4.5's match order and, if found, evaluates its body against a fresh
// top scope with `$hostname` bound to the matched name.
func (e *Evaluator) EvaluateNode(hostname string) (value.Value, error) {
	def, matched, ok := e.Registry.FindNode(hostname)
	if !ok {
		return value.Value{}, diag.Evaluationf(diag.Position{}, "no matching node definition for %q", hostname)
	}
	top := scope.NewTop()
	if err := top.Set("hostname", value.Str(matched)); err != nil {
		return value.Value{}, diag.Wrap(diag.Evaluation, diagPos(def.Statement.Pos()), err, "binding $hostname")
	}
	var result value.Value
	for _, expr := range def.Statement.Body {
		v, err := e.Eval(top, expr)
		if err != nil {
			return value.Value{}, err
		}
		result = v
	}
	return result, nil
}

// EvaluateClass evaluates a registered class's body once, with its
// declared parameters bound from args (by name), against a scope chained
// to the given parent (nil for top scope).
func (e *Evaluator) EvaluateClass(name string, args map[string]value.Value, parent *scope.Scope) (value.Value, error) {
	class, ok := e.Registry.FindClass(name)
	if !ok {
		return value.Value{}, diag.Evaluationf(diag.Position{}, "class %q is not declared", name)
	}
	if parent == nil {
		parent = scope.NewTop()
	}
	sc := scope.New(parent)
	for _, p := range class.Statement.Params {
		v, ok := args[p.Name]
		if !ok {
			if p.DefaultValue != nil {
				var err error
				v, err = e.Eval(sc, p.DefaultValue)
				if err != nil {
					return value.Value{}, err
				}
			} else {
				v = value.Undef()
			}
		}
		if err := e.checkParamType(sc, p.Name, p.TypeExpr, v, class.Statement.Pos()); err != nil {
			return value.Value{}, err
		}
		if err := sc.Set(p.Name, v); err != nil {
			return value.Value{}, diag.Wrap(diag.Evaluation, diagPos(class.Statement.Pos()), err, "binding parameter $%s", p.Name)
		}
	}
	var result value.Value
	for _, expr := range class.Statement.Body {
		v, err := e.Eval(sc, expr)
		if err != nil {
			return value.Value{}, err
		}
		result = v
	}
	return result, nil
}

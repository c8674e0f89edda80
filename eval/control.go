package eval

import (
	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/functions"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

func (e *Evaluator) evalIf(sc *scope.Scope, i *ast.IfExpr) (value.Value, error) {
	cond, err := e.Eval(sc, i.Condition)
	if err != nil {
		return value.Value{}, err
	}
	take := truthy(cond)
	if i.Unless {
		take = !take
	}
	if take {
		return e.Eval(sc, i.Then)
	}
	if i.Else == nil {
		return value.Undef(), nil
	}
	return e.Eval(sc, i.Else)
}

func (e *Evaluator) evalCase(sc *scope.Scope, c *ast.CaseExpr) (value.Value, error) {
	subject, err := e.Eval(sc, c.Subject)
	if err != nil {
		return value.Value{}, err
	}
	clause, err := e.selectClause(sc, subject, c.Clauses)
	if err != nil {
		return value.Value{}, err
	}
	if clause == nil {
		return value.Undef(), nil
	}
	return e.Eval(sc, clause.Body)
}

func (e *Evaluator) evalSelector(sc *scope.Scope, s *ast.SelectorExpr) (value.Value, error) {
	subject, err := e.Eval(sc, s.Subject)
	if err != nil {
		return value.Value{}, err
	}
	clause, err := e.selectClause(sc, subject, s.Clauses)
	if err != nil {
		return value.Value{}, err
	}
	if clause == nil {
		return value.Undef(), diag.Evaluationf(diagPos(s.Pos()), "no matching selector option for value %s", subject)
	}
	return e.Eval(sc, clause.Body)
}

// selectClause implements the shared match logic behind `case` and
// selector expressions: each clause's Values are checked in order
// against subject, using operator `==` for plain values, is_instance for
// Type values, and Regexp matching for Regex values; the first clause
// with any matching Value wins, falling back to the `default` clause if
// present.
func (e *Evaluator) selectClause(sc *scope.Scope, subject value.Value, clauses []ast.CaseClause) (*ast.CaseClause, error) {
	var def *ast.CaseClause
	for i := range clauses {
		cl := &clauses[i]
		if cl.Default {
			def = cl
			continue
		}
		for _, valExpr := range cl.Values {
			candidate, err := e.Eval(sc, valExpr)
			if err != nil {
				return nil, err
			}
			match, err := caseMatches(subject, candidate)
			if err != nil {
				return nil, err
			}
			if match {
				return cl, nil
			}
		}
	}
	return def, nil
}

func caseMatches(subject, candidate value.Value) (bool, error) {
	switch candidate.Kind {
	case value.KindType:
		return candidate.Type().IsInstance(subject, value.NewGuard()), nil
	case value.KindRegex:
		if subject.Kind != value.KindString {
			return false, nil
		}
		return candidate.Regexp().MatchString(subject.Str()), nil
	default:
		return value.LooseEqual(subject, candidate), nil
	}
}

func (e *Evaluator) evalBlock(sc *scope.Scope, b *ast.Block, args []value.Value) (value.Value, error) {
	frame := sc.Push()
	for i, p := range b.Params {
		var v value.Value
		switch {
		case i < len(args):
			v = args[i]
		case p.DefaultValue != nil:
			var err error
			v, err = e.Eval(frame, p.DefaultValue)
			if err != nil {
				return value.Value{}, err
			}
		default:
			v = value.Undef()
		}
		if err := e.checkParamType(frame, p.Name, p.TypeExpr, v, b.Pos()); err != nil {
			return value.Value{}, err
		}
		if err := frame.Set(p.Name, v); err != nil {
			return value.Value{}, diag.Wrap(diag.Evaluation, diagPos(b.Pos()), err, "binding parameter $%s", p.Name)
		}
	}
	var result value.Value
	for _, expr := range b.Body {
		v, err := e.Eval(frame, expr)
		if err != nil {
			return value.Value{}, err
		}
		result = v
		if v.Kind == value.KindReturn || v.Kind == value.KindBreak || v.Kind == value.KindNext {
			return v, nil
		}
	}
	return result, nil
}

// callableBlock adapts an *ast.Block into a functions.Block closure,
// used when a FunctionCall carries a trailing lambda.
func (e *Evaluator) callableBlock(sc *scope.Scope, b *ast.Block) *functions.Block {
	if b == nil {
		return nil
	}
	arity := len(b.Params)
	return &functions.Block{
		Arity: arity,
		Call: func(args []value.Value) (value.Value, error) {
			result, err := e.evalBlock(sc, b, args)
			if err != nil {
				return value.Value{}, err
			}
			if rv, ok := result.ReturnValue(); ok && result.Kind == value.KindReturn {
				return rv, nil
			}
			if result.Kind == value.KindNext {
				if rv, ok := result.ReturnValue(); ok {
					return rv, nil
				}
				return value.Undef(), nil
			}
			return result, nil
		},
	}
}

func (e *Evaluator) evalFunctionCall(sc *scope.Scope, f *ast.FunctionCall) (value.Value, error) {
	args := make([]value.Value, len(f.Args))
	for i, a := range f.Args {
		v, err := e.Eval(sc, a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	ctx := functions.CallContext{
		Scope: sc,
		Block: e.callableBlock(sc, f.Block),
		Pos:   functions.Position{File: f.Pos().File, Line: f.Pos().Line, Column: f.Pos().Column},
	}
	return e.Functions.Call(f.Name, ctx, args)
}

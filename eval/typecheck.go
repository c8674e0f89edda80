package eval

import (
	"fmt"

	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

// checkParamType enforces a class/defined-type/block parameter's optional
// type constraint, per spec.md §3.2's Struct/parameter-binding contract.
// typeExpr is nil for an unconstrained parameter.
func (e *Evaluator) checkParamType(sc *scope.Scope, paramName string, typeExpr ast.Expression, v value.Value, fallbackPos ast.Position) error {
	if typeExpr == nil {
		return nil
	}
	pos := typeExpr.Pos()
	if pos == (ast.Position{}) {
		pos = fallbackPos
	}
	tv, err := e.Eval(sc, typeExpr)
	if err != nil {
		return err
	}
	if tv.Kind != value.KindType {
		return diag.Internalf(diagPos(pos), "parameter $%s's type expression did not evaluate to a Type", paramName)
	}
	t := tv.Type()
	if t.IsInstance(v, value.NewGuard()) {
		return nil
	}
	return typeMismatchError(paramName, t, v, pos)
}

// typeMismatchError builds an EvaluationError for a failed parameter type
// check, enriching the message with a rendered diff when the shapes
// involved make one legible: a Struct type against the offending Hash
// (via diag.StructMismatch, github.com/evanphx/json-patch) or a String-
// producing type against the offending String (via diag.StringMismatch,
// github.com/sergi/go-diff), matching spec.md §7's "pretty-printed source
// and target" requirement for assignability failures.
func typeMismatchError(paramName string, t *value.Type, v value.Value, pos ast.Position) error {
	msg := fmt.Sprintf("parameter $%s: expected %s, found %s", paramName, t, v.TypeName())
	switch {
	case t.Kind == value.TStruct && v.Kind == value.KindHash:
		if detail, err := diag.StructMismatch(structShape(t), hashToPlain(v)); err == nil {
			msg = fmt.Sprintf("%s\n%s", msg, detail)
		}
	case v.Kind == value.KindString:
		msg = fmt.Sprintf("%s\n%s", msg, diag.StringMismatch(t.String(), v.Str()))
	}
	return diag.Evaluationf(diagPos(pos), "%s", msg)
}

// structShape renders a Struct type's members as a plain map suitable for
// diag.StructMismatch's JSON-patch diffing; member keys are rendered by
// their key type's own String() rather than the resolved literal name,
// which is enough to make the diff legible without reaching into value's
// unexported struct-key-resolution helpers.
func structShape(t *value.Type) map[string]interface{} {
	out := make(map[string]interface{}, len(t.Members))
	for _, m := range t.Members {
		out[m.KeyType.String()] = m.ValueType.String()
	}
	return out
}

// hashToPlain converts a Hash Value into a plain map[string]interface{}
// for diag.StructMismatch, recursing into nested Array/Hash values.
func hashToPlain(v value.Value) map[string]interface{} {
	out := map[string]interface{}{}
	keys, vals := v.HashPairs()
	for i, k := range keys {
		out[k.Str()] = plainValue(vals[i])
	}
	return out
}

func plainValue(v value.Value) interface{} {
	switch v.Kind {
	case value.KindUndef:
		return nil
	case value.KindArray:
		arr := v.Array()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = plainValue(e)
		}
		return out
	case value.KindHash:
		return hashToPlain(v)
	default:
		return v.String()
	}
}

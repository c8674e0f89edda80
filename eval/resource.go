package eval

import (
	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/catalog"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

// evalResourceDeclaration evaluates a resource declaration's titles and
// parameters and sends one catalog.Sink.AddResource call per title, per
// spec.md §6's Catalog contract. It returns an Array of the declared
// Resource values (or a single Resource if there is exactly one title),
// mirroring how a resource declaration expression is itself usable as an
// operand of a relationship operator.
func (e *Evaluator) evalResourceDeclaration(sc *scope.Scope, r *ast.ResourceDeclaration) (value.Value, error) {
	if e.Sink == nil {
		return value.Value{}, diag.Internalf(diagPos(r.Pos()), "resource declaration evaluated with no catalog sink attached")
	}
	params := map[string]interface{}{}
	for _, p := range r.Params {
		v, err := e.Eval(sc, p.Value)
		if err != nil {
			return value.Value{}, err
		}
		params[p.Key] = v
	}

	var resources []value.Value
	for _, titleExpr := range r.Titles {
		titleVal, err := e.Eval(sc, titleExpr)
		if err != nil {
			return value.Value{}, err
		}
		if titleVal.Kind != value.KindString {
			return value.Value{}, diag.Evaluationf(diagPos(titleExpr.Pos()), "resource title must be a String, found %s", titleVal.TypeName())
		}
		title := titleVal.Str()
		ref := catalog.Ref{Type: r.TypeName, Title: title}
		pos := catalog.Position{File: r.Pos().File, Line: r.Pos().Line, Column: r.Pos().Column}
		if err := e.Sink.AddResource(ref, params, pos); err != nil {
			return value.Value{}, diag.Wrap(diag.Catalog, diagPos(titleExpr.Pos()), err, "failed to add resource %s[%s]", r.TypeName, title)
		}
		resources = append(resources, value.Resource(r.TypeName, title))
	}

	if len(resources) == 1 {
		return resources[0], nil
	}
	return value.Arr(resources...), nil
}

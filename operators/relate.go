package operators

import (
	"github.com/puppetlabs/langcore/catalog"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

// registerRelationship installs `-> ~> <- <~`. Per spec.md §4.3 these
// operators "do not produce arithmetic values; they install edges in the
// catalog between the resource values on either side (or arrays thereof,
// cross-producted)". The operator's own Value result is the right
// operand, matching Puppet's left-to-right chaining (`A -> B -> C`).
func registerRelationship(t *Table) {
	any := value.Any()
	t.Register(Before, any, any, relate(catalog.Before, false))
	t.Register(Notify, any, any, relate(catalog.Notify, false))
	t.Register(Require, any, any, relate(catalog.Require, true))
	t.Register(Subscribe, any, any, relate(catalog.Subscribe, true))
}

// relate builds a Handler installing kind edges between every (source,
// target) pair in the cross product of the left and right operands'
// resource references. reversed swaps source/target, since `<-`/`<~`
// point the opposite direction of `->`/`~>` while sharing the same edge
// kind semantics.
func relate(kind catalog.EdgeKind, reversed bool) Handler {
	return func(ctx Context, l, r value.Value) (value.Value, error) {
		if ctx.Sink == nil {
			return value.Value{}, diag.Internalf(diagPos(ctx.LeftPos), "relationship operator used with no catalog sink attached")
		}
		lefts, err := resourceRefs(ctx.LeftPos, l)
		if err != nil {
			return value.Value{}, err
		}
		rights, err := resourceRefs(ctx.RightPos, r)
		if err != nil {
			return value.Value{}, err
		}
		for _, lr := range lefts {
			for _, rr := range rights {
				edge := catalog.Edge{Source: lr, Target: rr, Kind: kind}
				if reversed {
					edge.Source, edge.Target = rr, lr
				}
				if err := ctx.Sink.AddEdge(edge); err != nil {
					return value.Value{}, diag.Wrap(diag.Catalog, diagPos(ctx.LeftPos), err, "failed to add %s edge %s -> %s", kind, edge.Source, edge.Target)
				}
			}
		}
		return r, nil
	}
}

func resourceRefs(pos Position, v value.Value) ([]catalog.Ref, error) {
	switch v.Kind {
	case value.KindResource:
		return []catalog.Ref{{Type: v.ResourceType(), Title: v.ResourceTitle()}}, nil
	case value.KindArray:
		var out []catalog.Ref
		for _, e := range v.Array() {
			refs, err := resourceRefs(pos, e)
			if err != nil {
				return nil, err
			}
			out = append(out, refs...)
		}
		return out, nil
	default:
		return nil, diag.Evaluationf(diagPos(pos), "relationship operator requires a Resource or Array of Resource, found %s", v.TypeName())
	}
}

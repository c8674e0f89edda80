package operators

import "github.com/puppetlabs/langcore/value"

// registerLogical installs `and`, `or`, and unary `!`. Puppet truthiness
// treats only Undef and Bool(false) as falsey; every other Value is
// truthy, per spec.md §3.1's Bool/Undef description.
func registerLogical(t *Table) {
	any := value.Any()
	t.Register(And, any, any, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(truthy(l) && truthy(r)), nil
	})
	t.Register(Or, any, any, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(truthy(l) || truthy(r)), nil
	})
	t.Register(Not, nil, any, func(_ Context, _, operand value.Value) (value.Value, error) {
		return value.Bool(!truthy(operand)), nil
	})
}

func truthy(v value.Value) bool {
	switch v.Kind {
	case value.KindUndef:
		return false
	case value.KindBool:
		return v.Bool()
	default:
		return true
	}
}

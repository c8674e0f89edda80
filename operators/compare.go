package operators

import (
	"strings"

	"github.com/puppetlabs/langcore/value"
)

// registerComparison installs `== != < <= > >= in`. Equality dispatches
// straight to value.LooseEqual, which already implements spec.md §4.1's
// case-insensitive String rule; the ordering operators are restricted to
// Numeric-Numeric and String-String pairs, per Puppet's own operator
// table.
func registerComparison(t *Table) {
	any := value.Any()
	t.Register(Eq, any, any, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(value.LooseEqual(l, r)), nil
	})
	t.Register(Ne, any, any, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(!value.LooseEqual(l, r)), nil
	})

	numeric := value.Numeric()
	t.Register(Lt, numeric, numeric, ordering(func(c int) bool { return c < 0 }))
	t.Register(Le, numeric, numeric, ordering(func(c int) bool { return c <= 0 }))
	t.Register(Gt, numeric, numeric, ordering(func(c int) bool { return c > 0 }))
	t.Register(Ge, numeric, numeric, ordering(func(c int) bool { return c >= 0 }))

	str := value.StringType()
	t.Register(Lt, str, str, stringOrdering(func(c int) bool { return c < 0 }))
	t.Register(Le, str, str, stringOrdering(func(c int) bool { return c <= 0 }))
	t.Register(Gt, str, str, stringOrdering(func(c int) bool { return c > 0 }))
	t.Register(Ge, str, str, stringOrdering(func(c int) bool { return c >= 0 }))

	arr := value.ArrayType()
	t.Register(In, any, arr, func(_ Context, l, r value.Value) (value.Value, error) {
		for _, e := range r.Array() {
			if value.LooseEqual(l, e) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})
	hsh := value.HashType()
	t.Register(In, any, hsh, func(_ Context, l, r value.Value) (value.Value, error) {
		_, ok := r.HashGet(l)
		if ok {
			return value.Bool(true), nil
		}
		keys, _ := r.HashPairs()
		for _, k := range keys {
			if value.LooseEqual(l, k) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})
	t.Register(In, str, str, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(strings.Contains(strings.ToLower(r.Str()), strings.ToLower(l.Str()))), nil
	})
}

func ordering(pred func(int) bool) Handler {
	return func(_ Context, l, r value.Value) (value.Value, error) {
		lf, rf := toFloat(l), toFloat(r)
		var c int
		switch {
		case lf < rf:
			c = -1
		case lf > rf:
			c = 1
		}
		return value.Bool(pred(c)), nil
	}
}

// stringOrdering orders two Strings case-insensitively by comparing
// their strings.ToLower forms with strings.Compare.
func stringOrdering(pred func(int) bool) Handler {
	return func(_ Context, l, r value.Value) (value.Value, error) {
		c := strings.Compare(strings.ToLower(l.Str()), strings.ToLower(r.Str()))
		return value.Bool(pred(c)), nil
	}
}

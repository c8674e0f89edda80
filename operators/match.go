package operators

import "github.com/puppetlabs/langcore/value"

// registerMatch installs `=~` and `!~`. A String left operand may be
// matched against a Regex or a String (compiled on the fly); when the
// right operand is a Type, the left operand of any kind is instead
// tested with is_instance against it, mirroring Puppet's overloaded `=~`
// semantics.
func registerMatch(t *Table) {
	str := value.StringType()
	regexT := value.Regexp()
	typeT := value.TypeOf(value.Any())
	any := value.Any()

	matchRegex := func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(r.Regexp().MatchString(l.Str())), nil
	}
	matchString := func(_ Context, l, r value.Value) (value.Value, error) {
		re, err := value.Regex(r.Str())
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(re.Regexp().MatchString(l.Str())), nil
	}
	matchType := func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Bool(r.Type().IsInstance(l, value.NewGuard())), nil
	}

	t.Register(Match, str, regexT, matchRegex)
	t.Register(Match, str, str, matchString)
	t.Register(Match, any, typeT, matchType)

	t.Register(NotMatch, str, regexT, negateResult(matchRegex))
	t.Register(NotMatch, str, str, negateResult(matchString))
	t.Register(NotMatch, any, typeT, negateResult(matchType))
}

func negateResult(h Handler) Handler {
	return func(ctx Context, l, r value.Value) (value.Value, error) {
		v, err := h(ctx, l, r)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(!v.Bool()), nil
	}
}

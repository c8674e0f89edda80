package functions

import (
	"fmt"
	"regexp"
	"strings"

	goyaml "github.com/goccy/go-yaml"

	"github.com/puppetlabs/langcore/value"
)

// registerBuiltins installs the small library of general-purpose
// functions this module ships beyond the iterating ones: split's three
// overloads, YAML (de)serialization, and a handful of collection/type
// helpers exercised by the evaluator's own tests.
func registerBuiltins(t *Table) {
	registerSplit(t)
	registerYAML(t)

	str := value.StringType()
	any := value.Any()
	arr := value.ArrayType()
	hsh := value.HashType()

	t.Register("length", value.Callable(value.Tuple([]*value.Type{any}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			switch args[0].Kind {
			case value.KindString, value.KindArray, value.KindHash:
				return value.Int(int64(args[0].Len())), nil
			default:
				return value.Value{}, fmt.Errorf("length(): expected String, Array, or Hash, found %s", args[0].TypeName())
			}
		})

	t.Register("upcase", value.Callable(value.Tuple([]*value.Type{str}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Str(strings.ToUpper(args[0].Str())), nil
		})
	t.Register("downcase", value.Callable(value.Tuple([]*value.Type{str}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Str(strings.ToLower(args[0].Str())), nil
		})

	t.Register("keys", value.Callable(value.Tuple([]*value.Type{hsh}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Arr(args[0].HashKeys()...), nil
		})
	t.Register("values", value.Callable(value.Tuple([]*value.Type{hsh}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Arr(args[0].HashValues()...), nil
		})

	t.Register("empty", value.Callable(value.Tuple([]*value.Type{any}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			switch args[0].Kind {
			case value.KindString, value.KindArray, value.KindHash:
				return value.Bool(args[0].Len() == 0), nil
			case value.KindUndef:
				return value.Bool(true), nil
			default:
				return value.Bool(false), nil
			}
		})

	t.Register("flatten", value.Callable(value.Tuple([]*value.Type{arr}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Arr(flatten(args[0].Array())...), nil
		})

	t.Register("assert_type", value.Callable(value.Tuple([]*value.Type{value.TypeOf(value.Any()), any}, 2, 2), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			t := args[0].Type()
			if !t.IsInstance(args[1], value.NewGuard()) {
				return value.Value{}, fmt.Errorf("assert_type(): expected type %s, found %s", t, args[1].TypeName())
			}
			return args[1], nil
		})
}

func flatten(vals []value.Value) []value.Value {
	var out []value.Value
	for _, v := range vals {
		if v.Kind == value.KindArray {
			out = append(out, flatten(v.Array())...)
		} else {
			out = append(out, v)
		}
	}
	return out
}

// registerSplit installs split's three overloads, per
// original_source/.../functions/split.cc: split(String, String) on a
// literal separator, split(String, Regexp), and split(String,
// Type[Regexp]) (a first-class Regexp Type used as a pattern source).
// The String-String overload drops empty segments, matching the C++
// source's explicit `if (!*it) continue;`; the two regex-based overloads
// keep them, matching sregex_token_iterator's default behavior.
func registerSplit(t *Table) {
	str := value.StringType()
	regexV := value.Regexp()
	regexT := value.TypeOf(value.Regexp())

	t.Register("split", value.Callable(value.Tuple([]*value.Type{str, str}, 2, 2), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			sep := args[1].Str()
			if sep == "" {
				return splitCharacters(args[0].Str()), nil
			}
			parts := strings.Split(args[0].Str(), sep)
			var out []value.Value
			for _, p := range parts {
				if p == "" {
					continue
				}
				out = append(out, value.Str(p))
			}
			return value.Arr(out...), nil
		})

	t.Register("split", value.Callable(value.Tuple([]*value.Type{str, regexV}, 2, 2), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			pattern := args[1].RegexSource()
			if pattern == "" {
				return splitCharacters(args[0].Str()), nil
			}
			return splitByRegex(args[0].Str(), pattern)
		})

	t.Register("split", value.Callable(value.Tuple([]*value.Type{str, regexT}, 2, 2), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			pattern := args[1].Type().String()
			if args[1].Type().HasRegexp {
				pattern = args[1].Type().RegexpPattern
			}
			if pattern == "" {
				return splitCharacters(args[0].Str()), nil
			}
			return splitByRegex(args[0].Str(), pattern)
		})
}

func splitByRegex(s, pattern string) (value.Value, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return value.Value{}, fmt.Errorf("split(): invalid regular expression %q: %w", pattern, err)
	}
	parts := re.Split(s, -1)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.Str(p)
	}
	return value.Arr(out...), nil
}

func splitCharacters(s string) value.Value {
	runes := []rune(s)
	out := make([]value.Value, len(runes))
	for i, r := range runes {
		out[i] = value.Str(string(r))
	}
	return value.Arr(out...)
}

// registerYAML installs parseyaml/to_yaml, using github.com/goccy/go-yaml
// to bridge between Value and a generic Go interface{} tree that library
// marshals/unmarshals.
func registerYAML(t *Table) {
	str := value.StringType()
	any := value.Any()

	t.Register("parseyaml", value.Callable(value.Tuple([]*value.Type{str}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			var raw interface{}
			if err := goyaml.Unmarshal([]byte(args[0].Str()), &raw); err != nil {
				return value.Value{}, fmt.Errorf("parseyaml(): %w", err)
			}
			return fromGo(raw), nil
		})

	t.Register("to_yaml", value.Callable(value.Tuple([]*value.Type{any}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			out, err := goyaml.Marshal(toGo(args[0]))
			if err != nil {
				return value.Value{}, fmt.Errorf("to_yaml(): %w", err)
			}
			return value.Str(string(out)), nil
		})
}

func fromGo(raw interface{}) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.Undef()
	case bool:
		return value.Bool(v)
	case int:
		return value.Int(int64(v))
	case int64:
		return value.Int(v)
	case uint64:
		return value.Int(int64(v))
	case float64:
		return value.Float(v)
	case string:
		return value.Str(v)
	case []interface{}:
		elems := make([]value.Value, len(v))
		for i, e := range v {
			elems[i] = fromGo(e)
		}
		return value.Arr(elems...)
	case map[string]interface{}:
		h := value.EmptyHash()
		for k, val := range v {
			h = h.HashSet(value.Str(k), fromGo(val))
		}
		return h
	default:
		return value.Str(fmt.Sprintf("%v", v))
	}
}

func toGo(v value.Value) interface{} {
	switch v.Kind {
	case value.KindUndef:
		return nil
	case value.KindBool:
		return v.Bool()
	case value.KindInteger:
		return v.Int()
	case value.KindFloat:
		return v.Float()
	case value.KindString:
		return v.Str()
	case value.KindArray:
		out := make([]interface{}, len(v.Array()))
		for i, e := range v.Array() {
			out[i] = toGo(e)
		}
		return out
	case value.KindHash:
		out := map[string]interface{}{}
		keys, vals := v.HashPairs()
		for i, k := range keys {
			out[k.String()] = toGo(vals[i])
		}
		return out
	default:
		return v.String()
	}
}

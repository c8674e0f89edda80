package value

import (
	"fmt"
	"regexp"
	"strings"
)

// Value is a tagged union over every runtime value the evaluator can
// produce or consume, per spec.md §3.1. It is deliberately a flat struct
// of optional fields selected by Kind rather than an interface hierarchy,
// grounded on the teacher's ir.Node representation of its own tagged
// union: a closed set of variants is easier to exhaustively switch over
// than to keep in sync across N concrete types satisfying an interface.
type Value struct {
	Kind Kind

	boolVal bool
	intVal  int64
	fltVal  float64
	strVal  string

	regexSrc      string
	regexCompiled *regexp.Regexp

	arr []Value

	hashKeys []Value
	hashVals []Value
	hashIdx  map[string]int // strict (case-sensitive) key string -> index, string keys only

	typ *Type

	resourceType  string
	resourceTitle string

	iterSource  *Value
	iterStep    int64
	iterReverse bool
	iterStages  []iterStage

	// returnVal holds the payload of a Return/Next("with value") sentinel.
	returnVal *Value
}

// Undef returns the absence value. It is distinct from an empty string.
func Undef() Value { return Value{Kind: KindUndef} }

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{Kind: KindBool, boolVal: b} }

// Int constructs a signed 64-bit Integer value.
func Int(i int64) Value { return Value{Kind: KindInteger, intVal: i} }

// Float constructs a Float value.
func Float(f float64) Value { return Value{Kind: KindFloat, fltVal: f} }

// Str constructs a UTF-8 String value.
func Str(s string) Value { return Value{Kind: KindString, strVal: s} }

// Regex constructs a Regex value from already-compiled pattern text.
// Returns an error if the pattern does not compile.
func Regex(pattern string) (Value, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Value{}, fmt.Errorf("invalid regular expression %q: %w", pattern, err)
	}
	return Value{Kind: KindRegex, regexSrc: pattern, regexCompiled: re}, nil
}

// MustRegex is like Regex but panics on an invalid pattern; intended for
// constructing built-in constants, not for evaluating user input.
func MustRegex(pattern string) Value {
	v, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return v
}

// Arr constructs an Array value, preserving insertion order.
func Arr(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{Kind: KindArray, arr: cp}
}

// EmptyHash constructs an empty, insertion-ordered Hash value.
func EmptyHash() Value {
	return Value{Kind: KindHash, hashIdx: map[string]int{}}
}

// TypeVal wraps a first-class Type as a Value.
func TypeVal(t *Type) Value { return Value{Kind: KindType, typ: t} }

// Resource constructs a (type-name, title) Resource value.
func Resource(typeName, title string) Value {
	return Value{Kind: KindResource, resourceType: typeName, resourceTitle: title}
}

// Break constructs the control-flow sentinel produced by a `break` statement.
func Break() Value { return Value{Kind: KindBreak} }

// Next constructs the control-flow sentinel produced by a `next` statement,
// optionally carrying a value to substitute for the current iteration.
func Next(v *Value) Value { return Value{Kind: KindNext, returnVal: v} }

// Return constructs the control-flow sentinel produced by a `return`
// statement, carrying the returned value.
func Return(v Value) Value { return Value{Kind: KindReturn, returnVal: &v} }

// Accessors. Each panics if called against the wrong Kind: callers are
// expected to have already dispatched on Kind (or checked IsInstance
// against the appropriate Type) before reaching in.

func (v Value) Bool() bool {
	v.mustBe(KindBool)
	return v.boolVal
}

func (v Value) Int() int64 {
	v.mustBe(KindInteger)
	return v.intVal
}

func (v Value) Float() float64 {
	v.mustBe(KindFloat)
	return v.fltVal
}

func (v Value) Str() string {
	v.mustBe(KindString)
	return v.strVal
}

func (v Value) RegexSource() string {
	v.mustBe(KindRegex)
	return v.regexSrc
}

func (v Value) Regexp() *regexp.Regexp {
	v.mustBe(KindRegex)
	return v.regexCompiled
}

func (v Value) Array() []Value {
	v.mustBe(KindArray)
	return v.arr
}

func (v Value) Len() int {
	switch v.Kind {
	case KindArray:
		return len(v.arr)
	case KindHash:
		return len(v.hashKeys)
	case KindString:
		return len([]rune(v.strVal))
	default:
		panic(fmt.Sprintf("value: Len() not defined for %s", v.Kind))
	}
}

func (v Value) Type() *Type {
	v.mustBe(KindType)
	return v.typ
}

func (v Value) ResourceType() string {
	v.mustBe(KindResource)
	return v.resourceType
}

func (v Value) ResourceTitle() string {
	v.mustBe(KindResource)
	return v.resourceTitle
}

// ReturnValue unwraps the payload of a Return or valued Next sentinel.
// Returns (Undef(), false) for a bare `next`.
func (v Value) ReturnValue() (Value, bool) {
	if v.returnVal == nil {
		return Undef(), false
	}
	return *v.returnVal, true
}

func (v Value) mustBe(k Kind) {
	if v.Kind != k {
		panic(fmt.Sprintf("value: expected %s, got %s", k, v.Kind))
	}
}

// TypeName returns the Puppet-facing name of the value's runtime kind,
// used in error messages ("expected Numeric for arithmetic division but
// found String", per original_source divide.cc).
func (v Value) TypeName() string {
	return InferType(v).String()
}

// String renders a debug/display form of the value. It is not the
// language's own `to_s`/`sprintf` formatting, which lives in functions.
func (v Value) String() string {
	switch v.Kind {
	case KindUndef:
		return "undef"
	case KindBool:
		return fmt.Sprintf("%t", v.boolVal)
	case KindInteger:
		return fmt.Sprintf("%d", v.intVal)
	case KindFloat:
		return formatFloat(v.fltVal)
	case KindString:
		return v.strVal
	case KindRegex:
		return "/" + v.regexSrc + "/"
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = quoteIfString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindHash:
		parts := make([]string, len(v.hashKeys))
		for i, k := range v.hashKeys {
			parts[i] = fmt.Sprintf("%s => %s", quoteIfString(k), quoteIfString(v.hashVals[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindType:
		return v.typ.String()
	case KindResource:
		return fmt.Sprintf("%s[%s]", v.resourceType, v.resourceTitle)
	case KindIterator:
		return "<Iterator>"
	case KindBreak:
		return "<break>"
	case KindNext:
		return "<next>"
	case KindReturn:
		return "<return>"
	default:
		return "<unknown>"
	}
}

func quoteIfString(v Value) string {
	if v.Kind == KindString {
		return fmt.Sprintf("%q", v.strVal)
	}
	return v.String()
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

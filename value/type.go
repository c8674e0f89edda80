package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxLen is the default upper length/range bound ("to" unbounded).
	MaxLen = math.MaxInt64
	// MinLen is the default lower length/range bound.
	MinLen = 0
)

// StructMember describes one entry of a Struct type, per spec.md §3.2:
// the key-type may be a plain String[…]/Enum[…] or one wrapped in
// Optional[…]/NotUndef[…] to express optionality independent of Required.
type StructMember struct {
	KeyType   *Type
	ValueType *Type
	Required  bool
}

// Type is a tagged union over the ~40 named type variants of spec.md
// §3.2. Like Value, it is one flat struct selected by Kind rather than an
// interface hierarchy of concrete variant types, so that IsInstance and
// IsAssignable can be single exhaustive switches instead of a scattered
// double-dispatch across 40 types.
//
// Types are immutable after construction, except for Alias, whose body
// resolver may be attached after the Type value is created so that
// mutually recursive aliases (spec.md §3.2 "Lifecycle") can reference
// each other before either body is fully known.
type Type struct {
	Kind TypeKind

	// Integer / Float / String / Array / Hash / Collection / Tuple length or range bounds.
	IFrom, ITo int64     // Integer range, or length bounds for String/Array/Hash/Collection/Tuple
	FFrom, FTo float64   // Float range

	Patterns []*Type // Pattern: list of Regexp types

	EnumValues []string // Enum

	RegexpPattern string // Regexp; empty means "any pattern"
	HasRegexp     bool

	Elem  *Type // Array element type, Optional/NotUndef inner, Type inner
	Key   *Type // Hash key type
	Value *Type // Hash value type

	Elements []*Type // Tuple element types

	Members []StructMember // Struct

	Alternatives []*Type // Variant

	ResourceTypeName string // Resource
	ResourceTitle    string
	HasResourceType  bool
	HasResourceTitle bool

	ClassName string // Class
	HasClassName bool

	CallableParams *Type // Callable: Tuple-shaped
	CallableBlock  *Type // Callable: optional block type

	aliasName    string
	aliasResolve func() *Type
	resolved     *Type
}

// Simple singleton-shaped constructors for the unparameterized variants.
func Any() *Type          { return &Type{Kind: TAny} }
func UndefType() *Type    { return &Type{Kind: TUndef} }
func NotUndef() *Type     { return &Type{Kind: TNotUndef} }
func Boolean() *Type      { return &Type{Kind: TBoolean} }
func Default() *Type      { return &Type{Kind: TDefault} }
func CatalogEntry() *Type { return &Type{Kind: TCatalogEntry} }
func Runtime() *Type      { return &Type{Kind: TRuntime} }
func Iterable() *Type     { return &Type{Kind: TIterable} }
func IteratorType() *Type { return &Type{Kind: TIterator} }

func Scalar() *Type { return &Type{Kind: TScalar} }
func Data() *Type   { return &Type{Kind: TData} }

func Collection(from, to int64) *Type {
	return &Type{Kind: TCollection, IFrom: from, ITo: to}
}

func Numeric() *Type { return &Type{Kind: TNumeric} }

func IntegerRange(from, to int64) *Type {
	return &Type{Kind: TInteger, IFrom: from, ITo: to}
}
func IntegerType() *Type { return IntegerRange(math.MinInt64, math.MaxInt64) }

func FloatRange(from, to float64) *Type {
	return &Type{Kind: TFloat, FFrom: from, FTo: to}
}
func FloatType() *Type { return FloatRange(math.Inf(-1), math.Inf(1)) }

func StringRange(minLen, maxLen int64) *Type {
	return &Type{Kind: TString, IFrom: minLen, ITo: maxLen}
}
func StringType() *Type { return StringRange(0, MaxLen) }

func Pattern(patterns ...*Type) *Type {
	return &Type{Kind: TPattern, Patterns: patterns}
}

func Enum(values ...string) *Type {
	return &Type{Kind: TEnum, EnumValues: values}
}

func Regexp() *Type {
	return &Type{Kind: TRegexp}
}
func RegexpOf(pattern string) *Type {
	return &Type{Kind: TRegexp, RegexpPattern: pattern, HasRegexp: true}
}

func ArrayOf(elem *Type, from, to int64) *Type {
	return &Type{Kind: TArray, Elem: elem, IFrom: from, ITo: to}
}
func ArrayType() *Type { return ArrayOf(Any(), 0, MaxLen) }

func HashOf(key, val *Type, from, to int64) *Type {
	return &Type{Kind: THash, Key: key, Value: val, IFrom: from, ITo: to}
}
func HashType() *Type { return HashOf(Any(), Any(), 0, MaxLen) }

func Tuple(elements []*Type, from, to int64) *Type {
	return &Type{Kind: TTuple, Elements: elements, IFrom: from, ITo: to}
}

func Struct(members ...StructMember) *Type {
	return &Type{Kind: TStruct, Members: members}
}

func Variant(alts ...*Type) *Type {
	return &Type{Kind: TVariant, Alternatives: alts}
}

func Optional(inner *Type) *Type {
	return &Type{Kind: TOptional, Elem: inner}
}

func NotUndefOf(inner *Type) *Type {
	return &Type{Kind: TNotUndefOf, Elem: inner}
}

func TypeOf(inner *Type) *Type {
	return &Type{Kind: TType, Elem: inner}
}

func ResourceOf(typeName, title string) *Type {
	t := &Type{Kind: TResource}
	if typeName != "" {
		t.ResourceTypeName = typeName
		t.HasResourceType = true
	}
	if title != "" {
		t.ResourceTitle = title
		t.HasResourceTitle = true
	}
	return t
}

func ClassOf(name string) *Type {
	t := &Type{Kind: TClass}
	if name != "" {
		t.ClassName = name
		t.HasClassName = true
	}
	return t
}

func Callable(params *Type, block *Type) *Type {
	return &Type{Kind: TCallable, CallableParams: params, CallableBlock: block}
}

// NewAlias constructs a named alias with no body yet. Attach the body
// with SetBody once it is known; this two-step construction is what
// allows Alias A = Array[A] and mutually-recursive aliases to be built.
func NewAlias(name string) *Type {
	return &Type{Kind: TAlias, aliasName: name}
}

// SetBody attaches the lazy resolver for an Alias's body.
func (t *Type) SetBody(resolve func() *Type) {
	t.aliasResolve = resolve
	t.resolved = nil
}

// AliasName returns the alias's name; panics if t is not an Alias.
func (t *Type) AliasName() string {
	t.mustBe(TAlias)
	return t.aliasName
}

// Resolve returns the Alias's body, resolving (and memoizing) it if
// necessary. Panics if t is not an Alias or has no attached resolver.
func (t *Type) Resolve() *Type {
	t.mustBe(TAlias)
	if t.resolved == nil {
		if t.aliasResolve == nil {
			panic(fmt.Sprintf("value: alias %q has no body attached", t.aliasName))
		}
		t.resolved = t.aliasResolve()
	}
	return t.resolved
}

func (t *Type) mustBe(k TypeKind) {
	if t.Kind != k {
		panic(fmt.Sprintf("value: expected Type kind %s, got %s", k, t.Kind))
	}
}

// String renders the Puppet-style type expression, matching the
// pretty-printing spec.md §7 requires for type-mismatch diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "Any"
	}
	switch t.Kind {
	case TAny, TUndef, TNotUndef, TScalar, TData, TNumeric, TBoolean, TDefault,
		TCatalogEntry, TRuntime, TIterable, TIterator:
		return t.Kind.String()
	case TCollection:
		return rangeSuffix("Collection", t.IFrom, t.ITo, MinLen, MaxLen)
	case TInteger:
		return rangeSuffix("Integer", t.IFrom, t.ITo, math.MinInt64, math.MaxInt64)
	case TFloat:
		return floatRangeSuffix(t.FFrom, t.FTo)
	case TString:
		return rangeSuffix("String", t.IFrom, t.ITo, MinLen, MaxLen)
	case TPattern:
		parts := make([]string, len(t.Patterns))
		for i, p := range t.Patterns {
			parts[i] = p.String()
		}
		return "Pattern[" + strings.Join(parts, ", ") + "]"
	case TEnum:
		parts := make([]string, len(t.EnumValues))
		for i, v := range t.EnumValues {
			parts[i] = strconv.Quote(v)
		}
		return "Enum[" + strings.Join(parts, ", ") + "]"
	case TRegexp:
		if t.HasRegexp {
			return "Regexp[" + strconv.Quote(t.RegexpPattern) + "]"
		}
		return "Regexp"
	case TArray:
		return "Array[" + t.Elem.String() + rangeArgsSuffix(t.IFrom, t.ITo, MinLen, MaxLen) + "]"
	case THash:
		return "Hash[" + t.Key.String() + ", " + t.Value.String() + rangeArgsSuffix(t.IFrom, t.ITo, MinLen, MaxLen) + "]"
	case TTuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		return "Tuple[" + strings.Join(parts, ", ") + rangeArgsSuffix(t.IFrom, t.ITo, int64(len(t.Elements)), int64(len(t.Elements))) + "]"
	case TStruct:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = fmt.Sprintf("%s => %s", m.KeyType.String(), m.ValueType.String())
		}
		return "Struct[{" + strings.Join(parts, ", ") + "}]"
	case TVariant:
		parts := make([]string, len(t.Alternatives))
		for i, a := range t.Alternatives {
			parts[i] = a.String()
		}
		return "Variant[" + strings.Join(parts, ", ") + "]"
	case TOptional:
		return "Optional[" + t.Elem.String() + "]"
	case TNotUndefOf:
		return "NotUndef[" + t.Elem.String() + "]"
	case TType:
		return "Type[" + t.Elem.String() + "]"
	case TResource:
		if t.HasResourceType && t.HasResourceTitle {
			return fmt.Sprintf("%s[%s]", strings.Title(t.ResourceTypeName), strconv.Quote(t.ResourceTitle))
		}
		if t.HasResourceType {
			return strings.Title(t.ResourceTypeName)
		}
		return "Resource"
	case TClass:
		if t.HasClassName {
			return "Class[" + t.ClassName + "]"
		}
		return "Class"
	case TCallable:
		s := "Callable[" + t.CallableParams.String()
		if t.CallableBlock != nil {
			s += ", " + t.CallableBlock.String()
		}
		return s + "]"
	case TAlias:
		return t.aliasName
	default:
		return "?"
	}
}

func rangeSuffix(name string, from, to, defFrom, defTo int64) string {
	return name + rangeArgsSuffix(from, to, defFrom, defTo)
}

func rangeArgsSuffix(from, to, defFrom, defTo int64) string {
	if from == defFrom && to == defTo {
		return ""
	}
	if from == to {
		return fmt.Sprintf("[%d]", from)
	}
	return fmt.Sprintf("[%d, %d]", from, to)
}

func floatRangeSuffix(from, to float64) string {
	if math.IsInf(from, -1) && math.IsInf(to, 1) {
		return "Float"
	}
	return fmt.Sprintf("Float[%s, %s]", formatFloat(from), formatFloat(to))
}

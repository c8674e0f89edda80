// Package value implements the runtime value model and the type algebra
// that classifies it.
//
// Value and Type are kept in one package, following the teacher's own
// choice to keep its tagged-union value (Node) and its tagged-union type
// (Type) together in a single ir package: Type.IsInstance needs to walk
// Values, and Value's Type variant holds a first-class Type, so the two
// are mutually recursive and cannot live in separate packages without an
// import cycle.
package value

import "fmt"

// Kind is the tag of a Value's closed variant set.
type Kind uint8

const (
	KindUndef Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindRegex
	KindArray
	KindHash
	KindType
	KindResource
	KindIterator
	KindBreak
	KindNext
	KindReturn
)

var kindNames = map[Kind]string{
	KindUndef:    "Undef",
	KindBool:     "Boolean",
	KindInteger:  "Integer",
	KindFloat:    "Float",
	KindString:   "String",
	KindRegex:    "Regexp",
	KindArray:    "Array",
	KindHash:     "Hash",
	KindType:     "Type",
	KindResource: "Resource",
	KindIterator: "Iterator",
	KindBreak:    "Break",
	KindNext:     "Next",
	KindReturn:   "Return",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsControlFlow reports whether the kind is one of the Break/Next/Return
// sentinels rather than an ordinary value, per spec.md §3.1.
func (k Kind) IsControlFlow() bool {
	return k == KindBreak || k == KindNext || k == KindReturn
}

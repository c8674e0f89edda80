package value

// TypeKind is the tag of a Type's closed variant set, per spec.md §3.2.
type TypeKind uint8

const (
	TAny TypeKind = iota
	TUndef
	TNotUndef
	TScalar
	TData
	TCollection
	TNumeric
	TBoolean
	TDefault
	TCatalogEntry
	TRuntime
	TIterable
	TIterator
	TInteger
	TFloat
	TString
	TPattern
	TEnum
	TRegexp
	TArray
	THash
	TTuple
	TStruct
	TVariant
	TOptional
	TNotUndefOf
	TType
	TResource
	TClass
	TCallable
	TAlias
)

var typeKindNames = map[TypeKind]string{
	TAny:          "Any",
	TUndef:        "Undef",
	TNotUndef:     "NotUndef",
	TScalar:       "Scalar",
	TData:         "Data",
	TCollection:   "Collection",
	TNumeric:      "Numeric",
	TBoolean:      "Boolean",
	TDefault:      "Default",
	TCatalogEntry: "CatalogEntry",
	TRuntime:      "Runtime",
	TIterable:     "Iterable",
	TIterator:     "Iterator",
	TInteger:      "Integer",
	TFloat:        "Float",
	TString:       "String",
	TPattern:      "Pattern",
	TEnum:         "Enum",
	TRegexp:       "Regexp",
	TArray:        "Array",
	THash:         "Hash",
	TTuple:        "Tuple",
	TStruct:       "Struct",
	TVariant:      "Variant",
	TOptional:     "Optional",
	TNotUndefOf:   "NotUndef",
	TType:         "Type",
	TResource:     "Resource",
	TClass:        "Class",
	TCallable:     "Callable",
	TAlias:        "Alias",
}

func (k TypeKind) String() string { return typeKindNames[k] }

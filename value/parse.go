package value

import "fmt"

// ParseTypeName resolves one of the bare type-expression keywords spec.md
// §4.3 lists as operator dispatch patterns (e.g. "String", "Numeric",
// "Type", "Any") to its unparameterized Type. It does not parse the full
// parametric type-expression grammar (`Array[Integer[0,10], 2, 4]`) --
// that belongs to the parser/AST layer this module treats as an external
// collaborator (spec.md §1); operator dispatch entries only ever need the
// abstract, unparameterized names.
func ParseTypeName(name string) (*Type, error) {
	switch name {
	case "Any":
		return Any(), nil
	case "Undef":
		return UndefType(), nil
	case "NotUndef":
		return NotUndef(), nil
	case "Scalar":
		return Scalar(), nil
	case "Data":
		return Data(), nil
	case "Collection":
		return Collection(MinLen, MaxLen), nil
	case "Numeric":
		return Numeric(), nil
	case "Boolean":
		return Boolean(), nil
	case "Default":
		return Default(), nil
	case "CatalogEntry":
		return CatalogEntry(), nil
	case "Runtime":
		return Runtime(), nil
	case "Iterable":
		return Iterable(), nil
	case "Iterator":
		return IteratorType(), nil
	case "Integer":
		return IntegerType(), nil
	case "Float":
		return FloatType(), nil
	case "String":
		return StringType(), nil
	case "Regexp":
		return Regexp(), nil
	case "Array":
		return ArrayType(), nil
	case "Hash":
		return HashType(), nil
	case "Variant":
		return &Type{Kind: TVariant}, nil
	case "Type":
		return &Type{Kind: TType, Elem: Any()}, nil
	case "Resource":
		return ResourceOf("", ""), nil
	case "Class":
		return ClassOf(""), nil
	case "Callable":
		return &Type{Kind: TCallable, CallableParams: &Type{Kind: TTuple}}, nil
	default:
		return nil, fmt.Errorf("value: unknown type name %q", name)
	}
}

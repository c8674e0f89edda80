package value

// IsAssignable tests whether other is a subtype of t: every value that is
// an instance of other is also an instance of t. This is spec.md §4.2's
// is_assignable, and is the primitive that Type == Type equality is
// defined in terms of (see Type.Equal), following
// original_source/.../operators/binary/not_equals.cc, which computes
// Type equality via two is_assignable calls under one shared guard rather
// than a structural walk.
func (t *Type) IsAssignable(other *Type, guard *Guard) bool {
	if other == nil {
		other = Any()
	}
	if t.Kind == TAlias || other.Kind == TAlias {
		assumed, visiting := guard.Enter(t, other)
		if visiting {
			return assumed
		}
		defer guard.Leave(t, other)
		if t.Kind == TAlias {
			return t.Resolve().IsAssignable(other, guard)
		}
		return t.IsAssignable(other.Resolve(), guard)
	}

	switch t.Kind {
	case TAny:
		return true
	case TUndef:
		return other.Kind == TUndef
	case TNotUndef:
		return other.Kind != TUndef && !variantContainsUndef(other)
	case TScalar:
		return scalarUnion().IsAssignable(other, guard)
	case TData:
		return t.isDataAssignable(other, guard)
	case TCollection:
		return isCollectionAssignable(t.IFrom, t.ITo, other, guard)
	case TNumeric:
		return other.Kind == TNumeric || other.Kind == TInteger || other.Kind == TFloat
	case TBoolean:
		return other.Kind == TBoolean
	case TDefault:
		return other.Kind == TDefault
	case TCatalogEntry:
		return other.Kind == TCatalogEntry || other.Kind == TResource || other.Kind == TClass
	case TRuntime:
		return other.Kind == TRuntime
	case TIterable:
		return other.Kind == TIterable || other.Kind == TArray || other.Kind == THash || other.Kind == TIterator
	case TIterator:
		return other.Kind == TIterator
	case TInteger:
		if other.Kind != TInteger {
			return false
		}
		return t.IFrom <= other.IFrom && other.ITo <= t.ITo
	case TFloat:
		if other.Kind != TFloat {
			return false
		}
		return t.FFrom <= other.FFrom && other.FTo <= t.FTo
	case TString:
		if other.Kind != TString {
			return false
		}
		return t.IFrom <= other.IFrom && other.ITo <= t.ITo
	case TPattern:
		// A Pattern type is assignable from another Pattern only if every
		// regex of other has the same pattern text as one of t's regexes;
		// assignability from String is content-dependent
		// (handled by IsInstance, not by the type-to-type relation).
		if other.Kind != TPattern {
			return false
		}
		for _, op := range other.Patterns {
			ok := false
			for _, tp := range t.Patterns {
				if tp.RegexpPattern == op.RegexpPattern {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		return true
	case TEnum:
		if other.Kind != TEnum {
			return false
		}
		for _, ov := range other.EnumValues {
			if !containsString(t.EnumValues, ov) {
				return false
			}
		}
		return true
	case TRegexp:
		if other.Kind != TRegexp {
			return false
		}
		if !t.HasRegexp {
			return true
		}
		return other.HasRegexp && t.RegexpPattern == other.RegexpPattern
	case TArray:
		if other.Kind != TArray {
			return false
		}
		return t.IFrom <= other.IFrom && other.ITo <= t.ITo && t.Elem.IsAssignable(other.Elem, guard)
	case THash:
		if other.Kind != THash {
			return false
		}
		return t.IFrom <= other.IFrom && other.ITo <= t.ITo &&
			t.Key.IsAssignable(other.Key, guard) && t.Value.IsAssignable(other.Value, guard)
	case TTuple:
		return isTupleAssignable(t, other, guard)
	case TStruct:
		return isStructAssignable(t, other, guard)
	case TVariant:
		return isVariantAssignable(t, other, guard)
	case TOptional:
		return Variant(t.Elem, UndefType()).IsAssignable(other, guard)
	case TNotUndefOf:
		if other.Kind == TUndef || variantContainsUndef(other) {
			return false
		}
		return t.Elem.IsAssignable(other, guard)
	case TType:
		if other.Kind != TType {
			return false
		}
		return t.Elem.IsAssignable(other.Elem, guard)
	case TResource:
		if other.Kind != TResource {
			return false
		}
		if t.HasResourceType && (!other.HasResourceType || !equalFold(t.ResourceTypeName, other.ResourceTypeName)) {
			return false
		}
		if t.HasResourceTitle && (!other.HasResourceTitle || t.ResourceTitle != other.ResourceTitle) {
			return false
		}
		return true
	case TClass:
		if other.Kind != TClass {
			return false
		}
		if t.HasClassName && (!other.HasClassName || !equalFold(t.ClassName, other.ClassName)) {
			return false
		}
		return true
	case TCallable:
		if other.Kind != TCallable {
			return false
		}
		if !t.CallableParams.IsAssignable(other.CallableParams, guard) {
			return false
		}
		if (t.CallableBlock == nil) != (other.CallableBlock == nil) {
			return t.CallableBlock == nil
		}
		if t.CallableBlock == nil {
			return true
		}
		return t.CallableBlock.IsAssignable(other.CallableBlock, guard) && other.CallableBlock.IsAssignable(t.CallableBlock, guard)
	default:
		return false
	}
}

func isCollectionAssignable(from, to int64, other *Type, guard *Guard) bool {
	var oFrom, oTo int64
	switch other.Kind {
	case TCollection:
		oFrom, oTo = other.IFrom, other.ITo
	case TArray:
		oFrom, oTo = other.IFrom, other.ITo
	case THash:
		oFrom, oTo = other.IFrom, other.ITo
	default:
		return false
	}
	return from <= oFrom && oTo <= to
}

func isTupleAssignable(t, other *Type, guard *Guard) bool {
	switch other.Kind {
	case TTuple:
		if len(other.Elements) < len(t.Elements) {
			// other may still satisfy t if t's tail elements are optional
			// via its own from/to; approximate by requiring at least `from`.
		}
		max := len(t.Elements)
		if len(other.Elements) > max {
			return false
		}
		for i := 0; i < len(other.Elements) && i < len(t.Elements); i++ {
			if !t.Elements[i].IsAssignable(other.Elements[i], guard) {
				return false
			}
		}
		oFrom, oTo := other.IFrom, other.ITo
		if oFrom == 0 && oTo == 0 {
			oFrom, oTo = int64(len(other.Elements)), int64(len(other.Elements))
		}
		tFrom, tTo := t.IFrom, t.ITo
		if tFrom == 0 && tTo == 0 {
			tFrom, tTo = int64(len(t.Elements)), int64(len(t.Elements))
		}
		return tFrom <= oFrom && oTo <= tTo
	case TArray:
		if len(t.Elements) == 0 {
			return false
		}
		union := Variant(t.Elements...)
		if !union.IsAssignable(other.Elem, guard) && other.Elem.Kind != TAny {
			// still allow if other.Elem itself is assignable into the union
			ok := false
			for _, e := range t.Elements {
				if e.IsAssignable(other.Elem, guard) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		tFrom, tTo := t.IFrom, t.ITo
		if tFrom == 0 && tTo == 0 {
			tFrom, tTo = int64(len(t.Elements)), int64(len(t.Elements))
		}
		return tFrom <= other.IFrom && other.ITo <= tTo
	default:
		return false
	}
}

func isStructAssignable(t, other *Type, guard *Guard) bool {
	if other.Kind != TStruct {
		return false
	}
	find := func(members []StructMember, keyName string) (StructMember, bool) {
		for _, m := range members {
			if structKeyName(m.KeyType) == keyName {
				return m, true
			}
		}
		return StructMember{}, false
	}
	for _, tm := range t.Members {
		key := structKeyName(tm.KeyType)
		om, ok := find(other.Members, key)
		if !ok {
			if tm.Required {
				return false
			}
			continue
		}
		if !tm.ValueType.IsAssignable(om.ValueType, guard) {
			return false
		}
	}
	for _, om := range other.Members {
		key := structKeyName(om.KeyType)
		if _, ok := find(t.Members, key); !ok {
			return false
		}
	}
	return true
}

// structKeyName extracts the literal key name from a Struct member's
// key-type, which per spec.md §3.2 may be a bare String[…]/Enum[…] or one
// wrapped in Optional[…]/NotUndef[…]. A bare TString key (no EnumValues)
// carries only a length range, not a literal value, so it has no single
// name to extract -- it matches every key satisfying that length, not one
// named key -- and correctly falls through to the "" default below rather
// than being a missing case.
func structKeyName(kt *Type) string {
	switch kt.Kind {
	case TEnum:
		if len(kt.EnumValues) > 0 {
			return kt.EnumValues[0]
		}
	case TOptional, TNotUndefOf:
		return structKeyName(kt.Elem)
	}
	return ""
}

func isVariantAssignable(t, other *Type, guard *Guard) bool {
	if other.Kind == TOptional {
		other = Variant(other.Elem, UndefType())
	}
	if other.Kind == TVariant {
		for _, ob := range other.Alternatives {
			ok := false
			for _, ta := range t.Alternatives {
				if ta.IsAssignable(ob, guard) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		return true
	}
	for _, ta := range t.Alternatives {
		if ta.IsAssignable(other, guard) {
			return true
		}
	}
	return false
}

func variantContainsUndef(t *Type) bool {
	switch t.Kind {
	case TUndef:
		return true
	case TVariant:
		for _, a := range t.Alternatives {
			if variantContainsUndef(a) {
				return true
			}
		}
	case TOptional:
		return true
	}
	return false
}

func scalarUnion() *Type {
	return Variant(Numeric(), StringType(), Boolean(), Regexp())
}

// isDataAssignable tests whether every instance of other is also an
// instance of Data (≡ Variant[Scalar, Undef, Array[Data], Hash[String,
// Data]]), recursing into other's own Array/Hash element types for the
// two self-referential alternatives instead of approximating them with
// Any, which would accept e.g. Array[Resource] as Data-assignable. This
// mirrors isDataInstance's structural recursion in instance.go, just
// over types instead of values. t is threaded through purely to give
// the guard a stable "self" key for the TAlias case below.
func (t *Type) isDataAssignable(other *Type, guard *Guard) bool {
	if other == nil {
		other = Any()
	}
	if other.Kind == TAlias {
		assumed, visiting := guard.Enter(t, other)
		if visiting {
			return assumed
		}
		defer guard.Leave(t, other)
		return t.isDataAssignable(other.Resolve(), guard)
	}
	switch other.Kind {
	case TData, TUndef:
		return true
	case TVariant:
		for _, a := range other.Alternatives {
			if !t.isDataAssignable(a, guard) {
				return false
			}
		}
		return true
	case TOptional, TNotUndefOf:
		return t.isDataAssignable(other.Elem, guard)
	case TArray:
		return t.isDataAssignable(other.Elem, guard)
	case THash:
		return StringType().IsAssignable(other.Key, guard) && t.isDataAssignable(other.Value, guard)
	case TTuple:
		for _, e := range other.Elements {
			if !t.isDataAssignable(e, guard) {
				return false
			}
		}
		return true
	default:
		return scalarUnion().IsAssignable(other, guard)
	}
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

package value

// InferType returns the tightest Type describing v, e.g. Integer[5,5] for
// the literal 5, per spec.md §8 invariant 3. It underlies Generalize and
// gives error messages a precise "found" type to report.
func InferType(v Value) *Type {
	switch v.Kind {
	case KindUndef:
		return UndefType()
	case KindBool:
		return Boolean()
	case KindInteger:
		return IntegerRange(v.intVal, v.intVal)
	case KindFloat:
		return FloatRange(v.fltVal, v.fltVal)
	case KindString:
		n := int64(len([]rune(v.strVal)))
		return StringRange(n, n)
	case KindRegex:
		return RegexpOf(v.regexSrc)
	case KindArray:
		elem := Any()
		if len(v.arr) > 0 {
			alts := make([]*Type, len(v.arr))
			for i, e := range v.arr {
				alts[i] = InferType(e)
			}
			elem = dedupVariant(alts)
		}
		n := int64(len(v.arr))
		return ArrayOf(elem, n, n)
	case KindHash:
		key, val := Any(), Any()
		if len(v.hashKeys) > 0 {
			kAlts := make([]*Type, len(v.hashKeys))
			vAlts := make([]*Type, len(v.hashVals))
			for i := range v.hashKeys {
				kAlts[i] = InferType(v.hashKeys[i])
				vAlts[i] = InferType(v.hashVals[i])
			}
			key = dedupVariant(kAlts)
			val = dedupVariant(vAlts)
		}
		n := int64(len(v.hashKeys))
		return HashOf(key, val, n, n)
	case KindType:
		return TypeOf(v.typ)
	case KindResource:
		return ResourceOf(v.resourceType, v.resourceTitle)
	case KindIterator:
		return IteratorType()
	default:
		return Any()
	}
}

func dedupVariant(types []*Type) *Type {
	if len(types) == 1 {
		return types[0]
	}
	var out []*Type
	for _, t := range types {
		dup := false
		for _, o := range out {
			if t.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return Variant(out...)
}

// Generalize widens every numeric/length range in t to unbounded, per
// spec.md §4.2, except that a Tuple's length bounds are reset to the
// default of exactly its element count. It is idempotent (spec.md §8
// invariant 4).
func Generalize(t *Type) *Type {
	if t == nil {
		return Any()
	}
	switch t.Kind {
	case TCollection:
		return Collection(MinLen, MaxLen)
	case TInteger:
		return IntegerType()
	case TFloat:
		return FloatType()
	case TString:
		return StringType()
	case TArray:
		return ArrayOf(Generalize(t.Elem), MinLen, MaxLen)
	case THash:
		return HashOf(Generalize(t.Key), Generalize(t.Value), MinLen, MaxLen)
	case TTuple:
		elems := make([]*Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = Generalize(e)
		}
		return Tuple(elems, 0, 0)
	case TVariant:
		alts := make([]*Type, len(t.Alternatives))
		for i, a := range t.Alternatives {
			alts[i] = Generalize(a)
		}
		return Variant(alts...)
	case TOptional:
		return Optional(Generalize(t.Elem))
	case TNotUndefOf:
		return NotUndefOf(Generalize(t.Elem))
	case TType:
		return TypeOf(Generalize(t.Elem))
	default:
		return t
	}
}


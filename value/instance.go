package value

// IsInstance tests spec.md §4.2's is_instance: whether v is a member of
// the type t. Where the invariant of spec.md §8 ("is_instance(v,T) iff
// assignable(T, infer(v))") applies cleanly — the purely structural
// variants (ranges, Array/Hash/Collection/Variant/Optional/NotUndef/Any/
// Data/Scalar) — IsInstance is implemented in terms of InferType and
// IsAssignable. The content-sensitive variants (Enum, Pattern, Regexp
// literal match, Resource/Class identity, Struct against an actual Hash,
// Callable against an actual argument list) inspect v directly, because
// no single Type could represent "the tightest type of this value" for
// those without reproducing the value itself.
func (t *Type) IsInstance(v Value, guard *Guard) bool {
	if t.Kind == TAlias {
		assumed, visiting := guard.Enter(t, nil)
		if visiting {
			return assumed
		}
		defer guard.Leave(t, nil)
		return t.Resolve().IsInstance(v, guard)
	}

	switch t.Kind {
	case TAny:
		return true
	case TUndef:
		return v.Kind == KindUndef
	case TNotUndef:
		return v.Kind != KindUndef
	case TScalar:
		return v.Kind == KindInteger || v.Kind == KindFloat || v.Kind == KindString ||
			v.Kind == KindBool || v.Kind == KindRegex
	case TData:
		return isDataInstance(v, guard)
	case TCollection:
		if v.Kind != KindArray && v.Kind != KindHash {
			return false
		}
		return t.IFrom <= int64(v.Len()) && int64(v.Len()) <= t.ITo
	case TNumeric:
		return v.Kind == KindInteger || v.Kind == KindFloat
	case TBoolean:
		return v.Kind == KindBool
	case TDefault:
		return false // Default is a distinct literal produced by the AST layer, never a runtime Value here.
	case TCatalogEntry:
		return v.Kind == KindResource
	case TRuntime:
		return false
	case TIterable:
		return v.Kind == KindArray || v.Kind == KindHash || v.Kind == KindIterator
	case TIterator:
		return v.Kind == KindIterator
	case TInteger:
		return v.Kind == KindInteger && t.IFrom <= v.intVal && v.intVal <= t.ITo
	case TFloat:
		return v.Kind == KindFloat && t.FFrom <= v.fltVal && v.fltVal <= t.FTo
	case TString:
		if v.Kind != KindString {
			return false
		}
		n := int64(len([]rune(v.strVal)))
		return t.IFrom <= n && n <= t.ITo
	case TPattern:
		if v.Kind != KindString {
			return false
		}
		for _, p := range t.Patterns {
			if p.HasRegexp {
				if ok, _ := regexpMatches(p.RegexpPattern, v.strVal); ok {
					return true
				}
			}
		}
		return false
	case TEnum:
		if v.Kind != KindString {
			return false
		}
		return containsString(t.EnumValues, v.strVal)
	case TRegexp:
		if v.Kind != KindRegex {
			return false
		}
		if !t.HasRegexp {
			return true
		}
		return v.regexSrc == t.RegexpPattern
	case TArray:
		if v.Kind != KindArray {
			return false
		}
		n := int64(len(v.arr))
		if n < t.IFrom || n > t.ITo {
			return false
		}
		for _, e := range v.arr {
			if !t.Elem.IsInstance(e, guard) {
				return false
			}
		}
		return true
	case THash:
		if v.Kind != KindHash {
			return false
		}
		n := int64(len(v.hashKeys))
		if n < t.IFrom || n > t.ITo {
			return false
		}
		for i, k := range v.hashKeys {
			if !t.Key.IsInstance(k, guard) || !t.Value.IsInstance(v.hashVals[i], guard) {
				return false
			}
		}
		return true
	case TTuple:
		if v.Kind != KindArray {
			return false
		}
		n := int64(len(v.arr))
		from, to := t.IFrom, t.ITo
		if from == 0 && to == 0 {
			from, to = int64(len(t.Elements)), int64(len(t.Elements))
		}
		if n < from || n > to {
			return false
		}
		for i, e := range v.arr {
			var et *Type
			if i < len(t.Elements) {
				et = t.Elements[i]
			} else if len(t.Elements) > 0 {
				et = t.Elements[len(t.Elements)-1]
			} else {
				return false
			}
			if !et.IsInstance(e, guard) {
				return false
			}
		}
		return true
	case TStruct:
		return isStructInstance(t, v, guard)
	case TVariant:
		for _, a := range t.Alternatives {
			if a.IsInstance(v, guard) {
				return true
			}
		}
		return false
	case TOptional:
		return v.Kind == KindUndef || t.Elem.IsInstance(v, guard)
	case TNotUndefOf:
		return v.Kind != KindUndef && t.Elem.IsInstance(v, guard)
	case TType:
		if v.Kind != KindType {
			return false
		}
		return t.Elem.IsAssignable(v.typ, guard)
	case TResource:
		if v.Kind != KindResource {
			return false
		}
		if t.HasResourceType && !equalFold(t.ResourceTypeName, v.resourceType) {
			return false
		}
		if t.HasResourceTitle && t.ResourceTitle != v.resourceTitle {
			return false
		}
		return true
	case TClass:
		if v.Kind != KindResource || !equalFold(v.resourceType, "class") {
			return false
		}
		if t.HasClassName && !equalFold(t.ClassName, v.resourceTitle) {
			return false
		}
		return true
	case TCallable:
		return false // Callable membership is tested at call sites against an argument tuple, not a single Value; see functions.Signature.Matches.
	default:
		return false
	}
}

func isStructInstance(t *Type, v Value, guard *Guard) bool {
	if v.Kind != KindHash {
		return false
	}
	seen := make(map[string]bool, len(t.Members))
	for _, m := range t.Members {
		key := structKeyName(m.KeyType)
		seen[key] = true
		val, ok := v.HashGet(Str(key))
		if !ok {
			if m.Required {
				return false
			}
			continue
		}
		if !m.ValueType.IsInstance(val, guard) {
			return false
		}
	}
	for _, k := range v.hashKeys {
		if k.Kind != KindString || !seen[k.strVal] {
			return false
		}
	}
	return true
}

// isDataInstance implements Data ≡ Variant[Scalar, Undef, Array[Data],
// Hash[String, Data]] directly by recursion, since Data refers to itself
// through Array/Hash and no non-recursive Type value can represent that.
func isDataInstance(v Value, guard *Guard) bool {
	switch v.Kind {
	case KindUndef, KindBool, KindInteger, KindFloat, KindString, KindRegex:
		return true
	case KindArray:
		for _, e := range v.arr {
			if !isDataInstance(e, guard) {
				return false
			}
		}
		return true
	case KindHash:
		for i, k := range v.hashKeys {
			if k.Kind != KindString {
				return false
			}
			if !isDataInstance(v.hashVals[i], guard) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func regexpMatches(pattern, s string) (bool, error) {
	re, err := compileCache(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}


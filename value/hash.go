package value

// HashFromPairs builds an insertion-ordered Hash from parallel key/value
// slices. Later duplicate keys (compared with StrictEqual, the
// case-sensitive rule spec.md §4.1 requires for hash-key lookup) overwrite
// earlier ones in place, preserving the original position.
func HashFromPairs(keys, vals []Value) Value {
	h := EmptyHash()
	for i := range keys {
		h = h.HashSet(keys[i], vals[i])
	}
	return h
}

// HashSet returns a new Hash with key bound to val, preserving insertion
// order for new keys and overwriting the value in place for existing ones.
func (v Value) HashSet(key, val Value) Value {
	v.mustBe(KindHash)
	out := Value{
		Kind:     KindHash,
		hashKeys: append([]Value(nil), v.hashKeys...),
		hashVals: append([]Value(nil), v.hashVals...),
		hashIdx:  map[string]int{},
	}
	if key.Kind == KindString {
		if i, ok := v.hashIdx[key.strVal]; ok {
			out.hashVals[i] = val
			for k, i := range v.hashIdx {
				out.hashIdx[k] = i
			}
			return out
		}
	} else {
		for i, k := range out.hashKeys {
			if StrictEqual(k, key) {
				out.hashVals[i] = val
				return out
			}
		}
	}
	out.hashKeys = append(out.hashKeys, key)
	out.hashVals = append(out.hashVals, val)
	for k, i := range v.hashIdx {
		out.hashIdx[k] = i
	}
	if key.Kind == KindString {
		out.hashIdx[key.strVal] = len(out.hashKeys) - 1
	}
	return out
}

// HashGet looks up a value by key using strict (case-sensitive for
// strings) equality, per spec.md §4.1 "Hash key lookup uses case-sensitive
// string equality".
func (v Value) HashGet(key Value) (Value, bool) {
	v.mustBe(KindHash)
	if key.Kind == KindString {
		if i, ok := v.hashIdx[key.strVal]; ok {
			return v.hashVals[i], true
		}
		return Undef(), false
	}
	for i, k := range v.hashKeys {
		if StrictEqual(k, key) {
			return v.hashVals[i], true
		}
	}
	return Undef(), false
}

// HashKeys returns the keys in insertion order.
func (v Value) HashKeys() []Value {
	v.mustBe(KindHash)
	return v.hashKeys
}

// HashValues returns the values in insertion order (parallel to HashKeys).
func (v Value) HashValues() []Value {
	v.mustBe(KindHash)
	return v.hashVals
}

// HashPairs returns the (key, value) pairs in insertion order.
func (v Value) HashPairs() ([]Value, []Value) {
	v.mustBe(KindHash)
	return v.hashKeys, v.hashVals
}

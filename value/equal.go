package value

import (
	"hash/fnv"
	"math"
	"strings"
)

// LooseEqual implements the general Value equality relation of spec.md
// §3.1/§4.1: same variant required except for the (Integer, Float) pair,
// which compares by numeric value; String-String compares case-
// insensitively under Unicode case folding; Array/Hash compare
// element-wise using LooseEqual recursively; Type compares by mutual
// assignability (see Type.Equal). This is what the `==`/`!=` operators use.
func LooseEqual(a, b Value) bool {
	if a.Kind == KindInteger && b.Kind == KindFloat {
		return numericEqual(float64(a.intVal), a.intVal, true, b.fltVal)
	}
	if a.Kind == KindFloat && b.Kind == KindInteger {
		return numericEqual(float64(b.intVal), b.intVal, true, a.fltVal)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUndef:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInteger:
		return a.intVal == b.intVal
	case KindFloat:
		return a.fltVal == b.fltVal
	case KindString:
		return strings.EqualFold(a.strVal, b.strVal)
	case KindRegex:
		return a.regexSrc == b.regexSrc
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !LooseEqual(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindHash:
		if len(a.hashKeys) != len(b.hashKeys) {
			return false
		}
		for i, k := range a.hashKeys {
			bv, ok := hashLooseGet(b, k)
			if !ok || !LooseEqual(a.hashVals[i], bv) {
				return false
			}
		}
		return true
	case KindType:
		return a.typ.Equal(b.typ)
	case KindResource:
		return a.resourceType == b.resourceType && a.resourceTitle == b.resourceTitle
	case KindBreak, KindNext, KindReturn:
		return true
	default:
		return false
	}
}

// hashLooseGet scans h for a key equal to key under StrictEqual: hash key
// lookup is always case-sensitive per spec.md §4.1, even though the
// element values compared once a key is found use LooseEqual, matching
// HashGet's own case-sensitive lookup contract.
func hashLooseGet(h Value, key Value) (Value, bool) {
	for i, k := range h.hashKeys {
		if StrictEqual(k, key) {
			return h.hashVals[i], true
		}
	}
	return Undef(), false
}

// numericEqual holds iff the float is exactly representable as the
// integer value, per spec.md §3.1's Integer↔Float comparison invariant.
func numericEqual(_ float64, i int64, _ bool, f float64) bool {
	if math.Trunc(f) != f {
		return false
	}
	return int64(f) == i && float64(i) == f
}

// StrictEqual is the case-sensitive equality used internally for Hash
// key lookup (spec.md §4.1); it is not exposed as a language operator.
// It agrees with LooseEqual on every Kind except String, and with
// LooseEqual's numeric promotion rule for Integer/Float.
func StrictEqual(a, b Value) bool {
	if a.Kind == KindString && b.Kind == KindString {
		return a.strVal == b.strVal
	}
	return LooseEqual(a, b)
}

// Hash computes a hash for v that agrees with LooseEqual: LooseEqual(a,b)
// implies Hash(a) == Hash(b), satisfying spec.md §8 invariant 1.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	writeHash(h, v)
	return h.Sum64()
}

func writeHash(h interface{ Write([]byte) (int, error) }, v Value) {
	switch v.Kind {
	case KindUndef:
		h.Write([]byte{0})
	case KindBool:
		if v.boolVal {
			h.Write([]byte{1, 1})
		} else {
			h.Write([]byte{1, 0})
		}
	case KindInteger:
		writeNumericHash(h, float64(v.intVal), v.intVal, true)
	case KindFloat:
		writeNumericHash(h, v.fltVal, 0, false)
	case KindString:
		h.Write([]byte{3})
		h.Write([]byte(strings.ToLower(v.strVal)))
	case KindRegex:
		h.Write([]byte{4})
		h.Write([]byte(v.regexSrc))
	case KindArray:
		h.Write([]byte{5})
		for _, e := range v.arr {
			writeHash(h, e)
		}
	case KindHash:
		h.Write([]byte{6})
		// Order-independent: XOR each pair's combined hash together.
		var acc uint64
		for i, k := range v.hashKeys {
			acc ^= Hash(k)*31 + Hash(v.hashVals[i])
		}
		var buf [8]byte
		for i := range buf {
			buf[i] = byte(acc >> (8 * i))
		}
		h.Write(buf[:])
	case KindType:
		h.Write([]byte{7})
		h.Write([]byte(v.typ.String()))
	case KindResource:
		h.Write([]byte{8})
		h.Write([]byte(v.resourceType))
		h.Write([]byte{0})
		h.Write([]byte(v.resourceTitle))
	default:
		h.Write([]byte{9})
	}
}

// writeNumericHash hashes an Integer or a Float so that values which
// LooseEqual considers equal (an Integer and its exactly-representable
// Float) produce identical bytes.
func writeNumericHash(h interface{ Write([]byte) (int, error) }, asFloat float64, i int64, isInt bool) {
	if isInt && float64(i) == asFloat && int64(asFloat) == i {
		// exactly representable: hash the float form so the matching
		// Float value collides with it.
		h.Write([]byte{2})
		var buf [8]byte
		bits := math.Float64bits(asFloat)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
		return
	}
	if isInt {
		h.Write([]byte{2, 0xFF})
		var buf [8]byte
		for i2 := range buf {
			buf[i2] = byte(uint64(i) >> (8 * i2))
		}
		h.Write(buf[:])
		return
	}
	h.Write([]byte{2})
	var buf [8]byte
	bits := math.Float64bits(asFloat)
	for i := range buf {
		buf[i] = byte(bits >> (8 * i))
	}
	h.Write(buf[:])
}

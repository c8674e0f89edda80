package value

import "fmt"

// iterStage transforms or filters one (key, value) pair produced by an
// Iterator's traversal. Returning keep=false drops the pair without
// stopping iteration, giving `filter` its shape.
type iterStage func(key *Value, val Value) (newKey *Value, newVal Value, keep bool, err error)

// NewIterator wraps source (an Array, Hash, or another Iterator) as a
// lazy Iterator value, per spec.md §3.1 and the "Iterator as value"
// design note (§9): step and reverse describe how the *base* traversal
// walks source; further laziness is added by WithStage.
func NewIterator(source Value, step int64, reverse bool) Value {
	if step == 0 {
		step = 1
	}
	src := source
	return Value{
		Kind:        KindIterator,
		iterSource:  &src,
		iterStep:    step,
		iterReverse: reverse,
	}
}

// WithStage returns a new Iterator that applies stage after every stage
// already attached to v, without materializing the underlying sequence.
// This is what lets reverse_each(map(xs, f)) stay lazy end to end
// (spec.md §9).
func (v Value) WithStage(stage iterStage) Value {
	v.mustBe(KindIterator)
	out := v
	out.iterStages = append(append([]iterStage(nil), v.iterStages...), stage)
	return out
}

// Each drives the Iterator (or, for convenience, a bare Array/Hash) to
// completion synchronously, per spec.md §5's single-threaded cooperative
// model: yield is called once per surviving (key, value) pair in
// traversal order and must fully return before the next call, matching
// original_source/.../functions/reverse_each.cc's callback-driven shape.
// Returning (false, nil) from yield stops iteration early without error
// (used to implement `break`).
func (v Value) Each(yield func(key *Value, val Value) (cont bool, err error)) error {
	switch v.Kind {
	case KindArray, KindHash:
		return NewIterator(v, 1, false).Each(yield)
	case KindIterator:
		return v.iterate(yield)
	default:
		return fmt.Errorf("value: %s is not iterable", v.Kind)
	}
}

func (v Value) iterate(yield func(key *Value, val Value) (bool, error)) error {
	base := *v.iterSource
	apply := func(k *Value, val Value) (cont bool, err error) {
		nk, nv, keep, err := k, val, true, error(nil)
		for _, stage := range v.iterStages {
			if !keep {
				break
			}
			nk, nv, keep, err = stage(nk, nv)
			if err != nil {
				return false, err
			}
		}
		if !keep {
			return true, nil
		}
		return yield(nk, nv)
	}

	switch base.Kind {
	case KindArray:
		n := len(base.arr)
		idxs := stepIndices(n, v.iterStep, v.iterReverse)
		for _, i := range idxs {
			idx := Int(int64(i))
			cont, err := apply(&idx, base.arr[i])
			if err != nil || !cont {
				return err
			}
		}
		return nil
	case KindHash:
		n := len(base.hashKeys)
		idxs := stepIndices(n, v.iterStep, v.iterReverse)
		for _, i := range idxs {
			k := base.hashKeys[i]
			cont, err := apply(&k, base.hashVals[i])
			if err != nil || !cont {
				return err
			}
		}
		return nil
	case KindIterator:
		return base.iterate(func(k *Value, val Value) (bool, error) {
			return apply(k, val)
		})
	default:
		return fmt.Errorf("value: %s is not iterable", base.Kind)
	}
}

// stepIndices returns the sequence of element indices for an n-length
// sequence walked with the given step and direction.
func stepIndices(n int, step int64, reverse bool) []int {
	if step <= 0 {
		step = 1
	}
	var idxs []int
	if reverse {
		for i := n - 1; i >= 0; i -= int(step) {
			idxs = append(idxs, i)
		}
	} else {
		for i := 0; i < n; i += int(step) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// ToArray materializes an Iterable Value into an Array, forcing any
// pending lazy stages. Hash-shaped sources become an Array of [key,
// value] pairs, matching Puppet's `Hash.to_a`-style coercion.
func (v Value) ToArray() (Value, error) {
	var out []Value
	err := v.Each(func(k *Value, val Value) (bool, error) {
		if k != nil && v.baseIsHash() {
			out = append(out, Arr(*k, val))
		} else {
			out = append(out, val)
		}
		return true, nil
	})
	if err != nil {
		return Value{}, err
	}
	return Arr(out...), nil
}

func (v Value) baseIsHash() bool {
	if v.Kind != KindIterator {
		return false
	}
	base := *v.iterSource
	for base.Kind == KindIterator {
		base = *base.iterSource
	}
	return base.Kind == KindHash
}

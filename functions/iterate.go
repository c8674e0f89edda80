package functions

import "github.com/puppetlabs/langcore/value"

// registerIterating installs each/map/filter/reduce/reverse_each, all
// built on value.Value.Each; none of them copies the source into a Go
// slice before iterating (map and filter collect only their results).
//
// Each function has a single Callable[Iterable,1,1] entry whose handler
// checks for a block itself: without one, each and reverse_each return an
// Iterator and map, filter and reduce report an error; with one, the
// handler drives iteration and yields per block arity.
func registerIterating(t *Table) {
	iterable := value.Iterable()
	oneArg := value.Tuple([]*value.Type{iterable}, 1, 1)
	sig := value.Callable(oneArg, nil)

	t.Register("each", sig, func(ctx CallContext, args []value.Value) (value.Value, error) {
		if ctx.Block == nil {
			return value.NewIterator(args[0], 1, false), nil
		}
		err := eachWithArity(args[0], ctx.Block, false)
		return args[0], err
	})

	t.Register("reverse_each", sig, func(ctx CallContext, args []value.Value) (value.Value, error) {
		if ctx.Block == nil {
			return value.NewIterator(args[0], 1, true), nil
		}
		err := eachWithArity(args[0], ctx.Block, true)
		return args[0], err
	})

	t.Register("map", sig, func(ctx CallContext, args []value.Value) (value.Value, error) {
		if ctx.Block == nil {
			return value.Value{}, requireBlock("map")
		}
		var out []value.Value
		err := driveArity(args[0], ctx.Block, false, func(mapped value.Value) (bool, error) {
			out = append(out, mapped)
			return true, nil
		})
		if err != nil {
			return value.Value{}, err
		}
		return value.Arr(out...), nil
	})

	t.Register("filter", sig, func(ctx CallContext, args []value.Value) (value.Value, error) {
		if ctx.Block == nil {
			return value.Value{}, requireBlock("filter")
		}
		hashShaped := args[0].Kind == value.KindHash
		var outArr []value.Value
		outHash := value.EmptyHash()
		index := int64(0)
		err := args[0].Each(func(k *value.Value, v value.Value) (bool, error) {
			blockArgs := blockArguments(ctx.Block.Arity, k, v, index, hashShaped)
			index++
			keep, err := ctx.Block.Call(blockArgs)
			if err != nil {
				return false, err
			}
			if truthy(keep) {
				if hashShaped {
					outHash = outHash.HashSet(*k, v)
				} else {
					outArr = append(outArr, v)
				}
			}
			return true, nil
		})
		if err != nil {
			return value.Value{}, err
		}
		if hashShaped {
			return outHash, nil
		}
		return value.Arr(outArr...), nil
	})

	t.Register("reduce", sig, func(ctx CallContext, args []value.Value) (value.Value, error) {
		if ctx.Block == nil {
			return value.Value{}, requireBlock("reduce")
		}
		var acc value.Value
		first := true
		err := args[0].Each(func(k *value.Value, v value.Value) (bool, error) {
			if first {
				acc = v
				first = false
				return true, nil
			}
			result, err := ctx.Block.Call([]value.Value{acc, v})
			if err != nil {
				return false, err
			}
			acc = result
			return true, nil
		})
		if err != nil {
			return value.Value{}, err
		}
		if first {
			return value.Undef(), nil
		}
		return acc, nil
	})
}

func requireBlock(name string) error {
	return &noBlockError{name: name}
}

type noBlockError struct{ name string }

func (e *noBlockError) Error() string { return e.name + "() requires a block" }

func truthy(v value.Value) bool {
	switch v.Kind {
	case value.KindUndef:
		return false
	case value.KindBool:
		return v.Bool()
	default:
		return true
	}
}

// eachWithArity drives full iteration for side effect only (each/
// reverse_each with no accumulated result).
func eachWithArity(src value.Value, block *Block, reverse bool) error {
	hashShaped := src.Kind == value.KindHash
	it := value.NewIterator(src, 1, reverse)
	index := int64(0)
	return it.Each(func(k *value.Value, v value.Value) (bool, error) {
		blockArgs := blockArguments(block.Arity, k, v, index, hashShaped)
		index++
		_, err := block.Call(blockArgs)
		return err == nil, err
	})
}

// driveArity is like eachWithArity but accumulates the block's own
// return value via emit, used by map.
func driveArity(src value.Value, block *Block, reverse bool, emit func(value.Value) (bool, error)) error {
	hashShaped := src.Kind == value.KindHash
	it := value.NewIterator(src, 1, reverse)
	index := int64(0)
	return it.Each(func(k *value.Value, v value.Value) (bool, error) {
		blockArgs := blockArguments(block.Arity, k, v, index, hashShaped)
		index++
		result, err := block.Call(blockArgs)
		if err != nil {
			return false, err
		}
		return emit(result)
	})
}

// blockArguments implements spec.md §4.4's arity-sensitive yielding
// shape, grounded on original_source/.../functions/reverse_each.cc:
// arity 2 passes (key, value) for a Hash or (index, value) for an
// Array; arity 1 passes a [key, value] pair for a Hash or the bare
// value for an Array.
func blockArguments(arity int, key *value.Value, val value.Value, index int64, hashShaped bool) []value.Value {
	if arity >= 2 {
		if key != nil && hashShaped {
			return []value.Value{*key, val}
		}
		return []value.Value{value.Int(index), val}
	}
	if hashShaped && key != nil {
		return []value.Value{value.Arr(*key, val)}
	}
	return []value.Value{val}
}

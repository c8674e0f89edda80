package functions

import (
	"testing"

	"github.com/puppetlabs/langcore/value"
)

func block(arity int, call func(args []value.Value) (value.Value, error)) *Block {
	return &Block{Arity: arity, Call: call}
}

func TestEachWithoutBlockReturnsIterator(t *testing.T) {
	table := NewTable()
	v, err := table.Call("each", CallContext{}, []value.Value{value.Arr(value.Int(1), value.Int(2))})
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != value.KindIterator {
		t.Fatalf("expected an Iterator, got %s", v.TypeName())
	}
}

func TestReverseEachArityTwoYieldsIndexValue(t *testing.T) {
	// spec.md §8 end-to-end scenario 7.
	src := value.Arr(value.Int(1), value.Int(2), value.Int(3))
	var seen [][2]int64
	b := block(2, func(args []value.Value) (value.Value, error) {
		seen = append(seen, [2]int64{args[0].Int(), args[1].Int()})
		return value.Undef(), nil
	})
	table := NewTable()
	_, err := table.Call("reverse_each", CallContext{Block: b}, []value.Value{src})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]int64{{0, 3}, {1, 2}, {2, 1}}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("call %d: got %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestReverseEachArityOneYieldsBareValue(t *testing.T) {
	src := value.Arr(value.Str("a"), value.Str("b"))
	var seen []string
	b := block(1, func(args []value.Value) (value.Value, error) {
		seen = append(seen, args[0].Str())
		return value.Undef(), nil
	})
	table := NewTable()
	_, err := table.Call("reverse_each", CallContext{Block: b}, []value.Value{src})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != "b" || seen[1] != "a" {
		t.Fatalf("expected reversed bare values [b a], got %v", seen)
	}
}

func TestMapCollectsBlockResults(t *testing.T) {
	src := value.Arr(value.Int(1), value.Int(2), value.Int(3))
	b := block(1, func(args []value.Value) (value.Value, error) {
		return value.Int(args[0].Int() * 2), nil
	})
	table := NewTable()
	v, err := table.Call("map", CallContext{Block: b}, []value.Value{src})
	if err != nil {
		t.Fatal(err)
	}
	got := v.Array()
	if len(got) != 3 || got[0].Int() != 2 || got[1].Int() != 4 || got[2].Int() != 6 {
		t.Fatalf("got %v", got)
	}
}

func TestMapWithoutBlockErrors(t *testing.T) {
	table := NewTable()
	_, err := table.Call("map", CallContext{}, []value.Value{value.Arr(value.Int(1))})
	if err == nil {
		t.Fatal("expected map() with no block to error")
	}
}

func TestFilterArrayShaped(t *testing.T) {
	src := value.Arr(value.Int(1), value.Int(2), value.Int(3), value.Int(4))
	b := block(1, func(args []value.Value) (value.Value, error) {
		return value.Bool(args[0].Int()%2 == 0), nil
	})
	table := NewTable()
	v, err := table.Call("filter", CallContext{Block: b}, []value.Value{src})
	if err != nil {
		t.Fatal(err)
	}
	got := v.Array()
	if len(got) != 2 || got[0].Int() != 2 || got[1].Int() != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestFilterHashShaped(t *testing.T) {
	src := value.EmptyHash().HashSet(value.Str("a"), value.Int(1)).HashSet(value.Str("b"), value.Int(2))
	b := block(2, func(args []value.Value) (value.Value, error) {
		return value.Bool(args[1].Int() > 1), nil
	})
	table := NewTable()
	v, err := table.Call("filter", CallContext{Block: b}, []value.Value{src})
	if err != nil {
		t.Fatal(err)
	}
	keys, _ := v.HashPairs()
	if len(keys) != 1 || keys[0].Str() != "b" {
		t.Fatalf("got %v", keys)
	}
}

func TestReduceSeedsFromFirstElement(t *testing.T) {
	src := value.Arr(value.Int(1), value.Int(2), value.Int(3))
	b := block(2, func(args []value.Value) (value.Value, error) {
		return value.Int(args[0].Int() + args[1].Int()), nil
	})
	table := NewTable()
	v, err := table.Call("reduce", CallContext{Block: b}, []value.Value{src})
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != 6 {
		t.Fatalf("expected 6, got %d", v.Int())
	}
}

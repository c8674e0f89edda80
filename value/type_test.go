package value

import "testing"

func TestArrayInstanceRangeBounds(t *testing.T) {
	// spec.md §8 end-to-end scenario 10.
	ty := ArrayOf(IntegerRange(0, 10), 2, 4)
	guard := NewGuard()

	cases := []struct {
		v        Value
		expected bool
	}{
		{Arr(Int(1), Int(2), Int(3)), true},
		{Arr(Int(1), Int(2)), true},
		{Arr(Int(1)), false},
		{Arr(Int(1), Int(11)), false},
	}
	for _, c := range cases {
		if got := ty.IsInstance(c.v, guard); got != c.expected {
			t.Errorf("IsInstance(%v) = %v, want %v", c.v, got, c.expected)
		}
	}
}

func TestAssignabilityTransitivity(t *testing.T) {
	// Invariant 2 (spec.md §8): assignable(T,U) and assignable(U,V) implies assignable(T,V).
	T := Numeric()
	U := IntegerType()
	V := IntegerRange(0, 10)

	g1, g2, g3 := NewGuard(), NewGuard(), NewGuard()
	if !T.IsAssignable(U, g1) {
		t.Fatal("expected Numeric assignable from Integer")
	}
	if !U.IsAssignable(V, g2) {
		t.Fatal("expected Integer assignable from Integer[0,10]")
	}
	if !T.IsAssignable(V, g3) {
		t.Fatal("expected Numeric assignable from Integer[0,10] by transitivity")
	}
}

func TestIsInstanceAgreesWithAssignableInfer(t *testing.T) {
	// Invariant 3 (spec.md §8): is_instance(v, T) iff assignable(T, infer(v)).
	values := []Value{
		Int(5),
		Str("hello"),
		Arr(Int(1), Int(2)),
		Bool(true),
	}
	types := []*Type{Numeric(), Scalar(), Data(), ArrayType(), Any()}

	for _, v := range values {
		for _, ty := range types {
			g1 := NewGuard()
			isInstance := ty.IsInstance(v, g1)
			g2 := NewGuard()
			assignableFromInfer := ty.IsAssignable(InferType(v), g2)
			if isInstance != assignableFromInfer {
				t.Errorf("%s.IsInstance(%v)=%v but IsAssignable(infer(%v))=%v", ty, v, isInstance, v, assignableFromInfer)
			}
		}
	}
}

func TestGeneralizeIdempotent(t *testing.T) {
	// Invariant 4 (spec.md §8).
	types := []*Type{
		IntegerRange(5, 5),
		StringRange(3, 3),
		ArrayOf(IntegerRange(1, 1), 2, 2),
		Optional(IntegerRange(1, 1)),
	}
	for _, ty := range types {
		once := Generalize(ty)
		twice := Generalize(once)
		if !once.Equal(twice) {
			t.Errorf("Generalize not idempotent for %s: once=%s twice=%s", ty, once, twice)
		}
	}
}

func TestRecursiveAliasAssignabilityTerminates(t *testing.T) {
	// Invariant 7 (spec.md §8): Alias A = Array[A], Alias B = Array[B].
	a := NewAlias("A")
	a.SetBody(func() *Type { return ArrayOf(a, 0, MaxLen) })
	b := NewAlias("B")
	b.SetBody(func() *Type { return ArrayOf(b, 0, MaxLen) })

	guard := NewGuard()
	if !a.IsAssignable(b, guard) {
		t.Fatal("expected Array[A] assignable from Array[B] to terminate as true")
	}
}

func TestTypeEqualDoubleAssignableUnderSharedGuard(t *testing.T) {
	a := NewAlias("A")
	a.SetBody(func() *Type { return Variant(IntegerType(), StringType()) })
	b := NewAlias("B")
	b.SetBody(func() *Type { return Variant(StringType(), IntegerType()) })

	if !a.Equal(b) {
		t.Fatal("expected differently-ordered mutually-assignable Variant aliases to compare equal")
	}
}

func TestStructAssignability(t *testing.T) {
	target := Struct(
		StructMember{KeyType: Enum("name"), ValueType: StringType(), Required: true},
		StructMember{KeyType: Enum("age"), ValueType: IntegerType(), Required: false},
	)
	guard := NewGuard()
	ok := target.IsInstance(HashFromPairs(
		[]Value{Str("name")},
		[]Value{Str("bob")},
	), guard)
	if !ok {
		t.Fatal("expected Struct instance with only the required key to match")
	}

	guard2 := NewGuard()
	missing := target.IsInstance(EmptyHash(), guard2)
	if missing {
		t.Fatal("expected Struct instance missing a required key to fail")
	}
}

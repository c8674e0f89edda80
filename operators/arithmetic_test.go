package operators

import (
	"errors"
	"strings"
	"testing"

	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

func TestDivideByZeroInteger(t *testing.T) {
	table := NewTable()
	pos := Position{File: "site.pp", Line: 1, Column: 7}
	_, err := table.Apply(Div, Context{LeftPos: pos, RightPos: pos}, value.Int(1), value.Int(0))
	if err == nil || !strings.Contains(err.Error(), "cannot divide by zero") {
		t.Fatalf("expected a divide-by-zero error, got %v", err)
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Evaluation {
		t.Fatalf("expected an EvaluationError, got %v", err)
	}
	if derr.Pos != (diag.Position{File: "site.pp", Line: 1, Column: 7}) {
		t.Fatalf("expected the error anchored at the right operand's position, got %v", derr.Pos)
	}
}

func TestDivideMinInt64ByNegativeOneOverflows(t *testing.T) {
	table := NewTable()
	_, err := table.Apply(Div, Context{}, value.Int(-9223372036854775808), value.Int(-1))
	if err == nil || !strings.Contains(err.Error(), "overflow") {
		t.Fatalf("expected an overflow error, got %v", err)
	}
}

func TestModuloByZero(t *testing.T) {
	table := NewTable()
	_, err := table.Apply(Mod, Context{}, value.Int(5), value.Int(0))
	if err == nil || !strings.Contains(err.Error(), "cannot divide by zero") {
		t.Fatalf("expected a divide-by-zero error, got %v", err)
	}
}

func TestAddIntegerOverflow(t *testing.T) {
	table := NewTable()
	_, err := table.Apply(Add, Context{}, value.Int(9223372036854775807), value.Int(1))
	if err == nil || !strings.Contains(err.Error(), "overflow") {
		t.Fatalf("expected an overflow error, got %v", err)
	}
}

func TestAddPromotesToFloat(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Add, Context{}, value.Int(1), value.Float(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != value.KindFloat || v.Float() != 1.5 {
		t.Fatalf("expected 1.5, got %v", v)
	}
}

func TestStringConcatenation(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Add, Context{}, value.Str("foo"), value.Str("bar"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Str() != "foobar" {
		t.Fatalf("expected foobar, got %q", v.Str())
	}
}

func TestArrayConcatenation(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Add, Context{}, value.Arr(value.Int(1)), value.Arr(value.Int(2), value.Int(3)))
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", v.Len())
	}
}

func TestHashMerge(t *testing.T) {
	table := NewTable()
	l := value.EmptyHash().HashSet(value.Str("a"), value.Int(1))
	r := value.EmptyHash().HashSet(value.Str("b"), value.Int(2))
	v, err := table.Apply(Add, Context{}, l, r)
	if err != nil {
		t.Fatal(err)
	}
	keys, _ := v.HashPairs()
	if len(keys) != 2 {
		t.Fatalf("expected merged hash to have 2 keys, got %d", len(keys))
	}
}

func TestUnaryMinus(t *testing.T) {
	table := NewTable()
	v, err := table.ApplyUnary(UnaryMinus, Context{}, value.Int(5))
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != -5 {
		t.Fatalf("expected -5, got %d", v.Int())
	}
}

func TestShiftLeftAndRight(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(LShift, Context{}, value.Int(1), value.Int(4))
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != 16 {
		t.Fatalf("expected 16, got %d", v.Int())
	}
	v, err = table.Apply(RShift, Context{}, value.Int(16), value.Int(4))
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != 1 {
		t.Fatalf("expected 1, got %d", v.Int())
	}
}

package functions

import (
	"errors"
	"strings"
	"testing"

	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

func TestCallUnknownFunction(t *testing.T) {
	table := NewTable()
	pos := Position{File: "site.pp", Line: 2, Column: 1}
	_, err := table.Call("no_such_function", CallContext{Pos: pos}, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown function") {
		t.Fatalf("expected an unknown-function error, got %v", err)
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Evaluation {
		t.Fatalf("expected an EvaluationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "site.pp:2:1") {
		t.Fatalf("expected the error anchored at ctx.Pos, got %v", err)
	}
}

func TestCallNoMatchingSignatureListsAvailable(t *testing.T) {
	table := NewTable()
	_, err := table.Call("upcase", CallContext{}, []value.Value{value.Int(5)})
	if err == nil {
		t.Fatal("expected upcase(Integer) to fail to dispatch")
	}
	if !strings.Contains(err.Error(), "upcase(") {
		t.Fatalf("expected the diagnostic to list the available signature, got %v", err)
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Evaluation {
		t.Fatalf("expected an EvaluationError, got %v", err)
	}
}

func TestRegisterAddsAdditionalDispatcher(t *testing.T) {
	table := NewTable()
	table.Register("double", value.Callable(value.Tuple([]*value.Type{value.IntegerType()}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Int(args[0].Int() * 2), nil
		})
	v, err := table.Call("double", CallContext{}, []value.Value{value.Int(21)})
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != 42 {
		t.Fatalf("expected 42, got %d", v.Int())
	}
}

func TestFirstMatchingDispatcherWins(t *testing.T) {
	table := NewTable()
	any := value.Any()
	table.Register("pick", value.Callable(value.Tuple([]*value.Type{any}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Str("first"), nil
		})
	table.Register("pick", value.Callable(value.Tuple([]*value.Type{any}, 1, 1), nil),
		func(_ CallContext, args []value.Value) (value.Value, error) {
			return value.Str("second"), nil
		})
	v, err := table.Call("pick", CallContext{}, []value.Value{value.Int(1)})
	if err != nil {
		t.Fatal(err)
	}
	if v.Str() != "first" {
		t.Fatalf("expected the first-registered dispatcher to win, got %q", v.Str())
	}
}

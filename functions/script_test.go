package functions

import (
	"testing"

	"github.com/puppetlabs/langcore/value"
)

func TestRegisterScriptedEvaluatesExprSource(t *testing.T) {
	table := NewTable()
	sig := value.Callable(value.Tuple([]*value.Type{value.IntegerType(), value.IntegerType()}, 2, 2), nil)
	if err := RegisterScripted(table, "add_two", sig, "$0 + $1"); err != nil {
		t.Fatal(err)
	}

	out, err := table.Call("add_two", CallContext{}, []value.Value{value.Int(3), value.Int(4)})
	if err != nil {
		t.Fatal(err)
	}
	if out.Int() != 7 {
		t.Fatalf("expected 7, got %d", out.Int())
	}
}

func TestRegisterScriptedInvalidSourceErrors(t *testing.T) {
	table := NewTable()
	sig := value.Callable(value.Tuple(nil, 0, 0), nil)
	if err := RegisterScripted(table, "broken", sig, "$0 +++ "); err == nil {
		t.Fatal("expected a compile error for malformed expr source")
	}
}

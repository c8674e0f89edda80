package operators

import (
	"testing"

	"github.com/puppetlabs/langcore/value"
)

func TestAndOrTruthiness(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(And, Context{}, value.Bool(true), value.Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected true and 1 to be truthy")
	}
	v, err = table.Apply(Or, Context{}, value.Undef(), value.Bool(false))
	if err != nil {
		t.Fatal(err)
	}
	if v.Bool() {
		t.Fatal("expected undef or false to be falsey")
	}
}

func TestUnaryNot(t *testing.T) {
	table := NewTable()
	v, err := table.ApplyUnary(Not, Context{}, value.Undef())
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected !undef to be true")
	}
	v, err = table.ApplyUnary(Not, Context{}, value.Int(0))
	if err != nil {
		t.Fatal(err)
	}
	if v.Bool() {
		t.Fatal("expected !0 to be false, since only Undef and Bool(false) are falsey")
	}
}

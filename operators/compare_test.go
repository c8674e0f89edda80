package operators

import (
	"testing"

	"github.com/puppetlabs/langcore/value"
)

func TestCaseInsensitiveStringEquality(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Eq, Context{}, value.Str("ABC"), value.Str("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal(`expected "ABC" == "abc"`)
	}
	v, err = table.Apply(Ne, Context{}, value.Str("ABC"), value.Str("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Bool() {
		t.Fatal(`expected "ABC" != "abc" to be false`)
	}
}

func TestNumericOrdering(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Lt, Context{}, value.Int(1), value.Float(1.5))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected 1 < 1.5")
	}
}

func TestStringOrderingCaseInsensitive(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Lt, Context{}, value.Str("Apple"), value.Str("banana"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected Apple < banana case-insensitively")
	}
}

func TestInArray(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(In, Context{}, value.Int(2), value.Arr(value.Int(1), value.Int(2), value.Int(3)))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected 2 in [1,2,3]")
	}
}

func TestInHashKey(t *testing.T) {
	table := NewTable()
	h := value.EmptyHash().HashSet(value.Str("K"), value.Int(1))
	v, err := table.Apply(In, Context{}, value.Str("k"), h)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected case-insensitive key membership")
	}
}

func TestInStringSubstring(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(In, Context{}, value.Str("ell"), value.Str("Hello"))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal(`expected "ell" in "Hello"`)
	}
}

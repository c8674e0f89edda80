package operators

import (
	"testing"

	"github.com/puppetlabs/langcore/value"
)

func TestMatchStringAgainstRegex(t *testing.T) {
	table := NewTable()
	re := value.MustRegex(`^web\d+$`)
	v, err := table.Apply(Match, Context{}, value.Str("web01"), re)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected web01 to match ^web\\d+$")
	}
}

func TestMatchStringAgainstStringPattern(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Match, Context{}, value.Str("web01"), value.Str(`^web\d+$`))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected web01 to match the compiled-on-the-fly pattern")
	}
}

func TestMatchAgainstType(t *testing.T) {
	table := NewTable()
	v, err := table.Apply(Match, Context{}, value.Int(5), value.TypeVal(value.IntegerType()))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected 5 =~ Type[Integer] to be true")
	}
}

func TestNotMatchNegates(t *testing.T) {
	table := NewTable()
	re := value.MustRegex(`^db\d+$`)
	v, err := table.Apply(NotMatch, Context{}, value.Str("web01"), re)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Bool() {
		t.Fatal("expected web01 !~ ^db\\d+$ to be true")
	}
}

package functions

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/puppetlabs/langcore/value"
)

// RegisterScripted registers a function whose body is a
// github.com/expr-lang/expr expression rather than a Go closure, an
// escape hatch for functions best defined as small user-supplied
// expressions over their arguments (e.g. host-specific policy checks) --
// it never replaces the core dispatch mechanism in functions.go: the
// resulting dispatcher still goes through the same signature-matching
// Call path as every built-in.
//
// The expression sees its arguments bound to $0, $1, ... as plain Go
// values (via toGo/fromGo), and its result is converted back to a Value.
func RegisterScripted(t *Table, name string, signature *value.Type, source string) error {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("functions: compiling scripted function %q: %w", name, err)
	}
	t.Register(name, signature, scriptedHandler(program))
	return nil
}

func scriptedHandler(program *vm.Program) Handler {
	return func(_ CallContext, args []value.Value) (value.Value, error) {
		env := make(map[string]interface{}, len(args))
		for i, a := range args {
			env[fmt.Sprintf("$%d", i)] = toGo(a)
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return value.Value{}, fmt.Errorf("functions: scripted function error: %w", err)
		}
		return fromGo(out), nil
	}
}

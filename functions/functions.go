// Package functions implements the FunctionTable of spec.md §4.4: a
// function name maps to a FunctionDescriptor holding an ordered list of
// (Callable signature, handler) dispatchers, resolved by is_instance
// against the actual argument tuple.
//
// The name-to-ordered-dispatcher-list shape mirrors operators.Table,
// grounded on the same mergeop dispatch idiom (mergeop/op.go); block
// handling for the iterating functions (each/map/filter/...) is grounded
// on original_source/.../functions/reverse_each.cc's arity-sensitive
// yielding contract.
package functions

import (
	"fmt"
	"strings"

	"github.com/puppetlabs/langcore/debug"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

// Block is a closure a caller may pass to an iterating function: the
// number of parameters the block declares (Arity) plus a handler that
// evaluates the block body with its arguments bound in a fresh ephemeral
// scope.Scope frame.
type Block struct {
	Arity   int
	Call    func(args []value.Value) (value.Value, error)
}

// CallContext carries what a Handler needs beyond its positional
// arguments: the active Scope, an optional Block, and source positions
// for diagnostics, per spec.md §4.4.
type CallContext struct {
	Scope *scope.Scope
	Block *Block
	Pos   Position
}

// Position is a minimal source location (see operators.Position for why
// this is duplicated rather than imported).
type Position struct {
	File   string
	Line   int
	Column int
}

// Handler implements one dispatcher's behavior once its signature has
// matched the actual argument tuple.
type Handler func(ctx CallContext, args []value.Value) (value.Value, error)

// Dispatcher is one (signature, handler) pair. Signature is a Callable
// Type: its CallableParams is the Tuple the argument list must satisfy;
// its CallableBlock, if non-nil, constrains the block's own parameter
// arity/types (as a Callable itself), or must be nil if the function
// takes no block.
type Dispatcher struct {
	Signature *value.Type
	Handler   Handler
}

// FunctionDescriptor is one named function: an ordered list of
// dispatchers tried in registration order.
type FunctionDescriptor struct {
	Name        string
	Dispatchers []Dispatcher
}

// Table is the FunctionTable.
type Table struct {
	fns map[string]*FunctionDescriptor
}

// NewTable constructs a FunctionTable with this module's built-in
// functions registered (see iterate.go, builtins.go).
func NewTable() *Table {
	t := &Table{fns: map[string]*FunctionDescriptor{}}
	registerIterating(t)
	registerBuiltins(t)
	return t
}

// Register appends a dispatcher for name.
func (t *Table) Register(name string, signature *value.Type, h Handler) {
	d, ok := t.fns[name]
	if !ok {
		d = &FunctionDescriptor{Name: name}
		t.fns[name] = d
	}
	d.Dispatchers = append(d.Dispatchers, Dispatcher{Signature: signature, Handler: h})
}

// Lookup returns the FunctionDescriptor for name, if registered.
func (t *Table) Lookup(name string) (*FunctionDescriptor, bool) {
	d, ok := t.fns[name]
	return d, ok
}

// Call resolves and invokes name(args) [block], per spec.md §4.4's three
// numbered steps: try each dispatcher's signature against the argument
// tuple in registration order, invoke the first match, and on total
// failure report a single diagnostic listing every signature plus the
// actual argument types.
func (t *Table) Call(name string, ctx CallContext, args []value.Value) (value.Value, error) {
	d, ok := t.fns[name]
	if !ok {
		return value.Value{}, diag.Evaluationf(diagPos(ctx.Pos), "unknown function %q", name)
	}
	argTuple := value.Arr(args...)
	guard := value.NewGuard()
	for _, disp := range d.Dispatchers {
		params := disp.Signature.CallableParams
		if params == nil || !params.IsInstance(argTuple, guard) {
			continue
		}
		if disp.Signature.CallableBlock != nil && ctx.Block == nil {
			continue
		}
		if debug.Function() {
			debug.Logf("function %s matched dispatcher with %d args\n", name, len(args))
		}
		return disp.Handler(ctx, args)
	}
	return value.Value{}, diag.Evaluationf(diagPos(ctx.Pos), "%s", noMatchMessage(name, d, args))
}

// diagPos converts a functions.Position to diag.Position.
func diagPos(p Position) diag.Position {
	return diag.Position{File: p.File, Line: p.Line, Column: p.Column}
}

func noMatchMessage(name string, d *FunctionDescriptor, args []value.Value) string {
	var b strings.Builder
	fmt.Fprintf(&b, "no matching signature for %s(", name)
	argTypes := make([]string, len(args))
	for i, a := range args {
		argTypes[i] = a.TypeName()
	}
	b.WriteString(strings.Join(argTypes, ", "))
	b.WriteString("); available signatures:\n")
	for _, disp := range d.Dispatchers {
		fmt.Fprintf(&b, "  %s(%s)\n", name, disp.Signature.CallableParams.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

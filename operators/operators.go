// Package operators implements the OperatorTable of spec.md §4.3: an
// operator kind maps to an ordered list of (left-pattern, right-pattern,
// handler) entries, dispatched by first match under value.IsInstance.
//
// The ordered-table-of-typed-entries shape is grounded on the teacher's
// mergeop package (mergeop/symbol.go's symbol table and mergeop/op.go's
// dispatch loop over ordered entries); this package generalizes that
// "first matching entry wins" dispatch idiom from document-merge
// operators to the language's arithmetic/comparison/relationship
// operators.
package operators

import (
	"github.com/puppetlabs/langcore/catalog"
	"github.com/puppetlabs/langcore/debug"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

// Kind is one operator symbol, per spec.md §4.3's enumerated list.
type Kind string

const (
	Add        Kind = "+"
	Sub        Kind = "-"
	Mul        Kind = "*"
	Div        Kind = "/"
	Mod        Kind = "%"
	LShift     Kind = "<<"
	RShift     Kind = ">>"
	Eq         Kind = "=="
	Ne         Kind = "!="
	Lt         Kind = "<"
	Le         Kind = "<="
	Gt         Kind = ">"
	Ge         Kind = ">="
	And        Kind = "and"
	Or         Kind = "or"
	In         Kind = "in"
	Match      Kind = "=~"
	NotMatch   Kind = "!~"
	Before     Kind = "->"
	Notify     Kind = "~>"
	Require    Kind = "<-"
	Subscribe  Kind = "<~"
	UnaryMinus Kind = "u-"
	Not        Kind = "!"
)

// Context is what a Handler needs beyond its two operands: source
// positions for error anchoring (spec.md §4.3: "anchored to the operand
// that carries the source location of the offending side") and, for the
// relationship operators, the Catalog sink to install edges into.
type Context struct {
	LeftPos, RightPos Position
	Sink              catalog.Sink
}

// Position is a minimal source location, mirrored here so this package
// does not depend on the ast package.
type Position struct {
	File   string
	Line   int
	Column int
}

// Handler computes the result of applying an operator to two operand
// Values.
type Handler func(ctx Context, left, right value.Value) (value.Value, error)

// Entry is one typed dispatch entry: left and right operand patterns
// (unparameterized Type names per spec.md §4.3, e.g. "String",
// "Numeric", "Any") plus the Handler to invoke when both match.
type Entry struct {
	Left, Right *value.Type
	Handler     Handler
}

// Table is the OperatorTable: an operator Kind maps to its ordered list
// of dispatch Entries.
type Table struct {
	entries map[Kind][]Entry
}

// NewTable constructs an OperatorTable pre-populated with this module's
// built-in arithmetic, comparison, string, regex-match, and relationship
// operators (see arithmetic.go, compare.go, relate.go).
func NewTable() *Table {
	t := &Table{entries: map[Kind][]Entry{}}
	registerArithmetic(t)
	registerComparison(t)
	registerLogical(t)
	registerMatch(t)
	registerRelationship(t)
	return t
}

// Register appends a dispatch entry for kind, at the end of its ordered
// list (lowest priority: earlier registrations win ties).
func (t *Table) Register(kind Kind, left, right *value.Type, h Handler) {
	t.entries[kind] = append(t.entries[kind], Entry{Left: left, Right: right, Handler: h})
}

// Apply dispatches kind(left, right) through the first matching entry,
// per spec.md §4.3's "dispatch selects the first entry whose left and
// right patterns both match the actual operand types under is_instance".
func (t *Table) Apply(kind Kind, ctx Context, left, right value.Value) (value.Value, error) {
	guard := value.NewGuard()
	for _, e := range t.entries[kind] {
		if e.Left != nil && !e.Left.IsInstance(left, guard) {
			continue
		}
		if e.Right != nil && !e.Right.IsInstance(right, guard) {
			continue
		}
		if debug.Operator() {
			debug.Logf("operator %s matched (%s, %s)\n", kind, left.TypeName(), right.TypeName())
		}
		return e.Handler(ctx, left, right)
	}
	// With no match, the error anchors to the right operand when some
	// entry accepts the left one, and to the left operand otherwise.
	pos := ctx.LeftPos
	for _, e := range t.entries[kind] {
		if e.Left == nil || e.Left.IsInstance(left, guard) {
			pos = ctx.RightPos
			break
		}
	}
	return value.Value{}, diag.Evaluationf(diagPos(pos), "operator %s is not applicable to (%s, %s)", kind, left.TypeName(), right.TypeName())
}

// ApplyUnary dispatches a unary operator over a single operand, reusing
// Entry's Right slot as the operand pattern (Left is always nil for
// unary entries).
func (t *Table) ApplyUnary(kind Kind, ctx Context, operand value.Value) (value.Value, error) {
	guard := value.NewGuard()
	for _, e := range t.entries[kind] {
		if e.Right != nil && !e.Right.IsInstance(operand, guard) {
			continue
		}
		return e.Handler(ctx, value.Undef(), operand)
	}
	return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "operator %s is not applicable to (%s)", kind, operand.TypeName())
}

// diagPos converts an operators.Position to diag.Position.
func diagPos(p Position) diag.Position {
	return diag.Position{File: p.File, Line: p.Line, Column: p.Column}
}

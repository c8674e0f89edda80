// Package eval implements the Evaluator of spec.md §2/§5: it walks the
// ast contract, invokes operators.Table and functions.Table, and mutates
// registry.Registry and scope.Scope. Evaluation is single-threaded
// cooperative -- one Evaluator drives one AST to completion on one
// goroutine, matching spec.md §5.
//
// The struct-of-collaborators-plus-Options shape is grounded on the
// teacher's own eval package (eval/exec.go's Executor holding a registry
// and options) and its small-option-struct convention (match.go's
// MatchConfig/MatchOpt), rather than package-level globals.
package eval

import (
	"fmt"
	"unicode/utf8"

	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/catalog"
	"github.com/puppetlabs/langcore/debug"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/functions"
	"github.com/puppetlabs/langcore/operators"
	"github.com/puppetlabs/langcore/registry"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

// diagPos converts an ast.Position to the mirrored diag.Position, the
// shape every EvaluationError/InternalError carries per spec.md §7.
func diagPos(p ast.Position) diag.Position {
	return diag.Position{File: p.File, Line: p.Line, Column: p.Column}
}

// Options carries the evaluator's tunables, per spec.md §5's "Limits
// (recursion depth, string length, integer range) are enforced by
// explicit checks that raise evaluation errors."
type Options struct {
	// MaxRecursionDepth bounds nested function-call/lambda-block
	// evaluation depth. Zero means DefaultMaxRecursionDepth.
	MaxRecursionDepth int
	// MaxStringLength bounds the rune length of the String value any
	// expression evaluates to. Zero means unbounded.
	MaxStringLength int
	// StrictVariables makes referencing an unbound variable an
	// EvaluationError instead of yielding Undef.
	StrictVariables bool
}

// DefaultMaxRecursionDepth is used when Options.MaxRecursionDepth is 0.
const DefaultMaxRecursionDepth = 512

func (o Options) maxDepth() int {
	if o.MaxRecursionDepth <= 0 {
		return DefaultMaxRecursionDepth
	}
	return o.MaxRecursionDepth
}

// Evaluator walks an ast tree, dispatching through Operators and
// Functions, mutating Registry and the active Scope as it goes.
type Evaluator struct {
	Options   Options
	Registry  *registry.Registry
	Operators *operators.Table
	Functions *functions.Table
	Sink      catalog.Sink

	depth int
}

// New constructs an Evaluator with the built-in OperatorTable and
// FunctionTable and a fresh Registry, unless overridden by the caller
// after construction.
func New(opts Options, sink catalog.Sink) *Evaluator {
	return &Evaluator{
		Options:   opts,
		Registry:  registry.New(),
		Operators: operators.NewTable(),
		Functions: functions.NewTable(),
		Sink:      sink,
	}
}

// Eval evaluates one expression against sc, returning its Value. Control-
// flow sentinels (Break/Next/Return) are returned as ordinary Values per
// spec.md §9 ("propagate through a designated field... not the error
// channel"); callers that drive a block or loop body are responsible for
// interpreting them.
func (e *Evaluator) Eval(sc *scope.Scope, expr ast.Expression) (result value.Value, err error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.Options.maxDepth() {
		return value.Value{}, diag.Evaluationf(diagPos(expr.Pos()), "evaluation exceeded maximum recursion depth of %d", e.Options.maxDepth())
	}
	if limit := e.Options.MaxStringLength; limit > 0 {
		defer func() {
			if err == nil && result.Kind == value.KindString && utf8.RuneCountInString(result.Str()) > limit {
				result, err = value.Value{}, diag.Evaluationf(diagPos(expr.Pos()), "string length exceeds the maximum of %d characters", limit)
			}
		}()
	}
	if debug.Eval() {
		debug.Logf("eval %T at %s\n", expr, formatPos(expr.Pos()))
	}

	switch node := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(node)
	case *ast.VariableAccess:
		return e.evalVariableAccess(sc, node)
	case *ast.BinaryOp:
		return e.evalBinaryOp(sc, node)
	case *ast.UnaryOp:
		return e.evalUnaryOp(sc, node)
	case *ast.MatchOp:
		return e.evalMatchOp(sc, node)
	case *ast.FunctionCall:
		return e.evalFunctionCall(sc, node)
	case *ast.IfExpr:
		return e.evalIf(sc, node)
	case *ast.CaseExpr:
		return e.evalCase(sc, node)
	case *ast.SelectorExpr:
		return e.evalSelector(sc, node)
	case *ast.Block:
		return e.evalBlock(sc, node, nil)
	case *ast.ResourceDeclaration:
		return e.evalResourceDeclaration(sc, node)
	case *ast.ResourceCollector:
		return value.Value{}, diag.Evaluationf(diagPos(node.Pos()), "resource collector queries are not evaluated by this module")
	default:
		return value.Value{}, diag.Internalf(diagPos(expr.Pos()), "unrecognised expression node %T", expr)
	}
}

func formatPos(p ast.Position) string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

func (e *Evaluator) evalLiteral(l *ast.Literal) (value.Value, error) {
	switch l.Kind {
	case ast.LiteralUndef:
		return value.Undef(), nil
	case ast.LiteralBool:
		return value.Bool(l.Raw.(bool)), nil
	case ast.LiteralInteger:
		return value.Int(l.Raw.(int64)), nil
	case ast.LiteralFloat:
		return value.Float(l.Raw.(float64)), nil
	case ast.LiteralString:
		return value.Str(l.Raw.(string)), nil
	case ast.LiteralRegex:
		v, err := value.Regex(l.Raw.(string))
		if err != nil {
			return value.Value{}, diag.Wrap(diag.Evaluation, diagPos(l.Pos()), err, "invalid regex literal")
		}
		return v, nil
	case ast.LiteralTypeName:
		t, err := value.ParseTypeName(l.Raw.(string))
		if err != nil {
			return value.Value{}, diag.Wrap(diag.Evaluation, diagPos(l.Pos()), err, "invalid type name literal")
		}
		return value.TypeVal(t), nil
	default:
		return value.Value{}, diag.Internalf(diagPos(l.Pos()), "unrecognised literal kind %v", l.Kind)
	}
}

func (e *Evaluator) evalVariableAccess(sc *scope.Scope, v *ast.VariableAccess) (value.Value, error) {
	val, ok := sc.Lookup(v.Name)
	if !ok && e.Options.StrictVariables {
		return value.Value{}, diag.Evaluationf(diagPos(v.Pos()), "unknown variable '$%s'", v.Name)
	}
	return val, nil
}

func (e *Evaluator) evalUnaryOp(sc *scope.Scope, u *ast.UnaryOp) (value.Value, error) {
	operand, err := e.Eval(sc, u.Operand)
	if err != nil {
		return value.Value{}, err
	}
	kind := operators.Kind(u.Op)
	if kind == operators.Sub {
		kind = operators.UnaryMinus
	}
	pos := opPosition(u.Pos())
	return e.Operators.ApplyUnary(kind, operators.Context{LeftPos: pos, RightPos: pos, Sink: e.Sink}, operand)
}

func (e *Evaluator) evalBinaryOp(sc *scope.Scope, b *ast.BinaryOp) (value.Value, error) {
	left, err := e.Eval(sc, b.Left)
	if err != nil {
		return value.Value{}, err
	}
	// `and`/`or` short-circuit and must not evaluate the right operand
	// unnecessarily.
	kind := operators.Kind(b.Op)
	if kind == operators.And && !truthy(left) {
		return value.Bool(false), nil
	}
	if kind == operators.Or && truthy(left) {
		return value.Bool(true), nil
	}
	right, err := e.Eval(sc, b.Right)
	if err != nil {
		return value.Value{}, err
	}
	ctx := operators.Context{LeftPos: opPosition(b.Left.Pos()), RightPos: opPosition(b.Right.Pos()), Sink: e.Sink}
	return e.Operators.Apply(kind, ctx, left, right)
}

func (e *Evaluator) evalMatchOp(sc *scope.Scope, m *ast.MatchOp) (value.Value, error) {
	left, err := e.Eval(sc, m.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.Eval(sc, m.Right)
	if err != nil {
		return value.Value{}, err
	}
	kind := operators.Match
	if m.Negate {
		kind = operators.NotMatch
	}
	ctx := operators.Context{LeftPos: opPosition(m.Left.Pos()), RightPos: opPosition(m.Right.Pos()), Sink: e.Sink}
	result, err := e.Operators.Apply(kind, ctx, left, right)
	if err != nil {
		return value.Value{}, err
	}
	if !m.Negate && result.Bool() && right.Kind == value.KindRegex {
		bindCaptures(sc, right.Regexp(), left.Str())
	}
	return result, nil
}

func bindCaptures(sc *scope.Scope, re interface {
	FindStringSubmatch(string) []string
}, s string) {
	groups := re.FindStringSubmatch(s)
	for i, g := range groups {
		sc.SetMatchCapture(i, value.Str(g))
	}
}

func truthy(v value.Value) bool {
	switch v.Kind {
	case value.KindUndef:
		return false
	case value.KindBool:
		return v.Bool()
	default:
		return true
	}
}

func opPosition(p ast.Position) operators.Position {
	return operators.Position{File: p.File, Line: p.Line, Column: p.Column}
}

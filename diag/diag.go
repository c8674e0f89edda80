// Package diag implements the error taxonomy of spec.md §7: ParseError
// (pass-through), EvaluationError, DeclarationError, CatalogError, and
// InternalError, each reported with a source position in the
// `"<message> at <file>:<line>:<column>"` shape spec.md mandates.
//
// Wrapping/unwrapping follows the teacher's use of github.com/pkg/errors
// (grounded on the teacher's go.mod requiring it for ir's error chains);
// terminal-aware colorization of rendered diagnostics uses
// github.com/fatih/color gated by github.com/mattn/go-isatty, matching
// how CLI tools in the retrieval pack (e.g. the daios agent's status
// output) decide whether to emit ANSI escapes.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Kind distinguishes the five members of spec.md §7's error taxonomy.
type Kind uint8

const (
	Parse Kind = iota
	Evaluation
	Declaration
	Catalog
	Internal
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case Evaluation:
		return "EvaluationError"
	case Declaration:
		return "DeclarationError"
	case Catalog:
		return "CatalogError"
	case Internal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Position is a source location, mirrored from ast.Position so this
// package does not need to import the AST contract.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" && p.Line == 0 && p.Column == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Error is a single diagnostic: a Kind, a message, a source Position,
// and an optional wrapped cause (from github.com/pkg/errors, giving
// Cause() and stack-trace-carrying Wrap semantics).
type Error struct {
	Kind    Kind
	Message string
	Pos     Position
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause returns the innermost wrapped error, via github.com/pkg/errors.
func (e *Error) Cause() error {
	if e.cause == nil {
		return e
	}
	return errors.Cause(e.cause)
}

// New constructs a diagnostic of the given kind at pos.
func New(kind Kind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Wrap constructs a diagnostic that wraps an underlying error (typically
// a *ParseError from the AST collaborator, propagated as-is per spec.md
// §7), preserving it as the Cause chain via github.com/pkg/errors.Wrap.
func Wrap(kind Kind, pos Position, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		cause:   errors.Wrap(cause, fmt.Sprintf(format, args...)),
	}
}

// Evaluationf is a convenience constructor for the most common taxonomy
// member: wrong operand type, division by zero, arithmetic
// overflow/underflow, out-of-range length, unknown variable, unknown
// function, no matching signature, or an assignability violation.
func Evaluationf(pos Position, format string, args ...interface{}) *Error {
	return New(Evaluation, pos, format, args...)
}

// Declarationf reports a duplicate class/defined-type/alias or a
// malformed name.
func Declarationf(pos Position, format string, args ...interface{}) *Error {
	return New(Declaration, pos, format, args...)
}

// Catalogf reports a duplicate resource declaration or an unresolved
// relationship target.
func Catalogf(pos Position, format string, args ...interface{}) *Error {
	return New(Catalog, pos, format, args...)
}

// Internalf reports a broken invariant. Per spec.md §7 this always
// indicates a bug in this module, never in user input.
func Internalf(pos Position, format string, args ...interface{}) *Error {
	return New(Internal, pos, format, args...)
}

// useColor reports whether w should receive ANSI color codes: only when
// w is an *os.File attached to a terminal, checked via
// github.com/mattn/go-isatty, matching the teacher's terminal-detection
// idiom for its own status output.
func useColor(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Fprint renders a diagnostic to w, colorizing the "<kind>" tag when w is
// a terminal.
func Fprint(w io.Writer, e *Error) {
	tag := e.Kind.String()
	if useColor(w) {
		c := color.New(color.FgRed, color.Bold)
		if e.Kind == Internal {
			c = color.New(color.FgMagenta, color.Bold)
		}
		tag = c.Sprint(tag)
	}
	fmt.Fprintf(w, "%s: %s\n", tag, e.Error())
}

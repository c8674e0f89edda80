package eval

import (
	"fmt"

	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/registry"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

// Declare harvests every class/defined-type/node/type-alias Statement
// from stmts into e.Registry, per spec.md §5's "the Registry is mutated
// only during the declaration-collection phase". Every duplicate found
// is aggregated (via registry.RegisterAll's multierr use for
// classes/defined-types/aliases, and explicit checks here for nodes,
// since RegisterNode never itself errors per spec.md §3.3) into a single
// returned error rather than stopping at the first.
func (e *Evaluator) Declare(stmts []ast.Statement) error {
	var classes []struct {
		Name string
		Stmt ast.ClassStatement
	}
	var definedTypes []struct {
		Name string
		Stmt ast.DefinedTypeStatement
	}
	var aliases []struct {
		Name string
		Stmt ast.TypeAliasStatement
	}
	var nodeErrs []error

	for _, s := range stmts {
		switch stmt := s.(type) {
		case *ast.ClassStatement:
			classes = append(classes, struct {
				Name string
				Stmt ast.ClassStatement
			}{stmt.Name, *stmt})
		case *ast.DefinedTypeStatement:
			definedTypes = append(definedTypes, struct {
				Name string
				Stmt ast.DefinedTypeStatement
			}{stmt.Name, *stmt})
		case *ast.TypeAliasStatement:
			aliases = append(aliases, struct {
				Name string
				Stmt ast.TypeAliasStatement
			}{stmt.Name, *stmt})
		case *ast.NodeStatement:
			if err := e.declareNode(stmt); err != nil {
				nodeErrs = append(nodeErrs, err)
			}
		default:
			return diag.Internalf(diagPos(s.Pos()), "unrecognised top-level statement %T", s)
		}
	}

	err := e.Registry.RegisterAll(classes, definedTypes, aliases)
	for _, nerr := range nodeErrs {
		err = appendErr(err, nerr)
	}

	// Attach a lazily-resolving Type to every alias that registered
	// successfully, so mutually recursive aliases can reference each
	// other via the Registry before any one body is fully evaluated.
	top := scope.NewTop()
	for _, a := range aliases {
		if rec, ok := e.Registry.FindTypeAlias(a.Name); ok && rec.Type == nil {
			rec.Type = e.resolveAliasType(top, a.Name, a.Stmt.Body)
		}
	}
	return err
}

func appendErr(base, next error) error {
	if base == nil {
		return next
	}
	if next == nil {
		return base
	}
	return fmt.Errorf("%w; %v", base, next)
}

// declareNode registers a node statement. Per spec.md §3.3 the registry
// layer never errors on a duplicate node; a non-nil previous definition
// is what the evaluator, as the caller, turns into a DeclarationError.
func (e *Evaluator) declareNode(stmt *ast.NodeStatement) error {
	def := &registry.NodeDefinition{Statement: *stmt}
	previous := e.Registry.RegisterNode(def, stmt.Hostnames, stmt.Patterns, stmt.Default)
	if previous != nil {
		return diag.Declarationf(diagPos(stmt.Pos()), "node definition already declared at %s", formatPos(previous.Statement.Pos()))
	}
	return nil
}

// resolveAliasType lazily evaluates a registered type alias's body
// expression to a *value.Type, attaching a resolver via value.NewAlias/
// SetBody rather than evaluating eagerly, so mutually recursive aliases
// (spec.md §9 "Recursive type graphs") can reference each other before
// either body is fully known.
func (e *Evaluator) resolveAliasType(sc *scope.Scope, name string, body ast.Expression) *value.Type {
	alias := value.NewAlias(name)
	alias.SetBody(func() *value.Type {
		v, err := e.Eval(sc, body)
		if err != nil || v.Kind != value.KindType {
			return value.Any()
		}
		return v.Type()
	})
	return alias
}

// Package registry implements the name-indexed repository of user
// declarations described by spec.md §3.3/§4.5: classes, defined types,
// type aliases, and node definitions harvested from the AST during
// evaluation.
//
// The map+mutex Register/Lookup shape is grounded on the teacher's
// schema.Register/schema.Lookup (schema/registry.go) and
// eval.Register/eval.Lookup (eval/register.go); the three-structure node
// index (ordered list, literal-name map, regex list, default index) and
// the "duplicate node registration returns the previous definition
// instead of erroring" contract are grounded on
// original_source/.../compiler/registry.hpp's register_node/find_node.
package registry

import (
	"regexp"
	"sync"

	"go.uber.org/multierr"

	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/debug"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

func diagPos(p ast.Position) diag.Position {
	return diag.Position{File: p.File, Line: p.Line, Column: p.Column}
}

// Class is a registered class declaration.
type Class struct {
	Name      string
	Statement ast.ClassStatement
}

// DefinedType is a registered defined-type declaration.
type DefinedType struct {
	Name      string
	Statement ast.DefinedTypeStatement
}

// TypeAlias is a registered user type alias.
type TypeAlias struct {
	Name      string
	Statement ast.TypeAliasStatement
	Type      *value.Type // populated once the alias body is evaluated
}

// NodeDefinition is a registered `node` statement.
type NodeDefinition struct {
	Statement ast.NodeStatement
}

// Registry owns, by fully-qualified name, every class/defined-type/alias
// declaration harvested from an AST, plus the node-definition index of
// spec.md §3.3.
type Registry struct {
	mu sync.RWMutex

	classes      map[string]*Class
	definedTypes map[string]*DefinedType
	aliases      map[string]*TypeAlias

	nodes        []*NodeDefinition
	namedNodes   map[string]int
	regexNodes   []regexNodeEntry
	defaultIndex int // -1 if none
}

type regexNodeEntry struct {
	pattern *regexp.Regexp
	index   int
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{
		classes:      map[string]*Class{},
		definedTypes: map[string]*DefinedType{},
		aliases:      map[string]*TypeAlias{},
		namedNodes:   map[string]int{},
		defaultIndex: -1,
	}
}

var classNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(::[a-z][a-z0-9_]*)*$`)
var aliasNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(::[A-Z][A-Za-z0-9_]*)*$`)

// RegisterClass registers a class declaration, per spec.md §4.5's naming
// rule and duplicate-is-an-error contract.
func (r *Registry) RegisterClass(name string, stmt ast.ClassStatement) error {
	lower := lowerName(name)
	if !classNamePattern.MatchString(lower) {
		return diag.Wrap(diag.Declaration, diagPos(stmt.Pos()), ErrMalformedName, "%q is not a valid class name", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[lower]; exists {
		return diag.Wrap(diag.Declaration, diagPos(stmt.Pos()), ErrDuplicate, "class %q is already defined", name)
	}
	if debug.Registry() {
		debug.Logf("registering class %q\n", lower)
	}
	r.classes[lower] = &Class{Name: lower, Statement: stmt}
	return nil
}

// FindClass looks up a class by fully-qualified name (case-folded).
func (r *Registry) FindClass(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[lowerName(name)]
	return c, ok
}

// RegisterDefinedType registers a defined-type declaration.
func (r *Registry) RegisterDefinedType(name string, stmt ast.DefinedTypeStatement) error {
	lower := lowerName(name)
	if !classNamePattern.MatchString(lower) {
		return diag.Wrap(diag.Declaration, diagPos(stmt.Pos()), ErrMalformedName, "%q is not a valid defined type name", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definedTypes[lower]; exists {
		return diag.Wrap(diag.Declaration, diagPos(stmt.Pos()), ErrDuplicate, "defined type %q is already defined", name)
	}
	if debug.Registry() {
		debug.Logf("registering defined type %q\n", lower)
	}
	r.definedTypes[lower] = &DefinedType{Name: lower, Statement: stmt}
	return nil
}

// FindDefinedType looks up a defined type by fully-qualified name.
func (r *Registry) FindDefinedType(name string) (*DefinedType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.definedTypes[lowerName(name)]
	return d, ok
}

// RegisterTypeAlias registers a user type alias declaration.
func (r *Registry) RegisterTypeAlias(name string, stmt ast.TypeAliasStatement) (*TypeAlias, error) {
	if !aliasNamePattern.MatchString(name) {
		return nil, diag.Wrap(diag.Declaration, diagPos(stmt.Pos()), ErrMalformedName, "%q is not a valid type alias name", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.aliases[name]; exists {
		return nil, diag.Wrap(diag.Declaration, diagPos(stmt.Pos()), ErrDuplicate, "type alias %q is already defined", name)
	}
	if debug.Registry() {
		debug.Logf("registering type alias %q\n", name)
	}
	a := &TypeAlias{Name: name, Statement: stmt}
	r.aliases[name] = a
	return a, nil
}

// FindTypeAlias looks up a type alias by name.
func (r *Registry) FindTypeAlias(name string) (*TypeAlias, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.aliases[name]
	return a, ok
}

// RegisterNode registers a node definition. Per spec.md §3.3, a second
// registration under the same literal hostname is never an error at this
// layer: RegisterNode returns the previous definition for the caller
// (the evaluator) to report as a DeclarationError, mirroring
// original_source/.../compiler/registry.hpp's register_node contract.
func (r *Registry) RegisterNode(def *NodeDefinition, hostnames []string, regexes []string, isDefault bool) (previous *NodeDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range hostnames {
		if idx, ok := r.namedNodes[h]; ok {
			return r.nodes[idx]
		}
	}
	if isDefault && r.defaultIndex >= 0 {
		return r.nodes[r.defaultIndex]
	}

	index := len(r.nodes)
	r.nodes = append(r.nodes, def)
	for _, h := range hostnames {
		r.namedNodes[h] = index
	}
	for _, pat := range regexes {
		if re, err := regexp.Compile(pat); err == nil {
			r.regexNodes = append(r.regexNodes, regexNodeEntry{pattern: re, index: index})
		}
	}
	if isDefault {
		r.defaultIndex = index
	}
	if debug.Registry() {
		debug.Logf("registering node definition (index=%d, hostnames=%v, default=%v)\n", index, hostnames, isDefault)
	}
	return nil
}

// FindNode resolves the node definition matching hostname per spec.md
// §4.5's match order: literal name, then regex patterns in registration
// order, then the default node. The returned string is the name that
// actually matched (the hostname itself for a literal match, the
// matched substring for a regex, or "default"), per
// original_source/.../compiler/registry.hpp's find_node returning
// pair<node_definition const*, string>.
func (r *Registry) FindNode(hostname string) (*NodeDefinition, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx, ok := r.namedNodes[hostname]; ok {
		return r.nodes[idx], hostname, true
	}
	for _, entry := range r.regexNodes {
		if loc := entry.pattern.FindStringIndex(hostname); loc != nil {
			return r.nodes[entry.index], hostname[loc[0]:loc[1]], true
		}
	}
	if r.defaultIndex >= 0 {
		return r.nodes[r.defaultIndex], "default", true
	}
	return nil, "", false
}

// HasNodes reports whether any node definition has been registered.
func (r *Registry) HasNodes() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes) > 0
}

// RegisterAll registers a batch of harvested declarations from a single
// AST, aggregating every DeclarationError encountered (rather than
// stopping at the first) via go.uber.org/multierr, so a host can report
// every duplicate in one pass.
func (r *Registry) RegisterAll(classes []struct {
	Name string
	Stmt ast.ClassStatement
}, definedTypes []struct {
	Name string
	Stmt ast.DefinedTypeStatement
}, aliases []struct {
	Name string
	Stmt ast.TypeAliasStatement
}) error {
	var err error
	for _, c := range classes {
		err = multierr.Append(err, r.RegisterClass(c.Name, c.Stmt))
	}
	for _, d := range definedTypes {
		err = multierr.Append(err, r.RegisterDefinedType(d.Name, d.Stmt))
	}
	for _, a := range aliases {
		_, aerr := r.RegisterTypeAlias(a.Name, a.Stmt)
		err = multierr.Append(err, aerr)
	}
	return err
}

func lowerName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Package catalog defines the sink relationship operators write into, per
// spec.md's "Catalog contract": add_resource/add_edge. Catalog emission,
// serialization, and network I/O are explicitly out of scope (spec.md
// Non-goals); this package supplies only the narrow interface the
// operators package needs plus a minimal in-memory Sink for tests,
// grounded on the teacher's small in-package test doubles pattern
// (e.g. schema/registry_test.go's fake lookups).
package catalog

import "fmt"

// EdgeKind is one of the four relationship kinds spec.md lists for the
// `-> ~> <- <~` operators.
type EdgeKind uint8

const (
	Before EdgeKind = iota
	Notify
	Subscribe
	Require
)

func (k EdgeKind) String() string {
	switch k {
	case Before:
		return "before"
	case Notify:
		return "notify"
	case Subscribe:
		return "subscribe"
	case Require:
		return "require"
	default:
		return "unknown"
	}
}

// Position mirrors the source position the AST layer guarantees on every
// expression (spec.md's AST consumer contract), reported alongside every
// added resource for diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Edge is a single relationship between two resource references.
type Edge struct {
	Source Ref
	Target Ref
	Kind   EdgeKind
}

// Ref identifies a resource by (type, title), matching value.Value's
// Resource variant.
type Ref struct {
	Type  string
	Title string
}

func (r Ref) String() string { return fmt.Sprintf("%s[%s]", r.Type, r.Title) }

// Sink is the write-only interface the operators package targets when
// evaluating a resource declaration or a relationship operator. It is
// intentionally minimal: this module does not specify catalog storage
// layout (spec.md Non-goals).
type Sink interface {
	AddResource(ref Ref, params map[string]interface{}, pos Position) error
	AddEdge(edge Edge) error
}

// MemSink is a minimal in-memory Sink, sufficient for exercising the
// operators/functions/eval packages in tests without a real catalog
// compiler.
type MemSink struct {
	Resources []Resource
	Edges     []Edge

	seen map[Ref]bool
}

// Resource is one recorded AddResource call.
type Resource struct {
	Ref    Ref
	Params map[string]interface{}
	Pos    Position
}

// NewMemSink constructs an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{seen: map[Ref]bool{}}
}

// AddResource records a resource declaration. A duplicate (type, title)
// pair is a CatalogError per spec.md's error taxonomy.
func (s *MemSink) AddResource(ref Ref, params map[string]interface{}, pos Position) error {
	if s.seen[ref] {
		return fmt.Errorf("catalog: duplicate resource declaration %s at %s", ref, pos)
	}
	s.seen[ref] = true
	s.Resources = append(s.Resources, Resource{Ref: ref, Params: params, Pos: pos})
	return nil
}

// AddEdge records a relationship edge. An edge whose endpoint was never
// declared is a CatalogError ("unresolved relationship target") per
// spec.md, reported here rather than at insertion time since forward
// references across a catalog compile are legal; this Sink is a test
// double and does not implement resolve-at-close.
func (s *MemSink) AddEdge(edge Edge) error {
	s.Edges = append(s.Edges, edge)
	return nil
}

// HasResource reports whether ref has been added, used by tests and by a
// resolve-at-close pass to detect unresolved relationship targets.
func (s *MemSink) HasResource(ref Ref) bool {
	return s.seen[ref]
}

// UnresolvedEdges returns every recorded edge whose source or target was
// never declared as a resource.
func (s *MemSink) UnresolvedEdges() []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if !s.seen[e.Source] || !s.seen[e.Target] {
			out = append(out, e)
		}
	}
	return out
}

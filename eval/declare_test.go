package eval

import (
	"strings"
	"testing"

	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/catalog"
)

func TestDeclareDuplicateClassReturnsError(t *testing.T) {
	// spec.md §8 end-to-end scenario 8.
	e := New(Options{}, catalog.NewMemSink())
	stmts := []ast.Statement{
		&ast.ClassStatement{Name: "apache"},
		&ast.ClassStatement{Name: "apache"},
	}
	err := e.Declare(stmts)
	if err == nil {
		t.Fatal("expected declaring the same class twice to error")
	}
	if !strings.Contains(err.Error(), "apache") {
		t.Fatalf("expected the error to name the duplicate class, got %v", err)
	}
}

func TestDeclareRegistersClassAndDefinedType(t *testing.T) {
	e := New(Options{}, catalog.NewMemSink())
	stmts := []ast.Statement{
		&ast.ClassStatement{Name: "apache"},
		&ast.DefinedTypeStatement{Name: "motd::entry"},
	}
	if err := e.Declare(stmts); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Registry.FindClass("apache"); !ok {
		t.Fatal("expected apache to be registered")
	}
	if _, ok := e.Registry.FindDefinedType("motd::entry"); !ok {
		t.Fatal("expected motd::entry to be registered")
	}
}

func TestDeclareDuplicateNodeReturnsError(t *testing.T) {
	e := New(Options{}, catalog.NewMemSink())
	stmts := []ast.Statement{
		&ast.NodeStatement{Hostnames: []string{"web01"}},
		&ast.NodeStatement{Hostnames: []string{"web01"}},
	}
	err := e.Declare(stmts)
	if err == nil {
		t.Fatal("expected declaring the same node hostname twice to error")
	}
}

func TestDeclareResolvesTypeAliases(t *testing.T) {
	e := New(Options{}, catalog.NewMemSink())
	// Alias A = String; Alias B = Integer
	stmts := []ast.Statement{
		&ast.TypeAliasStatement{
			Name: "A",
			Body: &ast.Literal{Kind: ast.LiteralTypeName, Raw: "String"},
		},
		&ast.TypeAliasStatement{
			Name: "B",
			Body: &ast.Literal{Kind: ast.LiteralTypeName, Raw: "Integer"},
		},
	}
	if err := e.Declare(stmts); err != nil {
		t.Fatal(err)
	}
	a, ok := e.Registry.FindTypeAlias("A")
	if !ok || a.Type == nil {
		t.Fatal("expected alias A to have a resolved Type after Declare")
	}
}

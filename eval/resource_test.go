package eval

import (
	"testing"

	"github.com/puppetlabs/langcore/ast"
	"github.com/puppetlabs/langcore/catalog"
	"github.com/puppetlabs/langcore/scope"
	"github.com/puppetlabs/langcore/value"
)

func TestEvalResourceDeclarationSendsToSink(t *testing.T) {
	sink := catalog.NewMemSink()
	e := New(Options{}, sink)
	sc := scope.NewTop()
	decl := &ast.ResourceDeclaration{
		TypeName: "File",
		Titles:   []ast.Expression{&ast.Literal{Kind: ast.LiteralString, Raw: "/etc/motd"}},
		Params: []ast.ResourceParam{
			{Key: "ensure", Value: &ast.Literal{Kind: ast.LiteralString, Raw: "present"}},
		},
	}
	v, err := e.Eval(sc, decl)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != value.KindResource || v.ResourceTitle() != "/etc/motd" {
		t.Fatalf("expected a single Resource value, got %v", v)
	}
	if len(sink.Resources) != 1 {
		t.Fatalf("expected exactly one resource sent to the sink, got %d", len(sink.Resources))
	}
	if sink.Resources[0].Params["ensure"].(value.Value).Str() != "present" {
		t.Fatalf("expected the ensure param to be recorded, got %v", sink.Resources[0].Params)
	}
}

func TestEvalResourceDeclarationMultipleTitlesReturnsArray(t *testing.T) {
	sink := catalog.NewMemSink()
	e := New(Options{}, sink)
	sc := scope.NewTop()
	decl := &ast.ResourceDeclaration{
		TypeName: "File",
		Titles: []ast.Expression{
			&ast.Literal{Kind: ast.LiteralString, Raw: "/a"},
			&ast.Literal{Kind: ast.LiteralString, Raw: "/b"},
		},
	}
	v, err := e.Eval(sc, decl)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != value.KindArray || v.Len() != 2 {
		t.Fatalf("expected an Array of 2 Resources, got %v", v)
	}
}

func TestEvalResourceDeclarationRequiresSink(t *testing.T) {
	e := New(Options{}, nil)
	sc := scope.NewTop()
	decl := &ast.ResourceDeclaration{
		TypeName: "File",
		Titles:   []ast.Expression{&ast.Literal{Kind: ast.LiteralString, Raw: "/a"}},
	}
	_, err := e.Eval(sc, decl)
	if err == nil {
		t.Fatal("expected evaluating a resource declaration with no sink to error")
	}
}

func TestEvalResourceDeclarationNonStringTitleErrors(t *testing.T) {
	sink := catalog.NewMemSink()
	e := New(Options{}, sink)
	sc := scope.NewTop()
	decl := &ast.ResourceDeclaration{
		TypeName: "File",
		Titles:   []ast.Expression{&ast.Literal{Kind: ast.LiteralInteger, Raw: int64(5)}},
	}
	_, err := e.Eval(sc, decl)
	if err == nil {
		t.Fatal("expected a non-String title to error")
	}
}

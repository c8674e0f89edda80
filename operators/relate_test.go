package operators

import (
	"errors"
	"testing"

	"github.com/puppetlabs/langcore/catalog"
	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

func TestBeforeInstallsEdge(t *testing.T) {
	table := NewTable()
	sink := catalog.NewMemSink()
	ctx := Context{Sink: sink}
	a := value.Resource("File", "/tmp/a")
	b := value.Resource("File", "/tmp/b")

	result, err := table.Apply(Before, ctx, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if result.ResourceTitle() != "/tmp/b" {
		t.Fatalf("expected chaining to return the right operand, got %v", result)
	}
	if len(sink.Edges) != 1 {
		t.Fatalf("expected exactly one edge, got %d", len(sink.Edges))
	}
	edge := sink.Edges[0]
	if edge.Kind != catalog.Before || edge.Source.Title != "/tmp/a" || edge.Target.Title != "/tmp/b" {
		t.Fatalf("unexpected edge: %+v", edge)
	}
}

func TestRequireReversesDirection(t *testing.T) {
	table := NewTable()
	sink := catalog.NewMemSink()
	ctx := Context{Sink: sink}
	a := value.Resource("File", "/tmp/a")
	b := value.Resource("File", "/tmp/b")

	if _, err := table.Apply(Require, ctx, a, b); err != nil {
		t.Fatal(err)
	}
	edge := sink.Edges[0]
	if edge.Source.Title != "/tmp/b" || edge.Target.Title != "/tmp/a" {
		t.Fatalf("expected <- to point from right to left, got %+v", edge)
	}
}

func TestRelationshipCrossProductsArrays(t *testing.T) {
	table := NewTable()
	sink := catalog.NewMemSink()
	ctx := Context{Sink: sink}
	left := value.Arr(value.Resource("File", "a"), value.Resource("File", "b"))
	right := value.Arr(value.Resource("File", "c"), value.Resource("File", "d"))

	if _, err := table.Apply(Notify, ctx, left, right); err != nil {
		t.Fatal(err)
	}
	if len(sink.Edges) != 4 {
		t.Fatalf("expected 4 cross-product edges, got %d", len(sink.Edges))
	}
}

func TestRelationshipRequiresSink(t *testing.T) {
	table := NewTable()
	a := value.Resource("File", "a")
	b := value.Resource("File", "b")
	_, err := table.Apply(Before, Context{}, a, b)
	if err == nil {
		t.Fatal("expected an error when no catalog sink is attached")
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Internal {
		t.Fatalf("expected an InternalError, got %v", err)
	}
}

func TestRelationshipNonResourceOperandErrors(t *testing.T) {
	table := NewTable()
	sink := catalog.NewMemSink()
	ctx := Context{Sink: sink}
	_, err := table.Apply(Before, ctx, value.Int(1), value.Resource("File", "a"))
	if err == nil {
		t.Fatal("expected a non-Resource left operand to error")
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Evaluation {
		t.Fatalf("expected an EvaluationError, got %v", err)
	}
}

func TestAddEdgeFailureIsCatalogError(t *testing.T) {
	table := NewTable()
	sink := &failingSink{}
	ctx := Context{Sink: sink}
	a := value.Resource("File", "a")
	b := value.Resource("File", "b")
	_, err := table.Apply(Before, ctx, a, b)
	if err == nil {
		t.Fatal("expected the sink's AddEdge failure to propagate")
	}
	var derr *diag.Error
	if !errors.As(err, &derr) || derr.Kind != diag.Catalog {
		t.Fatalf("expected a CatalogError, got %v", err)
	}
}

// failingSink is a catalog.Sink whose AddEdge always fails, used to
// exercise the AddEdge failure path's diag.Catalog wrapping.
type failingSink struct{}

func (*failingSink) AddResource(catalog.Ref, map[string]interface{}, catalog.Position) error {
	return nil
}
func (*failingSink) AddEdge(catalog.Edge) error {
	return errors.New("boom")
}

package scope

import (
	"testing"

	"github.com/puppetlabs/langcore/value"
)

func TestSetThenLookup(t *testing.T) {
	s := NewTop()
	if err := s.Set("x", value.Int(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := s.Lookup("x")
	if !ok || !value.StrictEqual(v, value.Int(1)) {
		t.Fatalf("Lookup(x) = %v, %v", v, ok)
	}
}

func TestLookupUnboundReturnsUndef(t *testing.T) {
	s := NewTop()
	v, ok := s.Lookup("nope")
	if ok {
		t.Fatal("expected unbound name to report ok=false")
	}
	if v.Kind != value.KindUndef {
		t.Fatalf("expected Undef, got %v", v)
	}
}

func TestSetWriteOnce(t *testing.T) {
	s := NewTop()
	if err := s.Set("x", value.Int(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("x", value.Int(2)); err == nil {
		t.Fatal("expected re-setting an already-bound name to error")
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	top := NewTop()
	_ = top.Set("outer", value.Str("visible"))
	child := New(top)
	v, ok := child.Lookup("outer")
	if !ok || !value.StrictEqual(v, value.Str("visible")) {
		t.Fatalf("expected child scope to see parent's variable, got %v, %v", v, ok)
	}
}

func TestChildShadowsWithoutMutatingParent(t *testing.T) {
	top := NewTop()
	_ = top.Set("x", value.Int(1))
	child := New(top)
	_ = child.Set("x", value.Int(2))

	v, _ := child.Lookup("x")
	if !value.StrictEqual(v, value.Int(2)) {
		t.Fatalf("expected child's own binding to shadow, got %v", v)
	}
	pv, _ := top.Lookup("x")
	if !value.StrictEqual(pv, value.Int(1)) {
		t.Fatalf("expected parent's binding to be unaffected, got %v", pv)
	}
}

func TestPushCreatesEphemeralFrame(t *testing.T) {
	top := NewTop()
	frame := top.Push()
	if frame.IsTop() {
		t.Fatal("expected a pushed frame to not be top")
	}
	if frame.Parent() != top {
		t.Fatal("expected pushed frame's parent to be the scope it was pushed from")
	}
}

func TestSetMatchCaptureOverwritesInSameFrame(t *testing.T) {
	top := NewTop()
	frame := top.Push()
	frame.SetMatchCapture(0, value.Str("first"))
	frame.SetMatchCapture(0, value.Str("second"))

	v, ok := frame.Lookup("0")
	if !ok || !value.StrictEqual(v, value.Str("second")) {
		t.Fatalf("expected later match capture to overwrite earlier, got %v, %v", v, ok)
	}
}

func TestIsTop(t *testing.T) {
	top := NewTop()
	if !top.IsTop() {
		t.Fatal("expected NewTop to report IsTop() == true")
	}
	child := New(top)
	if child.IsTop() {
		t.Fatal("expected New(parent) to report IsTop() == false")
	}
}

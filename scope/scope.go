// Package scope implements the Scope contract spec.md §6 requires of the
// evaluator: lookup/set with parent chaining, ephemeral push/pop frames
// for match captures and lambda parameters, and write-once top-scope
// variables.
//
// The parent-chain-plus-mutex shape follows the teacher's own layered
// lookup pattern in eval/register.go (a chain of maps consulted
// outward-to-root); the ephemeral-frame stack is grounded on spec.md
// §5's requirement that scoped resources "release on every exit path,
// including the error path" -- Push/Pop are meant to be used with
// `defer`, mirroring how the teacher unwinds mergeop's match state.
package scope

import (
	"fmt"
	"sync"

	"github.com/puppetlabs/langcore/value"
)

// Scope is one lexical frame of variable bindings, optionally chained to
// a parent (enclosing) Scope. The chain models both static class/node
// nesting and the ephemeral frames pushed for `case`/`=~` capture
// variables and lambda parameters.
type Scope struct {
	mu       sync.RWMutex
	vars     map[string]value.Value
	parent   *Scope
	isTop    bool
	ephemeral bool
}

// NewTop constructs the top scope of an evaluation. Top-scope variables
// are write-once, per spec.md §6.
func NewTop() *Scope {
	return &Scope{vars: map[string]value.Value{}, isTop: true}
}

// New constructs a non-top scope chained to parent, e.g. a class or
// defined-type body's local variables.
func New(parent *Scope) *Scope {
	return &Scope{vars: map[string]value.Value{}, parent: parent}
}

// Push returns a new ephemeral child frame, e.g. for a case clause's
// match-capture variables ($0, $1, ...) or a lambda's parameters. Callers
// are expected to discard the returned Scope on exit (there is no
// explicit Pop call; the ephemeral frame is simply not referenced past
// its `defer`-guarded block, matching spec.md §5's "release on every
// exit path" requirement without needing mutable parent-side state).
func (s *Scope) Push() *Scope {
	return &Scope{vars: map[string]value.Value{}, parent: s, ephemeral: true}
}

// Lookup resolves name by walking outward from s to the root. Returns
// (Undef, false) if unbound anywhere in the chain, per spec.md §6's
// `lookup(name) → Value | Undef` contract; the bool distinguishes an
// explicit Undef binding from an unbound name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.vars[name]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return value.Undef(), false
}

// Set binds name to v in s's own frame (not the chain). Per spec.md §6,
// rebinding an already-set name in the top scope is an error; in a
// non-top or ephemeral frame, a local variable may only be set once per
// frame as well, matching Puppet's single-assignment variable semantics.
func (s *Scope) Set(name string, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.vars[name]; exists {
		return fmt.Errorf("scope: %q is already set in this scope", name)
	}
	s.vars[name] = v
	return nil
}

// SetMatchCapture binds a numbered capture variable ($0, $1, ...) in an
// ephemeral frame, overwriting any prior binding of the same number --
// match captures from a later `=~` in the same frame legitimately replace
// earlier ones, unlike ordinary named variables.
func (s *Scope) SetMatchCapture(index int, v value.Value) {
	name := fmt.Sprintf("%d", index)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = v
}

// IsTop reports whether s is the top scope.
func (s *Scope) IsTop() bool { return s.isTop }

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

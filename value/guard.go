package value

// Guard is the per-query RecursionGuard of spec.md §3.3/§4.2: scratch
// state that terminates traversal of cyclic Alias graphs by assuming
// assignability ("true") on re-entry of a previously-visited
// (Type, Type) pair. It is created on the stack per top-level query and
// must never be shared across goroutines (spec.md §5).
type Guard struct {
	visited map[pairKey]bool
}

type pairKey struct {
	self  *Type
	other *Type
}

// NewGuard constructs an empty RecursionGuard.
func NewGuard() *Guard {
	return &Guard{visited: make(map[pairKey]bool)}
}

// Enter records that (self, other) is being visited. It returns
// (assumedResult, alreadyVisiting): if alreadyVisiting is true, the
// caller must return assumedResult immediately without recursing further,
// per the coinductive rule of spec.md §4.2.
func (g *Guard) Enter(self, other *Type) (assumed bool, alreadyVisiting bool) {
	key := pairKey{self, other}
	if g.visited[key] {
		return true, true
	}
	g.visited[key] = true
	return false, false
}

// Leave is a no-op retained for symmetry with Enter; the visited set is
// intentionally never unwound; spec.md's coinductive assumption is valid
// for the lifetime of a single top-level query, not just one call frame,
// exactly like the recursion_guard object it is grounded on
// (original_source/.../types/collection.hpp) which lives on the caller's
// stack for the whole is_instance/is_assignable call chain.
func (g *Guard) Leave(*Type, *Type) {}

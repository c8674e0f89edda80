package registry

import "errors"

// Sentinel errors distinguished via errors.Is so a caller (typically the
// evaluator) can decide whether a registration failure is a duplicate
// declaration or a malformed name, per spec.md §4.5.
var (
	ErrDuplicate     = errors.New("registry: duplicate declaration")
	ErrMalformedName = errors.New("registry: malformed name")
)

package tree

import "fmt"

// NotFoundError reports a lookup against an identifier that is not in the
// tree. Lookups fail explicitly instead of returning a nil node so callers
// can tell "bad reference" apart from "empty result".
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.ID)
}

// StructuralViolationError reports a broken tree invariant: a duplicate
// identifier, a node with more than one parent, or a cycle. It signals a
// builder bug, not bad input; malformed input degrades to defaults instead.
type StructuralViolationError struct {
	Reason string
}

func (e *StructuralViolationError) Error() string {
	return "structural violation: " + e.Reason
}

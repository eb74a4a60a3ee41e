// Package gnvalue defines the typed value model shared by the evaluator: an
// immutable tagged variant over the closed set of build-expression result
// types, plus the opaque Origin token used to trace every value back to the
// AST node that produced it.
package gnvalue

// Node is the minimal stand-in for an AST node identity. The frontend that
// lexes and parses the build DSL is out of scope for this module; gnargs only
// ever consumes a *Node as an opaque, pointer-comparable handle. Nothing in
// this module inspects Node's fields.
type Node struct {
	// Name is carried purely for diagnostic rendering (file:line-ish labels);
	// it never participates in identity or equality comparisons.
	Name string
}

// Origin identifies the AST node that produced a Value or a declaration.
// Two origins are "the same declaration" iff they compare equal, which for a
// pointer-backed Origin means pointer identity (spec-required semantics).
type Origin struct {
	node *Node
}

// NewOrigin wraps an AST node identity in an Origin. Passing the same *Node
// twice yields equal Origins; passing two distinct nodes never does, even if
// their Name fields match.
func NewOrigin(node *Node) Origin {
	return Origin{node: node}
}

// Unknown is the zero Origin, used for synthesized diagnostics that have no
// single AST site to blame (e.g. the "Evaluation failed" diagnostic that
// internal/evalrun builds when a toolchain job returns an error).
var Unknown = Origin{}

// IsZero reports whether this Origin carries no node identity.
func (o Origin) IsZero() bool {
	return o.node == nil
}

// Equal reports whether two origins name the same AST node.
func (o Origin) Equal(other Origin) bool {
	return o.node == other.node
}

// String renders a human-readable label for diagnostics.
func (o Origin) String() string {
	if o.node == nil {
		return "<unknown>"
	}
	if o.node.Name == "" {
		return "<anonymous>"
	}
	return o.node.Name
}

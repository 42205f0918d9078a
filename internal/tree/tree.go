package tree

import (
	"fmt"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

// Reserved node types. Any other type string is allowed and falls under the
// counter-based identifier rule.
const (
	TypeRoot     = "root"
	TypeVersion  = "version"
	TypeChapter  = "chapter"
	TypeSentence = "sentence"
	TypeUnknown  = "unknown"
)

// Node is a single labeled node in a corpus tree. Attrs carries every source
// record field except the structural children link; the computed id is also
// stored there under "node_id".
type Node struct {
	ID    string
	Type  string
	Name  string
	Attrs corpus.Attrs
}

// Edge is a directed parent→child link.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Tree is a rooted, directed, single-parent-per-node structure. It is built
// once and never mutated afterward; every query is a read-only projection, so
// concurrent readers need no locking.
type Tree struct {
	nodes    map[string]*Node
	order    []string
	parent   map[string]string
	children map[string][]string
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

// AddNode registers a node. Registering an identifier twice is a builder bug
// and raises StructuralViolationError rather than silently merging.
func (t *Tree) AddNode(n *Node) error {
	if _, exists := t.nodes[n.ID]; exists {
		return &StructuralViolationError{Reason: fmt.Sprintf("duplicate node id %q", n.ID)}
	}
	t.nodes[n.ID] = n
	t.order = append(t.order, n.ID)
	return nil
}

// AddEdge links parent→child. Both endpoints must already be registered, and
// a child may have at most one parent.
func (t *Tree) AddEdge(parentID, childID string) error {
	if _, ok := t.nodes[parentID]; !ok {
		return &NotFoundError{ID: parentID}
	}
	if _, ok := t.nodes[childID]; !ok {
		return &NotFoundError{ID: childID}
	}
	if existing, ok := t.parent[childID]; ok {
		return &StructuralViolationError{
			Reason: fmt.Sprintf("node %q already has parent %q", childID, existing),
		}
	}
	t.parent[childID] = parentID
	t.children[parentID] = append(t.children[parentID], childID)
	return nil
}

// Len returns the node count.
func (t *Tree) Len() int { return len(t.nodes) }

// EdgeCount returns the edge count.
func (t *Tree) EdgeCount() int { return len(t.parent) }

// Has reports whether id is registered.
func (t *Tree) Has(id string) bool {
	_, ok := t.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.nodes[id])
	}
	return out
}

// Edges returns all edges in child-insertion order.
func (t *Tree) Edges() []Edge {
	out := make([]Edge, 0, len(t.parent))
	for _, id := range t.order {
		for _, child := range t.children[id] {
			out = append(out, Edge{Source: id, Target: child})
		}
	}
	return out
}

// Parent returns the parent id of a node, if it has one.
func (t *Tree) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns the ordered child ids of a node.
func (t *Tree) Children(id string) []string {
	return t.children[id]
}

// Root returns the first node with no incoming edge, in insertion order.
func (t *Tree) Root() (*Node, bool) {
	for _, id := range t.order {
		if _, hasParent := t.parent[id]; !hasParent {
			return t.nodes[id], true
		}
	}
	return nil, false
}

// Validate checks the tree invariants post-construction: acyclic and weakly
// connected. Single parenthood and id uniqueness are enforced at insertion, so
// a failure here means the structure was corrupted by a bug.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return nil
	}
	if !t.isAcyclic() {
		return &StructuralViolationError{Reason: "cycle detected"}
	}
	if !t.isWeaklyConnected() {
		return &StructuralViolationError{Reason: "tree is not connected"}
	}
	return nil
}

// isAcyclic follows parent links from every node; revisiting the start node
// means a cycle. Parent chains are the only directed paths in a single-parent
// structure.
func (t *Tree) isAcyclic() bool {
	for _, id := range t.order {
		seen := 0
		cur := id
		for {
			p, ok := t.parent[cur]
			if !ok {
				break
			}
			cur = p
			seen++
			if seen > len(t.nodes) {
				return false
			}
		}
	}
	return true
}

// isWeaklyConnected walks edges in both directions from the first node.
func (t *Tree) isWeaklyConnected() bool {
	if len(t.order) == 0 {
		return true
	}
	visited := make(map[string]bool, len(t.nodes))
	queue := []string{t.order[0]}
	visited[t.order[0]] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		var neighbors []string
		neighbors = append(neighbors, t.children[cur]...)
		if p, ok := t.parent[cur]; ok {
			neighbors = append(neighbors, p)
		}
		for _, n := range neighbors {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(t.nodes)
}

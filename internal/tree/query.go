package tree

import "strings"

// Lookup returns the node with the given id, or NotFoundError when absent.
func (t *Tree) Lookup(id string) (*Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return n, nil
}

// FindByType returns all nodes with an exact type match, in insertion order.
// No match is an empty slice, not an error.
func (t *Tree) FindByType(typ string) []*Node {
	var out []*Node
	for _, id := range t.order {
		if n := t.nodes[id]; n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// MatchStrategy records which of the version-match strategies accepted a node.
type MatchStrategy uint8

const (
	// MatchAttribute: the node's "version" attribute equals the tag.
	MatchAttribute MatchStrategy = 1 << iota
	// MatchVersionName: the node is a version node whose name equals the tag.
	MatchVersionName
	// MatchIDPrefix: the node id starts with version_<tag>, chapter_<tag>,
	// or sentence_<tag>.
	MatchIDPrefix
)

// VersionHit is one FindByVersion result. MatchedBy exposes every strategy
// that accepted the node; when the attribute-derived tag and the id-derived
// tag disagree, a node shows up with only part of the mask set and the caller
// can see the ambiguity instead of it being swallowed.
type VersionHit struct {
	Node      *Node
	MatchedBy MatchStrategy
}

// FindByVersion returns every node associated with a version tag. The match
// is deliberately permissive: three independent strategies are OR'd together,
// and callers must not assume exclusivity between them.
func (t *Tree) FindByVersion(tag string) []VersionHit {
	var out []VersionHit
	for _, id := range t.order {
		n := t.nodes[id]
		var matched MatchStrategy

		if v, ok := n.Attrs.Lookup("version"); ok {
			if s, ok := v.AsString(); ok && s == tag {
				matched |= MatchAttribute
			}
		}
		if n.Type == TypeVersion && n.Name == tag {
			matched |= MatchVersionName
		}
		if strings.HasPrefix(id, "version_"+tag) ||
			strings.HasPrefix(id, "chapter_"+tag) ||
			strings.HasPrefix(id, "sentence_"+tag) {
			matched |= MatchIDPrefix
		}

		if matched != 0 {
			out = append(out, VersionHit{Node: n, MatchedBy: matched})
		}
	}
	return out
}

// SubgraphByDepth returns the induced sub-tree reachable from startID by
// breadth-first traversal. maxDepth bounds the walk (negative = unbounded): a
// node at depth maxDepth is included but its successors are not explored.
// allowedTypes restricts which successors are followed (nil = unrestricted);
// the start node itself is always included. Returns NotFoundError when
// startID is absent.
func (t *Tree) SubgraphByDepth(startID string, maxDepth int, allowedTypes []string) (*Tree, error) {
	if _, ok := t.nodes[startID]; !ok {
		return nil, &NotFoundError{ID: startID}
	}

	var allowed map[string]bool
	if allowedTypes != nil {
		allowed = make(map[string]bool, len(allowedTypes))
		for _, typ := range allowedTypes {
			allowed[typ] = true
		}
	}

	type item struct {
		id    string
		depth int
	}
	visited := map[string]bool{startID: true}
	queue := []item{{id: startID, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxDepth >= 0 && cur.depth >= maxDepth {
			continue
		}
		for _, childID := range t.children[cur.id] {
			if allowed != nil && !allowed[t.nodes[childID].Type] {
				continue
			}
			if !visited[childID] {
				visited[childID] = true
				queue = append(queue, item{id: childID, depth: cur.depth + 1})
			}
		}
	}

	// Induce the sub-tree in original insertion order; nodes are immutable so
	// they are shared, not copied.
	sub := New()
	for _, id := range t.order {
		if visited[id] {
			if err := sub.AddNode(t.nodes[id]); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range t.order {
		if !visited[id] {
			continue
		}
		for _, childID := range t.children[id] {
			if visited[childID] {
				if err := sub.AddEdge(id, childID); err != nil {
					return nil, err
				}
			}
		}
	}
	return sub, nil
}

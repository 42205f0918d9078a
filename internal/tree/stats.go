package tree

import "strings"

// Summary is a whole-tree structural report.
type Summary struct {
	NodeCount       int            `json:"node_count"`
	EdgeCount       int            `json:"edge_count"`
	Acyclic         bool           `json:"is_acyclic"`
	Connected       bool           `json:"is_connected"`
	Roots           []string       `json:"roots"`
	Leaves          []string       `json:"leaves"`
	TypeCounts      map[string]int `json:"type_counts"`
	VersionChapters map[string]int `json:"version_chapters"`
	Depth           int            `json:"depth"`
}

// Summarize computes structural statistics over the whole tree: counts,
// invariant checks, root and leaf sets, per-type tallies, per-version chapter
// counts (derived by parsing the underscore-delimited chapter ids), and the
// longest root-to-node path length.
func Summarize(t *Tree) Summary {
	s := Summary{
		NodeCount:       t.Len(),
		EdgeCount:       t.EdgeCount(),
		Acyclic:         t.isAcyclic(),
		Connected:       t.isWeaklyConnected(),
		Roots:           []string{},
		Leaves:          []string{},
		TypeCounts:      make(map[string]int),
		VersionChapters: make(map[string]int),
	}

	for _, id := range t.order {
		n := t.nodes[id]
		s.TypeCounts[n.Type]++
		if _, hasParent := t.parent[id]; !hasParent {
			s.Roots = append(s.Roots, id)
		}
		if len(t.children[id]) == 0 {
			s.Leaves = append(s.Leaves, id)
		}
		if n.Type == TypeChapter {
			// chapter_<version>_<n>
			parts := strings.Split(id, "_")
			if len(parts) >= 3 {
				s.VersionChapters[parts[1]]++
			}
		}
	}

	if len(s.Roots) > 0 {
		s.Depth = t.depthFrom(s.Roots[0])
	}
	return s
}

// depthFrom returns the longest shortest-path length from root, by BFS.
func (t *Tree) depthFrom(root string) int {
	depth := 0
	type item struct {
		id    string
		depth int
	}
	visited := map[string]bool{root: true}
	queue := []item{{id: root, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth > depth {
			depth = cur.depth
		}
		for _, childID := range t.children[cur.id] {
			if !visited[childID] {
				visited[childID] = true
				queue = append(queue, item{id: childID, depth: cur.depth + 1})
			}
		}
	}
	return depth
}

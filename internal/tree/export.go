package tree

import (
	"encoding/json"
	"fmt"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

// NodeLink is the node-list/edge-list wire form of a tree: nodes carrying
// their full attributes, edges as source/target identifier pairs. It is the
// handoff format for exporters and the persisted form of the synthetic
// fixture.
type NodeLink struct {
	Nodes []NodeLinkNode `json:"nodes"`
	Links []Edge         `json:"links"`
}

// NodeLinkNode is one exported node. It marshals flat: id, type, and name
// alongside the attributes, mirroring the shape the downstream graph tooling
// consumes.
type NodeLinkNode struct {
	ID    string
	Type  string
	Name  string
	Attrs corpus.Attrs
}

func (n NodeLinkNode) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(n.Attrs)+3)
	for k, v := range n.Attrs {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal attribute %q: %w", k, err)
		}
		out[k] = raw
	}
	id, _ := json.Marshal(n.ID)
	typ, _ := json.Marshal(n.Type)
	name, _ := json.Marshal(n.Name)
	out["id"] = id
	out["type"] = typ
	out["name"] = name
	return json.Marshal(out)
}

func (n *NodeLinkNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode node: %w", err)
	}
	*n = NodeLinkNode{}
	for key, msg := range raw {
		switch key {
		case "id":
			if err := json.Unmarshal(msg, &n.ID); err != nil {
				return fmt.Errorf("decode id: %w", err)
			}
		case "type":
			if err := json.Unmarshal(msg, &n.Type); err != nil {
				return fmt.Errorf("decode type: %w", err)
			}
		case "name":
			if err := json.Unmarshal(msg, &n.Name); err != nil {
				return fmt.Errorf("decode name: %w", err)
			}
		default:
			var v corpus.Value
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("decode attribute %q: %w", key, err)
			}
			if n.Attrs == nil {
				n.Attrs = make(corpus.Attrs)
			}
			n.Attrs[key] = v
		}
	}
	return nil
}

// ToNodeLink exports the tree as a node-list/edge-list pair, nodes and edges
// in insertion order.
func (t *Tree) ToNodeLink() NodeLink {
	nl := NodeLink{
		Nodes: make([]NodeLinkNode, 0, t.Len()),
		Links: t.Edges(),
	}
	for _, n := range t.Nodes() {
		nl.Nodes = append(nl.Nodes, NodeLinkNode{
			ID:    n.ID,
			Type:  n.Type,
			Name:  n.Name,
			Attrs: n.Attrs.Clone(),
		})
	}
	return nl
}

// FromNodeLink reconstructs a tree from node-link form. A link referencing an
// unregistered node fails with NotFoundError; duplicate ids or a second
// parent fail with StructuralViolationError.
func FromNodeLink(nl NodeLink) (*Tree, error) {
	t := New()
	for _, n := range nl.Nodes {
		node := &Node{
			ID:    n.ID,
			Type:  n.Type,
			Name:  n.Name,
			Attrs: n.Attrs.Clone(),
		}
		if err := t.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, link := range nl.Links {
		if err := t.AddEdge(link.Source, link.Target); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ToRecord exports the tree back to the nested record form that mirrors the
// original input shape. The synthetic "node_id" attribute is dropped, since
// the input never carried one.
func (t *Tree) ToRecord() (*corpus.Record, error) {
	root, ok := t.Root()
	if !ok {
		return nil, &NotFoundError{ID: "root"}
	}
	return t.recordFor(root), nil
}

func (t *Tree) recordFor(n *Node) *corpus.Record {
	attrs := n.Attrs.Clone()
	delete(attrs, "node_id")

	rec := &corpus.Record{
		Name:  n.Name,
		Type:  n.Type,
		Attrs: attrs,
	}
	for _, childID := range t.children[n.ID] {
		rec.Children = append(rec.Children, t.recordFor(t.nodes[childID]))
	}
	return rec
}

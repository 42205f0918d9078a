package tree

import (
	"fmt"
	"strings"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

// builder carries the per-type counters for one Build call. Counters are an
// explicit accumulator rather than package state, so repeated or concurrent
// builds cannot interfere.
type builder struct {
	tree     *Tree
	counters map[string]int
}

// Build converts a nested record into a corpus tree using a pre-order
// recursive descent. Malformed records never fail the build: a missing type
// degrades to "unknown", a missing name to "unnamed", and the node gets a
// counter-based identifier instead of being rejected. Upstream tabular data is
// expected to be noisy.
func Build(rec *corpus.Record) (*Tree, error) {
	b := &builder{
		tree:     New(),
		counters: make(map[string]int),
	}
	if err := b.walk(rec, ""); err != nil {
		return nil, err
	}
	return b.tree, nil
}

func (b *builder) walk(rec *corpus.Record, parentID string) error {
	name := rec.Name
	if name == "" {
		name = "unnamed"
	}
	typ := rec.Type
	if typ == "" {
		typ = TypeUnknown
	}

	id := b.nodeID(typ, name, parentID, rec)

	attrs := rec.Attrs.Clone()
	if attrs == nil {
		attrs = make(corpus.Attrs)
	}
	attrs["node_id"] = corpus.String(id)

	node := &Node{
		ID:    id,
		Type:  typ,
		Name:  name,
		Attrs: attrs,
	}
	if err := b.tree.AddNode(node); err != nil {
		return err
	}
	if parentID != "" {
		if err := b.tree.AddEdge(parentID, id); err != nil {
			return err
		}
	}

	for _, child := range rec.Children {
		if err := b.walk(child, id); err != nil {
			return err
		}
	}
	return nil
}

// nodeID applies the per-type identifier composition rules. The per-type
// counters advance on every chapter/sentence/other node even when the record
// supplies an explicit number, keeping the fallback sequence aligned with the
// node sequence.
func (b *builder) nodeID(typ, name, parentID string, rec *corpus.Record) string {
	switch typ {
	case TypeRoot:
		return "root"

	case TypeVersion:
		return "version_" + name

	case TypeChapter:
		vtag := lastSegment(parentID)
		num, ok := rec.ChapterNumber()
		if !ok {
			num = int64(b.counters[TypeChapter])
		}
		b.counters[TypeChapter]++
		return fmt.Sprintf("chapter_%s_%d", vtag, num)

	case TypeSentence:
		vtag := secondSegment(parentID)
		chapter, ok := rec.ChapterNumber()
		if !ok {
			chapter = 0
		}
		num, ok := rec.SentenceNumber()
		if !ok {
			num = int64(b.counters[TypeSentence])
		}
		b.counters[TypeSentence]++
		return fmt.Sprintf("sentence_%s_%d_%d", vtag, chapter, num)

	default:
		id := fmt.Sprintf("%s_%d", typ, b.counters[typ])
		b.counters[typ]++
		return id
	}
}

// lastSegment extracts the version tag from a version node id
// ("version_<name>" → "<name>"). A missing parent yields "unknown" so that a
// top-level chapter still gets a well-formed id.
func lastSegment(id string) string {
	if id == "" {
		return TypeUnknown
	}
	parts := strings.Split(id, "_")
	return parts[len(parts)-1]
}

// secondSegment extracts the version tag from a chapter node id
// ("chapter_<vtag>_<n>" → "<vtag>").
func secondSegment(id string) string {
	if id == "" || !strings.Contains(id, "_") {
		return TypeUnknown
	}
	return strings.Split(id, "_")[1]
}

// Package fixture generates a synthetic corpus of fixed shape (one root,
// twelve versions, seventy-six chapters per version) in node-link form. It
// exercises the query layer without requiring the full corpus.
package fixture

import (
	"fmt"

	"github.com/wenjia-h/corpustree/internal/corpus"
	"github.com/wenjia-h/corpustree/internal/tree"
)

const (
	VersionCount = 12
	ChapterCount = 76
)

// Generate returns the synthetic corpus as a node-list/edge-list pair. Ids
// follow the builder's composition rules so the fixture behaves like a real
// built tree under prefix-based version matching.
func Generate() tree.NodeLink {
	var nl tree.NodeLink

	nl.Nodes = append(nl.Nodes, tree.NodeLinkNode{
		ID:   "root",
		Type: tree.TypeRoot,
		Name: "root",
		Attrs: corpus.Attrs{
			corpus.AttrDescription: corpus.String("synthetic corpus root"),
		},
	})

	for v := 1; v <= VersionCount; v++ {
		vtag := fmt.Sprintf("v%d", v)
		versionID := "version_" + vtag
		nl.Nodes = append(nl.Nodes, tree.NodeLinkNode{
			ID:   versionID,
			Type: tree.TypeVersion,
			Name: vtag,
			Attrs: corpus.Attrs{
				corpus.AttrDescription: corpus.String("synthetic version " + vtag),
				corpus.AttrIndex:       corpus.Int(int64(v)),
			},
		})
		nl.Links = append(nl.Links, tree.Edge{Source: "root", Target: versionID})

		for c := 0; c < ChapterCount; c++ {
			chapterID := fmt.Sprintf("chapter_%s_%d", vtag, c)
			nl.Nodes = append(nl.Nodes, tree.NodeLinkNode{
				ID:   chapterID,
				Type: tree.TypeChapter,
				Name: fmt.Sprintf("Chapter %d", c),
				Attrs: corpus.Attrs{
					corpus.AttrChapterNumber: corpus.Int(int64(c)),
					corpus.AttrVersion:       corpus.String(vtag),
				},
			})
			nl.Links = append(nl.Links, tree.Edge{Source: versionID, Target: chapterID})
		}
	}
	return nl
}

// Tree returns the synthetic corpus as a built tree.
func Tree() (*tree.Tree, error) {
	return tree.FromNodeLink(Generate())
}

package tree

import (
	"testing"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

func TestSummarize_SmallCorpus(t *testing.T) {
	tr := testCorpus(t)
	s := Summarize(tr)

	if s.NodeCount != 7 {
		t.Errorf("expected node_count=7, got %d", s.NodeCount)
	}
	if s.EdgeCount != 6 {
		t.Errorf("expected edge_count=6, got %d", s.EdgeCount)
	}
	if !s.Acyclic {
		t.Error("expected acyclic tree")
	}
	if !s.Connected {
		t.Error("expected connected tree")
	}
	if len(s.Roots) != 1 || s.Roots[0] != "root" {
		t.Errorf("expected roots=[root], got %v", s.Roots)
	}
	if s.Depth != 3 {
		t.Errorf("expected depth=3, got %d", s.Depth)
	}

	if s.TypeCounts[TypeChapter] != 3 {
		t.Errorf("expected 3 chapters, got %d", s.TypeCounts[TypeChapter])
	}
	if s.TypeCounts[TypeVersion] != 2 {
		t.Errorf("expected 2 versions, got %d", s.TypeCounts[TypeVersion])
	}

	if s.VersionChapters["v1"] != 2 {
		t.Errorf("expected 2 chapters under v1, got %d", s.VersionChapters["v1"])
	}
	if s.VersionChapters["v2"] != 1 {
		t.Errorf("expected 1 chapter under v2, got %d", s.VersionChapters["v2"])
	}

	// Leaves: the sentence, the empty chapters.
	wantLeaves := map[string]bool{
		"sentence_v1_0_0": true,
		"chapter_v1_1":    true,
		"chapter_v2_0":    true,
	}
	if len(s.Leaves) != len(wantLeaves) {
		t.Fatalf("expected %d leaves, got %v", len(wantLeaves), s.Leaves)
	}
	for _, leaf := range s.Leaves {
		if !wantLeaves[leaf] {
			t.Errorf("unexpected leaf %q", leaf)
		}
	}
}

func TestSummarize_ThreeNodeTree(t *testing.T) {
	rec := &corpus.Record{
		Name: "root",
		Type: TypeRoot,
		Children: []*corpus.Record{
			{
				Name: "v1",
				Type: TypeVersion,
				Children: []*corpus.Record{
					{
						Name:  "Chapter 0",
						Type:  TypeChapter,
						Attrs: corpus.Attrs{corpus.AttrChapterNumber: corpus.Int(0)},
					},
				},
			},
		},
	}
	tr, err := Build(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := Summarize(tr)
	if s.NodeCount != 3 {
		t.Errorf("expected node_count=3, got %d", s.NodeCount)
	}
	if s.EdgeCount != 2 {
		t.Errorf("expected edge_count=2, got %d", s.EdgeCount)
	}
	if !s.Acyclic || !s.Connected {
		t.Errorf("expected acyclic connected tree, got acyclic=%v connected=%v", s.Acyclic, s.Connected)
	}
	if s.Depth != 2 {
		t.Errorf("expected depth=2, got %d", s.Depth)
	}
}

func TestSummarize_EmptyTree(t *testing.T) {
	s := Summarize(New())
	if s.NodeCount != 0 || s.EdgeCount != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if s.Depth != 0 {
		t.Errorf("expected depth=0, got %d", s.Depth)
	}
}

func TestValidate_DisconnectedTree(t *testing.T) {
	tr := New()
	if err := tr.AddNode(&Node{ID: "a", Type: TypeRoot}); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddNode(&Node{ID: "b", Type: TypeRoot}); err != nil {
		t.Fatal(err)
	}
	if err := tr.Validate(); err == nil {
		t.Fatal("expected validation failure for disconnected nodes")
	}
}

func TestValidate_SecondParentRejected(t *testing.T) {
	tr := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := tr.AddNode(&Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := tr.AddEdge("a", "c"); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddEdge("b", "c"); err == nil {
		t.Fatal("expected error when linking a second parent")
	}
}

package tree

import (
	"errors"
	"testing"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

func chapterRec(name string, num int64) *corpus.Record {
	return &corpus.Record{
		Name: name,
		Type: TypeChapter,
		Attrs: corpus.Attrs{
			corpus.AttrChapterNumber: corpus.Int(num),
		},
	}
}

func TestBuild_RootVersionChapter(t *testing.T) {
	rec := &corpus.Record{
		Name: "corpus",
		Type: TypeRoot,
		Children: []*corpus.Record{
			{
				Name: "v1",
				Type: TypeVersion,
				Children: []*corpus.Record{
					chapterRec("Chapter 0", 0),
				},
			},
		},
	}

	tr, err := Build(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", tr.Len())
	}
	if tr.EdgeCount() != 2 {
		t.Fatalf("expected 2 edges, got %d", tr.EdgeCount())
	}

	for _, id := range []string{"root", "version_v1", "chapter_v1_0"} {
		if !tr.Has(id) {
			t.Errorf("expected node %q to exist", id)
		}
	}

	if p, _ := tr.Parent("chapter_v1_0"); p != "version_v1" {
		t.Errorf("expected chapter parent %q, got %q", "version_v1", p)
	}

	n, err := tr.Lookup("chapter_v1_0")
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	v, ok := n.Attrs.Lookup("node_id")
	if !ok {
		t.Fatal("expected node_id attribute to be set")
	}
	if s, _ := v.AsString(); s != "chapter_v1_0" {
		t.Errorf("expected node_id %q, got %q", "chapter_v1_0", s)
	}
}

func TestBuild_SentenceIDComposition(t *testing.T) {
	rec := &corpus.Record{
		Name: "corpus",
		Type: TypeRoot,
		Children: []*corpus.Record{
			{
				Name: "v2",
				Type: TypeVersion,
				Children: []*corpus.Record{
					{
						Name: "Chapter 3",
						Type: TypeChapter,
						Attrs: corpus.Attrs{
							corpus.AttrChapterNumber: corpus.Int(3),
						},
						Children: []*corpus.Record{
							{
								Name: "Sentence 5",
								Type: TypeSentence,
								Attrs: corpus.Attrs{
									corpus.AttrChapterNumber:  corpus.Int(3),
									corpus.AttrSentenceNumber: corpus.Int(5),
									corpus.AttrText:           corpus.String("some text"),
								},
							},
						},
					},
				},
			},
		},
	}

	tr, err := Build(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Has("sentence_v2_3_5") {
		t.Errorf("expected sentence id %q, got nodes %v", "sentence_v2_3_5", ids(tr))
	}
}

func TestBuild_CountersAdvanceWithExplicitNumbers(t *testing.T) {
	// The first chapter carries an explicit number; the second has none and
	// must fall back to the counter, which advanced past the first chapter.
	rec := &corpus.Record{
		Name: "corpus",
		Type: TypeRoot,
		Children: []*corpus.Record{
			{
				Name: "v1",
				Type: TypeVersion,
				Children: []*corpus.Record{
					chapterRec("Chapter 10", 10),
					{Name: "Untitled", Type: TypeChapter},
				},
			},
		},
	}

	tr, err := Build(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Has("chapter_v1_10") {
		t.Errorf("expected explicit chapter id chapter_v1_10, got %v", ids(tr))
	}
	if !tr.Has("chapter_v1_1") {
		t.Errorf("expected fallback chapter id chapter_v1_1, got %v", ids(tr))
	}
}

func TestBuild_DefaultsForMissingTypeAndName(t *testing.T) {
	rec := &corpus.Record{}
	tr, err := Build(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := tr.Lookup("unknown_0")
	if err != nil {
		t.Fatalf("expected node unknown_0: %v", err)
	}
	if n.Name != "unnamed" {
		t.Errorf("expected name %q, got %q", "unnamed", n.Name)
	}
	if n.Type != TypeUnknown {
		t.Errorf("expected type %q, got %q", TypeUnknown, n.Type)
	}
}

func TestBuild_TopLevelChapterGetsUnknownVersionTag(t *testing.T) {
	tr, err := Build(chapterRec("Orphan", 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Has("chapter_unknown_4") {
		t.Errorf("expected id chapter_unknown_4, got %v", ids(tr))
	}
}

func TestBuild_DuplicateVersionNameFails(t *testing.T) {
	rec := &corpus.Record{
		Name: "corpus",
		Type: TypeRoot,
		Children: []*corpus.Record{
			{Name: "v1", Type: TypeVersion},
			{Name: "v1", Type: TypeVersion},
		},
	}
	_, err := Build(rec)
	if err == nil {
		t.Fatal("expected error for duplicate version name")
	}
	var sv *StructuralViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected StructuralViolationError, got %T: %v", err, err)
	}
}

func ids(tr *Tree) []string {
	out := make([]string, 0, tr.Len())
	for _, n := range tr.Nodes() {
		out = append(out, n.ID)
	}
	return out
}

package source

import (
	"strings"
	"testing"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

func TestMarkdownLoader_HeadingsBecomeChapters(t *testing.T) {
	input := `# Edition A

## Chapter 1

First sentence.
Second sentence.

## Chapter 2

Another sentence.
`
	l := &MarkdownLoader{}
	rec, err := l.Load(strings.NewReader(input), "edition.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Type != "root" {
		t.Fatalf("expected root record, got %q", rec.Type)
	}
	if len(rec.Children) != 1 {
		t.Fatalf("expected 1 version, got %d", len(rec.Children))
	}

	version := rec.Children[0]
	if version.Name != "Edition A" {
		t.Errorf("expected version named after the h1, got %q", version.Name)
	}
	if len(version.Children) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(version.Children))
	}

	ch1 := version.Children[0]
	if ch1.Name != "Chapter 1" {
		t.Errorf("expected chapter name %q, got %q", "Chapter 1", ch1.Name)
	}
	// The trailing digit in the heading becomes the chapter number.
	if num, ok := ch1.ChapterNumber(); !ok || num != 1 {
		t.Errorf("expected chapter_number=1, got %d (ok=%v)", num, ok)
	}
	if len(ch1.Children) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(ch1.Children))
	}

	s := ch1.Children[0]
	v, _ := s.Attrs.Lookup(corpus.AttrText)
	if text, _ := v.AsString(); text != "First sentence." {
		t.Errorf("expected text %q, got %q", "First sentence.", text)
	}
	v, _ = s.Attrs.Lookup(corpus.AttrVersion)
	if ver, _ := v.AsString(); ver != "Edition A" {
		t.Errorf("expected version attribute %q, got %q", "Edition A", ver)
	}
}

func TestMarkdownLoader_NoHeadingsUsesFilename(t *testing.T) {
	input := "Just a line.\n\nAnother line.\n"
	l := &MarkdownLoader{}
	rec, err := l.Load(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	version := rec.Children[0]
	if version.Name != "plain" {
		t.Errorf("expected version named after the file, got %q", version.Name)
	}
	// Text before any heading lands in an implicit chapter.
	if len(version.Children) != 1 {
		t.Fatalf("expected 1 implicit chapter, got %d", len(version.Children))
	}
	if len(version.Children[0].Children) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(version.Children[0].Children))
	}
}

func TestMarkdownLoader_UnnumberedHeadingsCountSequentially(t *testing.T) {
	input := "# Book\n\n## Prologue\n\ntext one\n\n## Epilogue\n\ntext two\n"
	l := &MarkdownLoader{}
	rec, err := l.Load(strings.NewReader(input), "book.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	version := rec.Children[0]
	if len(version.Children) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(version.Children))
	}
	if num, _ := version.Children[0].ChapterNumber(); num != 0 {
		t.Errorf("expected first chapter number 0, got %d", num)
	}
	if num, _ := version.Children[1].ChapterNumber(); num != 1 {
		t.Errorf("expected second chapter number 1, got %d", num)
	}
}

func TestMarkdownLoader_EmptyChaptersDropped(t *testing.T) {
	input := "# Book\n\n## Empty Chapter\n\n## Full Chapter\n\nsome text\n"
	l := &MarkdownLoader{}
	rec, err := l.Load(strings.NewReader(input), "book.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	version := rec.Children[0]
	if len(version.Children) != 1 {
		t.Fatalf("expected only the non-empty chapter, got %d", len(version.Children))
	}
	if version.Children[0].Name != "Full Chapter" {
		t.Errorf("expected %q, got %q", "Full Chapter", version.Children[0].Name)
	}
}

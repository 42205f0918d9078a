package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

var trailingNumber = regexp.MustCompile(`(\d+)\s*$`)

// docBuilder accumulates a single-version corpus from a linear document:
// each heading starts a chapter, each text line becomes a sentence.
type docBuilder struct {
	version     string
	chapters    []*corpus.Record
	current     *corpus.Record
	chapterSeq  int64
	sentenceSeq int64
}

func newDocBuilder(version string) *docBuilder {
	return &docBuilder{version: version}
}

// startChapter opens a new chapter. A trailing integer in the title becomes
// the chapter number; otherwise chapters number sequentially from zero.
func (b *docBuilder) startChapter(title string) {
	b.flush()
	num := b.chapterSeq
	if m := trailingNumber.FindStringSubmatch(title); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			num = n
		}
	}
	b.chapterSeq++
	b.sentenceSeq = 0
	b.current = &corpus.Record{
		Name: title,
		Type: "chapter",
		Attrs: corpus.Attrs{
			corpus.AttrChapterNumber: corpus.Int(num),
		},
		Children: []*corpus.Record{},
	}
}

// addSentence appends a sentence to the current chapter, opening an implicit
// chapter first when text precedes any heading.
func (b *docBuilder) addSentence(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if b.current == nil {
		b.startChapter(fmt.Sprintf("Chapter %d", b.chapterSeq))
	}
	chapterNum, _ := b.current.ChapterNumber()
	b.current.Children = append(b.current.Children, &corpus.Record{
		Name: fmt.Sprintf("Sentence %d", b.sentenceSeq),
		Type: "sentence",
		Attrs: corpus.Attrs{
			corpus.AttrChapterNumber:  corpus.Int(chapterNum),
			corpus.AttrSentenceNumber: corpus.Int(b.sentenceSeq),
			corpus.AttrText:           corpus.String(text),
			corpus.AttrVersion:        corpus.String(b.version),
		},
	})
	b.sentenceSeq++
}

func (b *docBuilder) flush() {
	if b.current != nil && len(b.current.Children) > 0 {
		b.current.Attrs[corpus.AttrSentenceCount] = corpus.Int(int64(len(b.current.Children)))
		b.chapters = append(b.chapters, b.current)
	}
	b.current = nil
}

// root closes the builder and wraps the chapters in root → version records.
func (b *docBuilder) root() *corpus.Record {
	b.flush()
	versionNode := &corpus.Record{
		Name: b.version,
		Type: "version",
		Attrs: corpus.Attrs{
			corpus.AttrDescription: corpus.String("corpus version: " + b.version),
			corpus.AttrIndex:       corpus.Int(1),
		},
		Children: b.chapters,
	}
	if versionNode.Children == nil {
		versionNode.Children = []*corpus.Record{}
	}
	return &corpus.Record{
		Name: "root",
		Type: "root",
		Attrs: corpus.Attrs{
			corpus.AttrDescription: corpus.String("corpus root"),
		},
		Children: []*corpus.Record{versionNode},
	}
}

package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/wenjia-h/corpustree/internal/corpus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader handles single-version corpora written as Markdown: the
// first h1 names the version, every other heading opens a chapter, and each
// line of paragraph text is one sentence.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	version := stem(filename)
	// The first h1 names the version; scan ahead so text before it still
	// lands under the right version.
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			if t := string(headingText(h, src)); t != "" {
				version = t
			}
			break
		}
	}

	b := newDocBuilder(version)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 {
				continue // version title, not a chapter
			}
			b.startChapter(string(headingText(node, src)))
		default:
			for _, line := range strings.Split(blockText(n, src), "\n") {
				b.addSentence(line)
			}
		}
	}
	return b.root(), nil
}

func headingText(h *ast.Heading, src []byte) []byte {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		}
	}
	return bytes.TrimSpace(buf.Bytes())
}

// blockText gets the raw text content of a block-level goldmark node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
			buf.WriteByte('\n')
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/wenjia-h/corpustree/internal/corpus"
)

// DOCXLoader handles single-version corpora in .docx form: heading-styled
// paragraphs open chapters, body paragraphs contribute one sentence per line.
type DOCXLoader struct{}

func (l *DOCXLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	// go-docx needs a ReadSeeker+size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "corpustree-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := newDocBuilder(stem(filename))
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if isHeading(para) {
			b.startChapter(text)
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			b.addSentence(line)
		}
	}
	return b.root(), nil
}

func isHeading(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(para.Properties.Style.Val)
	return strings.HasPrefix(style, "heading")
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/wenjia-h/corpustree/internal/corpus"
)

// PDFLoader handles single-version corpora in PDF form: each page becomes a
// chapter, each line of extracted text a sentence.
type PDFLoader struct{}

func (l *PDFLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	// The pdf library requires a ReadSeeker+size, so spool to a temp file.
	tmp, err := os.CreateTemp("", "corpustree-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	b := newDocBuilder(stem(filename))
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.startChapter(fmt.Sprintf("Page %d", i))
		for _, line := range strings.Split(text, "\n") {
			b.addSentence(line)
		}
	}
	return b.root(), nil
}

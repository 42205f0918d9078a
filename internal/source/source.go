// Package source loads corpus files of various formats and converts each into
// the nested record form. Tabular formats (xlsx, csv, html tables) go through
// the tabular converter; document formats (markdown, docx, pdf) map headings
// to chapters and text lines to sentences under a single version.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wenjia-h/corpustree/internal/corpus"
	"github.com/wenjia-h/corpustree/internal/tabular"
)

// Loader converts raw corpus bytes into a nested record.
type Loader interface {
	Load(r io.Reader, filename string) (*corpus.Record, error)
}

// Options configure loader construction.
type Options struct {
	Tabular tabular.Options
}

// SupportedExtensions lists file extensions this service can ingest.
var SupportedExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
	".tsv":  true,
	".html": true,
	".htm":  true,
	".md":   true,
	".docx": true,
	".pdf":  true,
	".json": true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string, opts Options) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return &XLSXLoader{Options: opts.Tabular}, nil
	case ".csv":
		return &CSVLoader{Options: opts.Tabular}, nil
	case ".tsv":
		return &CSVLoader{Options: opts.Tabular, Comma: '\t'}, nil
	case ".html", ".htm":
		return &HTMLLoader{Options: opts.Tabular}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".json":
		return &JSONLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// stem strips the extension from a filename for use as a default name.
func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

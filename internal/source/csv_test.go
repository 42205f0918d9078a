package source

import (
	"strings"
	"testing"
)

func TestCSVLoader_Basic(t *testing.T) {
	input := "seg,ln,Alpha,Beta\n1,1,alpha text,beta text\n1,2,more alpha,\n"
	l := &CSVLoader{}
	rec, err := l.Load(strings.NewReader(input), "corpus.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.Children) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(rec.Children))
	}
	alpha := rec.Children[0]
	if alpha.Name != "Alpha" {
		t.Errorf("expected version Alpha, got %q", alpha.Name)
	}
	if len(alpha.Children) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(alpha.Children))
	}
	if len(alpha.Children[0].Children) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(alpha.Children[0].Children))
	}

	beta := rec.Children[1]
	if len(beta.Children) != 1 || len(beta.Children[0].Children) != 1 {
		t.Errorf("expected Beta to keep only its one filled row")
	}
}

func TestCSVLoader_TabSeparated(t *testing.T) {
	input := "seg\tln\tAlpha\n1\t1\ttabbed text\n"
	l := &CSVLoader{Comma: '\t'}
	rec, err := l.Load(strings.NewReader(input), "corpus.tsv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Children) != 1 {
		t.Fatalf("expected 1 version, got %d", len(rec.Children))
	}
}

func TestCSVLoader_RaggedRows(t *testing.T) {
	// Short rows are padded to the header width rather than rejected.
	input := "seg,ln,Alpha,Beta\n1,1,only alpha\n"
	l := &CSVLoader{}
	rec, err := l.Load(strings.NewReader(input), "ragged.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Children) != 1 {
		t.Fatalf("expected only Alpha to survive, got %d versions", len(rec.Children))
	}
}

func TestCSVLoader_EmptyFile(t *testing.T) {
	l := &CSVLoader{}
	if _, err := l.Load(strings.NewReader(""), "empty.csv"); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestForFile_Selection(t *testing.T) {
	tests := []struct {
		filename  string
		supported bool
	}{
		{"corpus.xlsx", true},
		{"corpus.csv", true},
		{"corpus.tsv", true},
		{"corpus.html", true},
		{"corpus.md", true},
		{"corpus.docx", true},
		{"corpus.pdf", true},
		{"corpus.json", true},
		{"corpus.exe", false},
		{"corpus", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.filename); got != tt.supported {
			t.Errorf("IsSupportedExtension(%q): expected %v, got %v", tt.filename, tt.supported, got)
		}
		_, err := ForFile(tt.filename, Options{})
		if tt.supported && err != nil {
			t.Errorf("ForFile(%q): unexpected error %v", tt.filename, err)
		}
		if !tt.supported && err == nil {
			t.Errorf("ForFile(%q): expected error", tt.filename)
		}
	}
}

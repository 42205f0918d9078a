package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/wenjia-h/corpustree/internal/corpus"
	"github.com/wenjia-h/corpustree/internal/tabular"
)

// CSVLoader handles CSV and TSV files.
type CSVLoader struct {
	Options tabular.Options
	Comma   rune // field separator, ',' when zero
}

func (l *CSVLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	reader := csv.NewReader(r)
	if l.Comma != 0 {
		reader.Comma = l.Comma
	}
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv file")
	}

	headers, rows := normalizeTable(records[0], records[1:])
	return tabular.ToRecord(headers, rows, l.Options)
}

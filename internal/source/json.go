package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wenjia-h/corpustree/internal/corpus"
)

// JSONLoader handles pre-built nested records, the same shape the tabular
// converters emit.
type JSONLoader struct{}

func (l *JSONLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	var rec corpus.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode nested record: %w", err)
	}
	return &rec, nil
}

package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/wenjia-h/corpustree/internal/corpus"
	"github.com/wenjia-h/corpustree/internal/tabular"
	"github.com/xuri/excelize/v2"
)

// XLSXLoader handles Excel workbooks.
type XLSXLoader struct {
	Options tabular.Options
}

// Sheet names that hold notes rather than corpus rows.
var skipSheets = map[string]bool{
	"info":     true,
	"metadata": true,
	"about":    true,
	"readme":   true,
	"notes":    true,
}

func (l *XLSXLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in workbook")
	}

	var sheetName string
	for _, sheet := range sheets {
		if !skipSheets[strings.ToLower(sheet)] {
			sheetName = sheet
			break
		}
	}
	if sheetName == "" {
		sheetName = sheets[len(sheets)-1]
	}

	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from %q: %w", sheetName, err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	headers, rows := normalizeTable(allRows[0], allRows[1:])
	return tabular.ToRecord(headers, rows, l.Options)
}

// normalizeTable trims headers and pads or trims each row to the header width.
func normalizeTable(headers []string, rows [][]string) ([]string, [][]string) {
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	for i, row := range rows {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			rows[i] = padded
		} else if len(row) > len(headers) {
			rows[i] = row[:len(headers)]
		}
	}
	return headers, rows
}

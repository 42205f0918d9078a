package cleaner

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Version text lives in columns C through N of the source workbooks; the two
// leading columns hold the chapter and line indexes and are never cleaned.
const (
	firstVersionColumn = 2
	lastVersionColumn  = 13
)

// CleanWorkbook reads an xlsx workbook, cleans the version-text columns of
// its first data sheet, and writes the cleaned workbook to dst. It returns
// the number of cells changed.
func (r *Rules) CleanWorkbook(src io.Reader, dst io.Writer) (int, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read rows: %w", err)
	}

	changed := 0
	// Row 1 is the header row; data starts at row 2.
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		last := lastVersionColumn
		if last >= len(row) {
			last = len(row) - 1
		}
		for col := firstVersionColumn; col <= last; col++ {
			cleaned := r.CleanCell(row[col])
			if cleaned == row[col] {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return changed, fmt.Errorf("cell name for (%d,%d): %w", col+1, i+1, err)
			}
			if err := f.SetCellStr(sheet, cell, cleaned); err != nil {
				return changed, fmt.Errorf("set cell %s: %w", cell, err)
			}
			changed++
		}
	}

	if err := f.Write(dst); err != nil {
		return changed, fmt.Errorf("write workbook: %w", err)
	}
	return changed, nil
}

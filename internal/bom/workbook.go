package bom

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Dataset is one fully ingested BOM workbook: the raw cell grid of the first
// sheet, the resolved column schema and the part-number catalog. The whole
// sheet is held in memory; multi-sheet workbooks are ignored past sheet one.
type Dataset struct {
	Sheet   string
	Rows    [][]string
	Columns Columns
}

// ReadWorkbook decodes the first sheet of an .xlsx stream into a cell grid.
// Row 0 is the header row; cells come back as their string rendering.
func ReadWorkbook(r io.Reader) ([][]string, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("sheet %q is empty", sheet)
	}

	return rows, sheet, nil
}

// ParseWorkbook reads a workbook stream and resolves its header row.
// It fails with *MissingColumnsError when required columns are absent.
func ParseWorkbook(r io.Reader) (*Dataset, error) {
	rows, sheet, err := ReadWorkbook(r)
	if err != nil {
		return nil, err
	}

	cols, err := ResolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	return &Dataset{Sheet: sheet, Rows: rows, Columns: cols}, nil
}

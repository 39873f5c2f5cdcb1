// =============================================================================
// Transmittal Updater - XLSX Reader
// =============================================================================
//
// This module reads spreadsheet workbooks (.xlsx and the formats excelize
// can open) into a Dataset. The first visible sheet is used; the first row
// is the header row and everything below it is data. Cell values arrive as
// the strings excelize renders for display, which is also what the matcher
// compares against, so a code column reads the same way it looks in Excel.
//
// =============================================================================

package xlsxio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
)

// ReadFile reads the workbook at path into a dataset.
func ReadFile(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f)
}

// Read reads a workbook from r into a dataset.
func Read(r io.Reader) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f)
}

// readWorkbook materializes the first sheet of an open workbook.
func readWorkbook(f *excelize.File) (*dataset.Dataset, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	headers := cleanHeaders(rows[0])

	ds, err := dataset.New(headers)
	if err != nil {
		return nil, err
	}

	for rowIndex := 1; rowIndex < len(rows); rowIndex++ {
		row := rows[rowIndex]
		if isRowEmpty(row) {
			continue
		}

		cells := make([]dataset.Value, len(headers))
		for col := range headers {
			cells[col] = cellValue(row, col)
		}

		if err := ds.AppendRow(cells); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+1, err)
		}
	}

	return ds, nil
}

// cellValue converts one rendered cell to a tagged value.
func cellValue(row []string, col int) dataset.Value {
	if col >= len(row) {
		return dataset.Empty()
	}
	value := strings.TrimSpace(row[col])
	if value == "" {
		return dataset.Empty()
	}
	return dataset.StringValue(value)
}

// cleanHeaders trims headers and names blank ones by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

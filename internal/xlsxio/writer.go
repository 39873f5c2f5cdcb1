// =============================================================================
// Transmittal Updater - XLSX Writer
// =============================================================================
//
// Serializes a dataset back to a workbook. Every cell is written in its
// textual form - stamped dates go out as the canonical "11-May-25" strings,
// not as Excel date serials, so the file matches what the preview showed and
// survives a re-run of the tool byte for byte.
//
// =============================================================================

package xlsxio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
)

// sheetName is the sheet updated datasets are written to.
const sheetName = "Sheet1"

// WriteFile serializes the dataset to a workbook at path.
func WriteFile(path string, ds *dataset.Dataset) error {
	f, err := buildWorkbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// Write serializes the dataset as a workbook to w.
func Write(w io.Writer, ds *dataset.Dataset) error {
	f, err := buildWorkbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

// buildWorkbook creates a single-sheet workbook from the dataset: one header
// row followed by the data rows in order.
func buildWorkbook(ds *dataset.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()

	header := make([]interface{}, ds.NumColumns())
	for i, name := range ds.Headers() {
		header[i] = name
	}
	if err := setRow(f, 1, header); err != nil {
		f.Close()
		return nil, err
	}

	cells := make([]interface{}, ds.NumColumns())
	for row := 0; row < ds.NumRows(); row++ {
		for col, cell := range ds.Row(row) {
			cells[col] = cell.String()
		}
		// Row 1 is the header, so data rows are offset by one.
		if err := setRow(f, row+2, cells); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

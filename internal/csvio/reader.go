// =============================================================================
// Transmittal Updater - Delimited-Text Reader
// =============================================================================
//
// This module parses delimited-text inputs (CSV and friends) into a Dataset.
// It handles the format quirks of legacy register exports:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Multi-row headers, merged column-wise
//   - Metadata rows between the headers and the data
//   - Inconsistent column counts (short rows are padded)
//
// Parsing is driven by the job's CSVSettings so new export formats are a
// configuration change, not a code change.
//
// =============================================================================

package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/transmittal-updater/internal/config"
	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
)

// ReadFile parses the delimited-text file at path into a dataset.
func ReadFile(path string, settings config.CSVSettings) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ds, err := Read(bufio.NewReader(file), settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return ds, nil
}

// Read parses delimited text from r into a dataset.
func Read(r io.Reader, settings config.CSVSettings) (*dataset.Dataset, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	headers, err := extractHeaders(allRows, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	ds, err := dataset.New(headers)
	if err != nil {
		return nil, err
	}

	startIndex := settings.DataStartRow - 1
	if startIndex < 0 {
		startIndex = settings.HeaderRows
	}

	for rowIndex := startIndex; rowIndex < len(allRows); rowIndex++ {
		row := allRows[rowIndex]
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

// cellValue converts one raw field to a tagged cell. Missing and blank
// fields become empty cells; everything else stays textual.
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

// configureReader applies the job's CSV settings to the reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = delimiterRune(settings)

	// Legacy exports are sloppy about quoting and trailing columns.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// extractHeaders extracts and merges headers. Multi-row headers are merged
// by joining the non-empty cells of each column top to bottom:
//
//	Row 1: "Drawing", "",       "Issue"
//	Row 2: "Number",  "Title",  "Date"
//	Result: "Drawing Number", "Title", "Issue Date"
func extractHeaders(allRows [][]string, settings config.CSVSettings) ([]string, error) {
	if settings.HeaderRows <= 0 {
		return nil, fmt.Errorf("header_rows must be at least 1")
	}

	if len(allRows) < settings.HeaderRows {
		return nil, fmt.Errorf("file has fewer rows than header_rows setting")
	}

	if settings.HeaderRows == 1 {
		return cleanHeaders(allRows[0]), nil
	}

	maxCols := 0
	for i := 0; i < settings.HeaderRows; i++ {
		if len(allRows[i]) > maxCols {
			maxCols = len(allRows[i])
		}
	}

	headers := make([]string, maxCols)
	for col := 0; col < maxCols; col++ {
		var parts []string

		for row := 0; row < settings.HeaderRows; row++ {
			if col < len(allRows[row]) {
				value := strings.TrimSpace(allRows[row][col])
				if value != "" {
					parts = append(parts, value)
				}
			}
		}

		headers[col] = strings.Join(parts, " ")
	}

	return cleanHeaders(headers), nil
}

// cleanHeaders trims headers and names any blank ones by position, since
// the dataset requires unique, non-empty column names.
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

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

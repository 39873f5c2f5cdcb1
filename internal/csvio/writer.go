// =============================================================================
// Transmittal Updater - Delimited-Text Writer
// =============================================================================

package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/ginjaninja78/transmittal-updater/internal/config"
	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
)

// WriteFile serializes the dataset to a delimited-text file at path, using
// the same delimiter the input was parsed with.
func WriteFile(path string, ds *dataset.Dataset, settings config.CSVSettings) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := Write(w, ds, settings); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return w.Flush()
}

// Write serializes the dataset as delimited text: one header row followed by
// every data row in order. Cells are written in their textual form, so
// stamped dates come out in the canonical format.
func Write(w io.Writer, ds *dataset.Dataset, settings config.CSVSettings) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiterRune(settings)

	if err := csvWriter.Write(ds.Headers()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, ds.NumColumns())
	for row := 0; row < ds.NumRows(); row++ {
		for col, cell := range ds.Row(row) {
			record[col] = cell.String()
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row+1, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// delimiterRune resolves the configured delimiter the same way the reader
// does, so round trips keep the format.
func delimiterRune(settings config.CSVSettings) rune {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if settings.Delimiter != "" {
			r, _ := utf8.DecodeRuneInString(settings.Delimiter)
			return r
		}
		return ','
	}
}

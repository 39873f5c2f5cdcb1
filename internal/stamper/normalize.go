// =============================================================================
// Transmittal Updater - Date Normalization Pass
// =============================================================================
//
// The normalization pass scans every column of a dataset and rewrites the
// ones that are entirely date-valued into the canonical format. Columns with
// any non-date content are left completely untouched; a failed parse is how
// a column declares itself "not a date column", never an error.
//
// The pass is idempotent: canonical strings sit first in the parse layout
// list, so a normalized column re-parses to the same calendar dates and
// reformats to the same strings.
//
// =============================================================================

package stamper

import (
	"time"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
)

// NormalizeDates rewrites every date-valued column of ds to the canonical
// format and returns the rewritten copy. The input is never mutated.
func NormalizeDates(ds *dataset.Dataset, style DateStyle) *dataset.Dataset {
	out := ds.Clone()

	for i := 0; i < out.NumColumns(); i++ {
		col := out.ColumnAt(i)

		dates, ok := interpretAsDates(col.Cells)
		if !ok {
			continue
		}

		for row, cell := range col.Cells {
			if cell.IsEmpty() {
				continue
			}
			t := dates[row]
			col.Cells[row] = dataset.DateValue(t, FormatDate(t, style))
		}
	}

	return out
}

// interpretAsDates attempts to read an entire column as dates. Empty cells
// are tolerated and skipped, but a column needs at least one populated cell
// to qualify - an all-empty column is not a date column.
func interpretAsDates(cells []dataset.Value) ([]time.Time, bool) {
	dates := make([]time.Time, len(cells))
	populated := 0

	for i, cell := range cells {
		if cell.IsEmpty() {
			continue
		}

		// Cells the stamper already typed carry their date directly.
		if t, ok := cell.Date(); ok {
			dates[i] = t
			populated++
			continue
		}

		t, ok := parseDate(cell.String())
		if !ok {
			return nil, false
		}
		dates[i] = t
		populated++
	}

	return dates, populated > 0
}

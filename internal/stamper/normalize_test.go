package stamper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
)

func buildColumns(t *testing.T, headers []string, rows ...[]string) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.New(headers)
	require.NoError(t, err)

	for _, row := range rows {
		cells := make([]dataset.Value, len(row))
		for i, s := range row {
			if s == "" {
				cells[i] = dataset.Empty()
			} else {
				cells[i] = dataset.StringValue(s)
			}
		}
		require.NoError(t, ds.AppendRow(cells))
	}

	return ds
}

func TestNormalizeDatesRewritesDateColumns(t *testing.T) {
	ds := buildColumns(t, []string{"Code", "Received"},
		[]string{"A1", "2025-05-11"},
		[]string{"A2", "01/02/2024"},
		[]string{"A3", "11-May-25"},
	)

	out := stamper.NormalizeDates(ds, stamper.StyleTitle)

	assert.Equal(t, []string{"11-May-25", "02-Jan-24", "11-May-25"}, columnStrings(t, out, "Received"))
	// Non-date columns are untouched.
	assert.Equal(t, []string{"A1", "A2", "A3"}, columnStrings(t, out, "Code"))
	// The input dataset is untouched.
	assert.Equal(t, []string{"2025-05-11", "01/02/2024", "11-May-25"}, columnStrings(t, ds, "Received"))
}

func TestNormalizeDatesSkipsMixedColumns(t *testing.T) {
	ds := buildColumns(t, []string{"Notes"},
		[]string{"2025-05-11"},
		[]string{"pending review"},
	)

	out := stamper.NormalizeDates(ds, stamper.StyleTitle)

	assert.Equal(t, []string{"2025-05-11", "pending review"}, columnStrings(t, out, "Notes"))
}

func TestNormalizeDatesIgnoresEmptyCells(t *testing.T) {
	ds := buildColumns(t, []string{"Received"},
		[]string{"2025-05-11"},
		[]string{""},
		[]string{"2025-06-01"},
	)

	out := stamper.NormalizeDates(ds, stamper.StyleTitle)

	assert.Equal(t, []string{"11-May-25", "", "01-Jun-25"}, columnStrings(t, out, "Received"))
}

func TestNormalizeDatesSkipsAllEmptyColumns(t *testing.T) {
	ds := buildColumns(t, []string{"Received"},
		[]string{""},
		[]string{""},
	)

	out := stamper.NormalizeDates(ds, stamper.StyleTitle)

	assert.Equal(t, []string{"", ""}, columnStrings(t, out, "Received"))
}

func TestNormalizeDatesIsIdempotent(t *testing.T) {
	ds := buildColumns(t, []string{"Received"},
		[]string{"2025-05-11"},
		[]string{"January 2, 2025"},
	)

	once := stamper.NormalizeDates(ds, stamper.StyleTitle)
	twice := stamper.NormalizeDates(once, stamper.StyleTitle)

	assert.Equal(t, columnStrings(t, once, "Received"), columnStrings(t, twice, "Received"))
}

func TestNormalizeDatesUpperStyleIsIdempotent(t *testing.T) {
	ds := buildColumns(t, []string{"Received"},
		[]string{"2025-05-11"},
	)

	once := stamper.NormalizeDates(ds, stamper.StyleUpper)
	assert.Equal(t, []string{"11-MAY-25"}, columnStrings(t, once, "Received"))

	twice := stamper.NormalizeDates(once, stamper.StyleUpper)
	assert.Equal(t, []string{"11-MAY-25"}, columnStrings(t, twice, "Received"))
}

func TestNormalizeDatesUsesStoredDates(t *testing.T) {
	// Cells already carrying a parsed date reformat without reparsing the
	// displayed text.
	ds, err := dataset.New([]string{"Received"})
	require.NoError(t, err)

	when := time.Date(2025, time.May, 11, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ds.AppendRow([]dataset.Value{
		dataset.DateValue(when, "May 11th"),
	}))

	out := stamper.NormalizeDates(ds, stamper.StyleTitle)

	assert.Equal(t, []string{"11-May-25"}, columnStrings(t, out, "Received"))
}

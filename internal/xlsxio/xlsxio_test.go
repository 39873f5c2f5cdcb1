package xlsxio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
	"github.com/ginjaninja78/transmittal-updater/internal/xlsxio"
)

// buildWorkbook writes rows into a fresh workbook and returns its bytes.
func buildWorkbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadWorkbook(t *testing.T) {
	buf := buildWorkbook(t,
		[]interface{}{"Code", "Date", "Transmittal"},
		[]interface{}{"A1", "", ""},
		[]interface{}{"A2", "2025-01-02", "TR-01"},
	)

	ds, err := xlsxio.Read(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Code", "Date", "Transmittal"}, ds.Headers())
	assert.Equal(t, 2, ds.NumRows())

	code, err := ds.Column("Code")
	require.NoError(t, err)
	assert.Equal(t, "A1", code.Cells[0].String())
	assert.Equal(t, "A2", code.Cells[1].String())

	date, err := ds.Column("Date")
	require.NoError(t, err)
	assert.True(t, date.Cells[0].IsEmpty())
	assert.Equal(t, "2025-01-02", date.Cells[1].String())
}

func TestReadWorkbookSkipsEmptyRows(t *testing.T) {
	buf := buildWorkbook(t,
		[]interface{}{"Code"},
		[]interface{}{"A1"},
		[]interface{}{""},
		[]interface{}{"A2"},
	)

	ds, err := xlsxio.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.NumRows())
}

func TestReadWorkbookNamesBlankHeaders(t *testing.T) {
	buf := buildWorkbook(t,
		[]interface{}{"Code", "", "Date"},
		[]interface{}{"A1", "x", "2025-01-02"},
	)

	ds, err := xlsxio.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Code", "Column_2", "Date"}, ds.Headers())
}

func TestReadWorkbookRejectsEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := xlsxio.Read(&buf)
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	ds, err := dataset.New([]string{"Code", "Date", "Transmittal"})
	require.NoError(t, err)
	require.NoError(t, ds.AppendRow([]dataset.Value{
		dataset.StringValue("A1"),
		dataset.StringValue("11-May-25"),
		dataset.StringValue("TR-07"),
	}))
	require.NoError(t, ds.AppendRow([]dataset.Value{
		dataset.StringValue("A2"),
		dataset.Empty(),
		dataset.Empty(),
	}))

	var buf bytes.Buffer
	require.NoError(t, xlsxio.Write(&buf, ds))

	back, err := xlsxio.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, ds.Headers(), back.Headers())
	require.Equal(t, ds.NumRows(), back.NumRows())
	for row := 0; row < ds.NumRows(); row++ {
		for col, cell := range ds.Row(row) {
			assert.Equal(t, cell.String(), back.Row(row)[col].String())
		}
	}
}

func TestWriteFileCreatesReadableWorkbook(t *testing.T) {
	ds, err := dataset.New([]string{"Code"})
	require.NoError(t, err)
	require.NoError(t, ds.AppendRow([]dataset.Value{dataset.StringValue("A1")}))

	path := t.TempDir() + "/out.xlsx"
	require.NoError(t, xlsxio.WriteFile(path, ds))

	back, err := xlsxio.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, back.NumRows())
}

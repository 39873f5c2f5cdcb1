package stamper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
	"github.com/ginjaninja78/transmittal-updater/internal/stamper"
)

// buildRegister creates the test dataset used throughout: three rows with a
// code column and two blank write columns.
func buildRegister(t *testing.T, codes ...string) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.New([]string{"Code", "Date", "Transmittal"})
	require.NoError(t, err)

	for _, code := range codes {
		require.NoError(t, ds.AppendRow([]dataset.Value{
			dataset.StringValue(code),
			dataset.Empty(),
			dataset.Empty(),
		}))
	}

	return ds
}

func baseRequest(codes ...string) stamper.Request {
	return stamper.Request{
		Codes:             codes,
		Date:              time.Date(2025, time.May, 11, 0, 0, 0, 0, time.UTC),
		Transmittal:       "TR-07",
		CodeColumn:        "Code",
		DateColumn:        "Date",
		TransmittalColumn: "Transmittal",
	}
}

func columnStrings(t *testing.T, ds *dataset.Dataset, name string) []string {
	t.Helper()

	col, err := ds.Column(name)
	require.NoError(t, err)

	out := make([]string, len(col.Cells))
	for i, cell := range col.Cells {
		out[i] = cell.String()
	}
	return out
}

func TestUpdateStampsMatchingRows(t *testing.T) {
	ds := buildRegister(t, "A1", "A2", "A3")

	res, err := stamper.Update(ds, baseRequest("a1", " A3 "))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, stamper.OutcomeUpdated, res.Outcome)

	assert.Equal(t, []string{"11-May-25", "", "11-May-25"}, columnStrings(t, res.Dataset, "Date"))
	assert.Equal(t, []string{"TR-07", "", "TR-07"}, columnStrings(t, res.Dataset, "Transmittal"))

	// The input dataset is untouched.
	assert.Equal(t, []string{"", "", ""}, columnStrings(t, ds, "Date"))
}

func TestUpdatePreservesShape(t *testing.T) {
	ds := buildRegister(t, "A1", "A2", "A3")

	res, err := stamper.Update(ds, baseRequest("a1", "a2", "a3"))
	require.NoError(t, err)

	assert.Equal(t, ds.Headers(), res.Dataset.Headers())
	assert.Equal(t, ds.NumRows(), res.Dataset.NumRows())
	assert.Equal(t, []string{"A1", "A2", "A3"}, columnStrings(t, res.Dataset, "Code"))
}

func TestUpdateIsCaseAndWhitespaceInsensitive(t *testing.T) {
	ds := buildRegister(t, "ABC")

	padded, err := stamper.Update(ds, baseRequest("  Abc "))
	require.NoError(t, err)

	plain, err := stamper.Update(ds, baseRequest("abc"))
	require.NoError(t, err)

	assert.Equal(t, 1, padded.Updated)
	assert.Equal(t, 1, plain.Updated)
	assert.Equal(t, columnStrings(t, padded.Dataset, "Date"), columnStrings(t, plain.Dataset, "Date"))
	assert.Equal(t, columnStrings(t, padded.Dataset, "Transmittal"), columnStrings(t, plain.Dataset, "Transmittal"))
}

func TestUpdateEmptyCodeList(t *testing.T) {
	ds := buildRegister(t, "A1", "A2")

	res, err := stamper.Update(ds, baseRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, stamper.OutcomeEmptyCodeList, res.Outcome)
	assert.Equal(t, []string{"", ""}, columnStrings(t, res.Dataset, "Date"))
}

func TestUpdateNoMatches(t *testing.T) {
	ds := buildRegister(t, "A1", "A2")

	res, err := stamper.Update(ds, baseRequest("nonexistent-code"))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, stamper.OutcomeNoMatches, res.Outcome)
	assert.Equal(t, []string{"", ""}, columnStrings(t, res.Dataset, "Date"))
	assert.Equal(t, []string{"", ""}, columnStrings(t, res.Dataset, "Transmittal"))
}

func TestUpdateDuplicateCodesCountTwice(t *testing.T) {
	// The matched-row count accumulates per code, so a duplicate code
	// matching the same row counts it twice. The stamped values are the
	// same both times, so the dataset itself is unambiguous.
	ds := buildRegister(t, "A1", "A2", "A3")

	res, err := stamper.Update(ds, baseRequest("a1", "a1"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, []string{"11-May-25", "", ""}, columnStrings(t, res.Dataset, "Date"))
}

func TestUpdateUnknownColumnFailsWithoutMutation(t *testing.T) {
	ds := buildRegister(t, "A1")

	req := baseRequest("a1")
	req.DateColumn = "Issue Date"

	_, err := stamper.Update(ds, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
	assert.ErrorContains(t, err, "Issue Date")

	assert.Equal(t, []string{""}, columnStrings(t, ds, "Transmittal"))
}

func TestUpdateUpperStyle(t *testing.T) {
	ds := buildRegister(t, "A1")

	req := baseRequest("a1")
	req.Style = stamper.StyleUpper

	res, err := stamper.Update(ds, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"11-MAY-25"}, columnStrings(t, res.Dataset, "Date"))
}

func TestUpdateOverlappingWriteColumns(t *testing.T) {
	// Date and transmittal may target the same column; the transmittal
	// write lands last.
	ds, err := dataset.New([]string{"Code", "Stamp"})
	require.NoError(t, err)
	require.NoError(t, ds.AppendRow([]dataset.Value{
		dataset.StringValue("A1"),
		dataset.Empty(),
	}))

	req := baseRequest("a1")
	req.DateColumn = "Stamp"
	req.TransmittalColumn = "Stamp"

	res, err := stamper.Update(ds, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"TR-07"}, columnStrings(t, res.Dataset, "Stamp"))
}

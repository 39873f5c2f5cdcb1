// =============================================================================
// Transmittal Updater - Matcher/Updater
// =============================================================================
//
// This module is the core of the tool: given a dataset, a list of identifier
// codes, and a date/transmittal pair, it finds every row whose lookup-column
// value equals a code (case-insensitive, whitespace-trimmed) and stamps the
// date and transmittal columns of those rows.
//
// CONTRACT:
//   - All three column names must exist in the dataset. If any is missing,
//     Update fails with a wrapped dataset.ErrColumnNotFound and the input
//     dataset is left untouched.
//   - The input dataset itself is never mutated; Update works on a clone and
//     returns it. Shape (columns, row count, row order) is preserved; only
//     cells in the two write columns change, and only on matched rows.
//   - The updated-row count accumulates per code: a row matched by two
//     different codes in the same call counts twice. The stamped values are
//     identical either way, so the final dataset is unambiguous.
//
// =============================================================================

package stamper

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/transmittal-updater/internal/dataset"
)

// =============================================================================
// REQUEST / RESULT TYPES
// =============================================================================

// Request carries everything one Update call needs.
type Request struct {
	// Codes are the identifier codes to match. Usually produced by
	// ParseCodes from a pasted blob or a codes file. May be empty.
	Codes []string

	// Date is the calendar date stamped into the date column, rendered in
	// the canonical format before writing.
	Date time.Time

	// Transmittal is the transmittal reference stamped into the
	// transmittal column, verbatim.
	Transmittal string

	// Style selects the letter case of the stamped date.
	Style DateStyle

	// CodeColumn is the lookup column the codes are matched against.
	CodeColumn string

	// DateColumn and TransmittalColumn are the write columns. They may
	// name the same column, or even the lookup column; later writes win.
	DateColumn        string
	TransmittalColumn string
}

// Outcome classifies what an Update call did. NoMatches and EmptyCodeList
// are valid outcomes, not errors; the CLI reports them differently.
type Outcome int

const (
	// OutcomeUpdated means at least one row was stamped.
	OutcomeUpdated Outcome = iota

	// OutcomeNoMatches means codes were supplied but none matched a row.
	OutcomeNoMatches

	// OutcomeEmptyCodeList means there were no usable codes: nothing to do.
	OutcomeEmptyCodeList
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeNoMatches:
		return "no matches"
	case OutcomeEmptyCodeList:
		return "empty code list"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Update call.
type Result struct {
	// Dataset is the updated copy. On EmptyCodeList it is an unmodified
	// clone of the input.
	Dataset *dataset.Dataset

	// Updated is the accumulated matched-row count across all codes.
	Updated int

	// Outcome classifies the result for reporting.
	Outcome Outcome
}

// =============================================================================
// UPDATE
// =============================================================================

// Update stamps the date and transmittal values onto every row of ds whose
// lookup-column value matches one of the codes.
func Update(ds *dataset.Dataset, req Request) (Result, error) {
	// Validate the column contract up front so a bad request never leaves
	// a partially stamped dataset behind.
	for _, name := range []string{req.CodeColumn, req.DateColumn, req.TransmittalColumn} {
		if !ds.HasColumn(name) {
			return Result{}, fmt.Errorf("%w: %q", dataset.ErrColumnNotFound, name)
		}
	}

	out := ds.Clone()

	if len(req.Codes) == 0 {
		return Result{Dataset: out, Updated: 0, Outcome: OutcomeEmptyCodeList}, nil
	}

	lookup, _ := out.Column(req.CodeColumn)
	dateCol, _ := out.Column(req.DateColumn)
	transmittalCol, _ := out.Column(req.TransmittalColumn)

	stampedDate := dataset.DateValue(req.Date, FormatDate(req.Date, req.Style))
	stampedTransmittal := dataset.StringValue(req.Transmittal)

	updated := 0
	for _, code := range req.Codes {
		want := normalizeCode(code)

		for row, cell := range lookup.Cells {
			if normalizeCode(cell.String()) != want {
				continue
			}
			dateCol.Cells[row] = stampedDate
			transmittalCol.Cells[row] = stampedTransmittal
			updated++
		}
	}

	outcome := OutcomeUpdated
	if updated == 0 {
		outcome = OutcomeNoMatches
	}

	return Result{Dataset: out, Updated: updated, Outcome: outcome}, nil
}

// normalizeCode is the comparison form of a code or lookup cell: trimmed and
// lower-cased. Both sides of every comparison go through it.
func normalizeCode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

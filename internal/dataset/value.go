// =============================================================================
// Transmittal Updater - Tagged Cell Values
// =============================================================================
//
// Cells in a dataset are tagged values rather than raw strings. Spreadsheet
// readers produce String cells, the stamper produces Date cells, and both are
// coerced to their textual form only at comparison or serialization time.
// This keeps "what the cell is" separate from "how the cell prints", so a
// stamped date keeps its calendar value even after it has been written out.
//
// =============================================================================

package dataset

import "time"

// Kind identifies what a cell value holds.
type Kind int

const (
	// KindEmpty is a cell with no value. It prints as the empty string.
	KindEmpty Kind = iota

	// KindString is an opaque textual cell. This is what file readers
	// produce for every populated cell.
	KindString

	// KindDate is a calendar date plus its canonical textual form.
	// Produced by the stamper and the date normalizer.
	KindDate
)

// Value is a tagged cell value.
type Value struct {
	kind Kind
	str  string
	date time.Time
}

// Empty returns an empty cell value.
func Empty() Value {
	return Value{kind: KindEmpty}
}

// StringValue returns a textual cell value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// DateValue returns a date cell. The formatted string is the canonical
// textual form the cell serializes to (see stamper.FormatDate).
func DateValue(t time.Time, formatted string) Value {
	return Value{kind: KindDate, str: formatted, date: t}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// String coerces the value to its textual form. Empty cells coerce to "".
func (v Value) String() string {
	return v.str
}

// Date returns the calendar date and whether the cell holds one.
func (v Value) Date() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// IsEmpty reports whether the cell holds no value. A String cell containing
// only whitespace still counts as populated; emptiness is a kind, not a
// property of the text.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

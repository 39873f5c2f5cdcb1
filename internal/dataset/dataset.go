// =============================================================================
// Transmittal Updater - Dataset Model
// =============================================================================
//
// A Dataset is an ordered collection of named columns whose cells are aligned
// by row index. It is the in-memory representation of one sheet of an input
// file: readers (internal/xlsxio, internal/csvio) materialize into it, the
// stamper mutates a clone of it, and writers serialize it back out.
//
// INVARIANTS:
//   - Column order is the order of construction and is preserved through
//     Clone and serialization.
//   - All columns have the same length at all times; AppendRow pads short
//     rows with empty cells and rejects rows wider than the column set.
//   - Column names are unique. Lookup is by exact name.
//
// =============================================================================

package dataset

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when a named column does not exist in the
// dataset. Callers that received the column name from user input should
// surface this as a configuration error.
var ErrColumnNotFound = errors.New("column not found")

// ErrDuplicateColumn is returned when a dataset is constructed with two
// columns of the same name.
var ErrDuplicateColumn = errors.New("duplicate column name")

// Column is one named, ordered sequence of cell values.
type Column struct {
	// Name is the column header as it appeared in the source file.
	Name string

	// Cells holds the column's values, aligned by row index with every
	// other column in the dataset.
	Cells []Value
}

// Dataset is an ordered, column-major table.
type Dataset struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New creates an empty dataset with the given column headers, in order.
func New(headers []string) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]*Column, 0, len(headers)),
		index:   make(map[string]int, len(headers)),
	}

	for _, name := range headers {
		if _, exists := ds.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		ds.index[name] = len(ds.columns)
		ds.columns = append(ds.columns, &Column{Name: name})
	}

	return ds, nil
}

// AppendRow appends one row of cells in column order. Rows shorter than the
// column set are padded with empty cells; rows longer than it are rejected.
func (d *Dataset) AppendRow(cells []Value) error {
	if len(cells) > len(d.columns) {
		return fmt.Errorf("row has %d cells but dataset has %d columns", len(cells), len(d.columns))
	}

	for i, col := range d.columns {
		if i < len(cells) {
			col.Cells = append(col.Cells, cells[i])
		} else {
			col.Cells = append(col.Cells, Empty())
		}
	}
	d.rows++

	return nil
}

// Headers returns the column names in order.
func (d *Dataset) Headers() []string {
	headers := make([]string, len(d.columns))
	for i, col := range d.columns {
		headers[i] = col.Name
	}
	return headers
}

// NumRows returns the number of rows in the dataset.
func (d *Dataset) NumRows() int {
	return d.rows
}

// NumColumns returns the number of columns in the dataset.
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Column returns the named column. The returned column is the dataset's own
// storage; writing through it mutates the dataset.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return d.columns[i], nil
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnAt returns the column at the given position.
func (d *Dataset) ColumnAt(i int) *Column {
	return d.columns[i]
}

// Row returns one row of cells in column order.
func (d *Dataset) Row(i int) []Value {
	row := make([]Value, len(d.columns))
	for c, col := range d.columns {
		row[c] = col.Cells[i]
	}
	return row
}

// Clone returns a deep copy of the dataset. Mutations to either copy never
// observe the other, which is what lets the stamper guarantee "no partial
// mutation" on validation failure.
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		columns: make([]*Column, len(d.columns)),
		index:   make(map[string]int, len(d.index)),
		rows:    d.rows,
	}

	for i, col := range d.columns {
		cells := make([]Value, len(col.Cells))
		copy(cells, col.Cells)
		clone.columns[i] = &Column{Name: col.Name, Cells: cells}
		clone.index[col.Name] = i
	}

	return clone
}

// Package tally defines the data model for vote-tally reconciliation:
// extracted booth-level tables and authoritative candidate slates.
// Tables are built once, validated at construction, and treated as
// read-only by everything downstream.
package tally

import (
	"fmt"

	"github.com/agentstation/recount/pkg/errors"
)

// Row is a single extracted table row: one booth's counts across all
// extracted columns. The Key is the booth identifier as it appeared in
// the source document.
type Row struct {
	Key    string  `json:"key" yaml:"key"`
	Values []int64 `json:"values" yaml:"values"`
}

// Header is the optional text-derived identity of one extracted
// column. Extraction sometimes captures header text above a column;
// when it does, the matcher can use it. Both fields may be empty.
type Header struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Party string `json:"party,omitempty" yaml:"party,omitempty"`
}

// Table is an ordered collection of rows with a uniform column count.
// The column count need not match the number of candidates on a slate;
// matching the two is the reconciliation engine's job.
type Table struct {
	rows    []Row
	headers []Header
	cols    int
}

// NewTable builds a table from extracted rows, validating the upstream
// extraction contract: every row has the same number of cells and every
// cell is a non-negative count. A nil or empty row set produces a valid
// empty table.
func NewTable(rows []Row) (*Table, error) {
	t := &Table{}
	if len(rows) == 0 {
		return t, nil
	}

	t.cols = len(rows[0].Values)
	t.rows = make([]Row, len(rows))
	for i, row := range rows {
		if len(row.Values) != t.cols {
			return nil, &errors.ValidationError{
				Field:   fmt.Sprintf("rows[%d]", i),
				Value:   row.Key,
				Message: fmt.Sprintf("has %d cells, expected %d", len(row.Values), t.cols),
			}
		}
		for j, v := range row.Values {
			if v < 0 {
				return nil, &errors.ValidationError{
					Field:   fmt.Sprintf("rows[%d].values[%d]", i, j),
					Value:   v,
					Message: "cell values must be non-negative",
				}
			}
		}
		values := make([]int64, t.cols)
		copy(values, row.Values)
		t.rows[i] = Row{Key: row.Key, Values: values}
	}
	return t, nil
}

// MustTable builds a table and panics on invalid rows. Intended for
// tests and literals known to be well formed.
func MustTable(rows []Row) *Table {
	t, err := NewTable(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns the uniform column count. An empty table has zero
// columns.
func (t *Table) Columns() int {
	if t == nil {
		return 0
	}
	return t.cols
}

// Rows returns the underlying rows. The slice and its cells are shared,
// not copied; callers must treat them as read-only.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return t.rows
}

// Row returns the row at index i.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Column returns a copy of one column's values in row order.
func (t *Table) Column(col int) []int64 {
	values := make([]int64, len(t.rows))
	for i, row := range t.rows {
		values[i] = row.Values[col]
	}
	return values
}

// ColumnSum returns the sum of one column across all rows.
func (t *Table) ColumnSum(col int) int64 {
	var sum int64
	for _, row := range t.rows {
		sum += row.Values[col]
	}
	return sum
}

// ColumnSums returns every column's sum, indexed by column.
func (t *Table) ColumnSums() []int64 {
	sums := make([]int64, t.Columns())
	for _, row := range t.rows {
		for j, v := range row.Values {
			sums[j] += v
		}
	}
	return sums
}

// SetHeaders attaches text-derived column identities. The header count
// must equal the column count.
func (t *Table) SetHeaders(headers []Header) error {
	if len(headers) != t.cols {
		return &errors.ValidationError{
			Field:   "headers",
			Value:   len(headers),
			Message: fmt.Sprintf("expected %d headers, one per column", t.cols),
		}
	}
	t.headers = make([]Header, len(headers))
	copy(t.headers, headers)
	return nil
}

// Headers returns the column headers, or nil when extraction produced
// none.
func (t *Table) Headers() []Header {
	if t == nil {
		return nil
	}
	return t.headers
}

// Header returns the header for one column. Columns without headers
// yield the zero Header.
func (t *Table) Header(col int) Header {
	if col < len(t.headers) {
		return t.headers[col]
	}
	return Header{}
}

// Copy returns a deep copy of the table. Used by the orchestrator to
// build a corrected table without mutating its input.
func (t *Table) Copy() *Table {
	if t == nil {
		return nil
	}
	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		values := make([]int64, len(row.Values))
		copy(values, row.Values)
		rows[i] = Row{Key: row.Key, Values: values}
	}
	copied := &Table{rows: rows, cols: t.cols}
	if t.headers != nil {
		copied.headers = make([]Header, len(t.headers))
		copy(copied.headers, t.headers)
	}
	return copied
}

// SetColumn replaces one column's values in row order. It is the only
// mutation the corrected-table builder performs; input tables are never
// touched.
func (t *Table) SetColumn(col int, values []int64) error {
	if len(values) != len(t.rows) {
		return &errors.ValidationError{
			Field:   "values",
			Value:   len(values),
			Message: fmt.Sprintf("expected %d values for column %d", len(t.rows), col),
		}
	}
	for i := range t.rows {
		t.rows[i].Values[col] = values[i]
	}
	return nil
}

// Equal reports whether two tables have identical keys and cells.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() || t.Columns() != other.Columns() {
		return false
	}
	for i, row := range t.Rows() {
		o := other.Row(i)
		if row.Key != o.Key {
			return false
		}
		for j, v := range row.Values {
			if o.Values[j] != v {
				return false
			}
		}
	}
	return true
}

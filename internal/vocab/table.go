// Package vocab validates curator-maintained term tables and assembles them into
// standardized term vocabulary records. A table arrives with arbitrary header casing
// and extra columns; NormalizeColumns, Validate and CreateTermsJSON turn it into the
// single-record JSON shape written next to each community configuration.
package vocab

import "strings"

// Row holds one nullable cell per table column. A nil cell is a missing value.
// Rows may be shorter than the header; absent trailing cells read as missing.
type Row []*string

// Table is an ordered, column-labelled set of term rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// Str returns a pointer to s, for building rows in code.
func Str(s string) *string {
	return &s
}

// FromRecords builds a table from raw records where the first record is the
// header. Empty cells become missing values and short rows are padded.
func FromRecords(records [][]string) Table {
	if len(records) == 0 {
		return Table{}
	}

	columns := make([]string, len(records[0]))
	copy(columns, records[0])

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i := range columns {
			if i < len(record) && record[i] != "" {
				row[i] = Str(record[i])
			}
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the first column called name, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column called name.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at row i of the named column and whether it is present.
func (t Table) Cell(i int, column string) (string, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return "", false
	}
	v := t.Rows[i].at(idx)
	if v == nil {
		return "", false
	}
	return *v, true
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)

	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.clone(len(columns))
	}
	return Table{Columns: columns, Rows: rows}
}

// selectColumns returns a new table holding only the columns at the given indexes.
func (t Table) selectColumns(indexes []int) Table {
	columns := make([]string, len(indexes))
	for i, idx := range indexes {
		columns[i] = t.Columns[idx]
	}

	rows := make([]Row, len(t.Rows))
	for r, row := range t.Rows {
		out := make(Row, len(indexes))
		for i, idx := range indexes {
			if v := row.at(idx); v != nil {
				out[i] = Str(*v)
			}
		}
		rows[r] = out
	}
	return Table{Columns: columns, Rows: rows}
}

func (r Row) at(i int) *string {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

func (r Row) clone(width int) Row {
	out := make(Row, width)
	for i := range out {
		if v := r.at(i); v != nil {
			out[i] = Str(*v)
		}
	}
	return out
}

// isBlank reports whether a cell is missing or only whitespace.
func isBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

package vocab

import "strings"

// NormalizeColumns returns a copy of t with every column name lower-cased.
// Column order and cell values are unchanged.
func NormalizeColumns(t Table) Table {
	out := t.Clone()
	for i, c := range out.Columns {
		out.Columns[i] = strings.ToLower(c)
	}
	return out
}

// Project returns a copy of t holding only the columns named in allowed, in the
// table's own column order. Unrecognized columns are dropped without error.
func Project(t Table, allowed []string) Table {
	keep := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		keep[name] = true
	}

	var indexes []int
	for i, c := range t.Columns {
		if keep[c] {
			indexes = append(indexes, i)
		}
	}
	return t.selectColumns(indexes)
}

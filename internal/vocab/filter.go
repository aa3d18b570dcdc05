package vocab

// InvalidTerm identifies a row a curator marked for exclusion.
type InvalidTerm struct {
	ID     string
	Name   string
	Reason string
}

// RemoveInvalidRows drops rows whose invalid_reason is present and not blank, then
// drops the invalid_reason column itself. Surviving rows keep their order. A table
// without an invalid_reason column is returned unchanged.
func RemoveInvalidRows(t Table) (Table, []InvalidTerm) {
	reasonIdx := t.ColumnIndex(ColumnInvalidReason)
	if reasonIdx < 0 {
		return t, nil
	}

	keepCols := make([]int, 0, len(t.Columns)-1)
	for i, c := range t.Columns {
		if c != ColumnInvalidReason {
			keepCols = append(keepCols, i)
		}
	}

	var (
		kept    []Row
		removed []InvalidTerm
	)
	for i, row := range t.Rows {
		reason := row.at(reasonIdx)
		if isBlank(reason) {
			kept = append(kept, row)
			continue
		}
		id, _ := t.Cell(i, ColumnID)
		name, _ := t.Cell(i, ColumnName)
		removed = append(removed, InvalidTerm{ID: id, Name: name, Reason: *reason})
	}

	filtered := Table{Columns: t.Columns, Rows: kept}.selectColumns(keepCols)
	return filtered, removed
}

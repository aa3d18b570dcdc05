// Package vocab_test tests term table validation: required columns, id uniqueness and
// pattern, strict column filtering, and header case handling.
// Related: internal/vocab/validate.go, internal/vocab/schema.go
// Tags: vocab, validation, schema, terms
package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// termTable builds a table from string rows where "" means a missing value.
func termTable(columns []string, rows ...[]string) Table {
	return FromRecords(append([][]string{columns}, rows...))
}

func requireSchemaError(t *testing.T, err error) *SchemaError {
	t.Helper()
	require.Error(t, err)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "expected *SchemaError, got %T", err)
	return schemaErr
}

func TestValidate_InvalidTermIDsFailPattern(t *testing.T) {
	t.Parallel()

	table := termTable(
		[]string{"id", "name", "abbreviation", "description"},
		[]string{"TERM-1", "Valid Term 1", "T1", "Term 1 description"},
		[]string{"TERM_2", "Valid Term 2", "T2", "Term 2 description"},
		[]string{"TERM2!", "Invalid Term 3", "T3", "Term 3 description"},
		[]string{"TERM 3", "Invalid Term 4", "T4", "Term 4 description"},
	)

	_, err := Validate(table)
	requireSchemaError(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "must only contain alphanumeric characters")
	for _, valid := range []string{"TERM-1", "TERM_2"} {
		assert.NotContains(t, msg, valid)
	}
	for _, invalid := range []string{"TERM2!", "TERM 3"} {
		assert.Contains(t, msg, invalid)
	}
}

func TestValidate_IDPattern(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id      string
		wantErr bool
	}{
		"letters and digits": {id: "trm123", wantErr: false},
		"hyphen":             {id: "trm-1", wantErr: false},
		"underscore":         {id: "trm_1", wantErr: false},
		"mixed case":         {id: "TrM_a-9", wantErr: false},
		"exclamation":        {id: "trm!", wantErr: true},
		"inner space":        {id: "trm 1", wantErr: true},
		"trailing space":     {id: "trm1 ", wantErr: true},
		"colon":              {id: "ex:trm1", wantErr: true},
		"dot":                {id: "trm.1", wantErr: true},
		"non-ascii":          {id: "trmé", wantErr: true},
		"tab":                {id: "TERM\t4", wantErr: true},
		"non-breaking space": {id: "TERM\u00a05", wantErr: true},
		"newline":            {id: "TERM\n6", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			table := termTable([]string{"id", "name"}, []string{tc.id, "Term"})
			_, err := Validate(table)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			schemaErr := requireSchemaError(t, err)
			require.Len(t, schemaErr.Violations, 1)
			assert.Equal(t, "pattern", schemaErr.Violations[0].Rule)
			assert.Contains(t, err.Error(), tc.id)
		})
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	t.Parallel()

	table := termTable(
		[]string{"id", "name"},
		[]string{"trm_1", "Foo"},
		[]string{"trm_2", "Bar"},
		[]string{"trm_1", "Baz"},
		[]string{"trm_3", "Qux"},
		[]string{"trm_1", "Quux"},
	)

	_, err := Validate(table)
	schemaErr := requireSchemaError(t, err)
	require.Len(t, schemaErr.Violations, 1)

	v := schemaErr.Violations[0]
	assert.Equal(t, "unique", v.Rule)
	assert.Equal(t, ColumnID, v.Column)
	assert.Equal(t, []string{`"trm_1"`}, v.FailureCases)
	assert.Contains(t, err.Error(), "trm_1")
	assert.NotContains(t, err.Error(), "trm_2")
}

func TestValidate_DuplicateIDsWithWhitespaceShownVerbatim(t *testing.T) {
	t.Parallel()

	table := termTable(
		[]string{"id", "name"},
		[]string{"dup\tid", "Foo"},
		[]string{"dup\tid", "Bar"},
	)

	_, err := Validate(table)
	schemaErr := requireSchemaError(t, err)

	var rules []string
	for _, v := range schemaErr.Violations {
		rules = append(rules, v.Rule)
	}
	assert.Equal(t, []string{"unique", "pattern"}, rules)
	assert.Equal(t, []string{"\"dup\tid\""}, schemaErr.Violations[0].FailureCases)
	assert.Contains(t, err.Error(), "dup\tid")
	assert.NotContains(t, err.Error(), `dup\tid`)
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		table    Table
		wantRule string
		wantCol  string
	}{
		"missing id column": {
			table:    termTable([]string{"name"}, []string{"Foo"}),
			wantRule: "required_columns",
			wantCol:  ColumnID,
		},
		"missing name column": {
			table:    termTable([]string{"id"}, []string{"trm_1"}),
			wantRule: "required_columns",
			wantCol:  ColumnName,
		},
		"missing id value": {
			table:    termTable([]string{"id", "name"}, []string{"trm_1", "Foo"}, []string{"", "Bar"}),
			wantRule: "not_null",
			wantCol:  ColumnID,
		},
		"missing name value": {
			table:    termTable([]string{"id", "name"}, []string{"trm_1", ""}),
			wantRule: "not_null",
			wantCol:  ColumnName,
		},
		"empty table": {
			table:    Table{},
			wantRule: "required_columns",
			wantCol:  ColumnID,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Validate(tc.table)
			schemaErr := requireSchemaError(t, err)
			assert.Equal(t, tc.wantRule, schemaErr.Violations[0].Rule)
			assert.Equal(t, tc.wantCol, schemaErr.Violations[0].Column)
		})
	}
}

func TestValidate_MissingValueReportsRowNumber(t *testing.T) {
	t.Parallel()

	table := termTable([]string{"id", "name"}, []string{"trm_1", "Foo"}, []string{"trm_2", ""})
	_, err := Validate(table)
	schemaErr := requireSchemaError(t, err)
	assert.Equal(t, []string{"row 3"}, schemaErr.Violations[0].FailureCases)
}

func TestValidate_AggregatesAllViolations(t *testing.T) {
	t.Parallel()

	table := termTable(
		[]string{"id", "name"},
		[]string{"trm_1", "Foo"},
		[]string{"trm_1", ""},
		[]string{"bad id", "Baz"},
	)

	_, err := Validate(table)
	schemaErr := requireSchemaError(t, err)

	var rules []string
	for _, v := range schemaErr.Violations {
		rules = append(rules, v.Rule)
	}
	assert.Equal(t, []string{"unique", "pattern", "not_null"}, rules)
	assert.Contains(t, err.Error(), "3 violation(s)")
}

func TestValidate_OptionalColumns(t *testing.T) {
	t.Parallel()

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		got, err := Validate(termTable([]string{"id", "name"}, []string{"trm_1", "Foo"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, got.Columns)
	})

	t.Run("present with missing values", func(t *testing.T) {
		t.Parallel()
		table := termTable(
			[]string{"id", "name", "abbreviation", "description", "same_as", "status", "invalid_reason"},
			[]string{"trm_1", "Foo", "", "", "", "", ""},
			[]string{"trm_2", "Bar", "B", "", "trm_1", "draft", ""},
		)
		got, err := Validate(table)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Len())
	})
}

func TestValidate_StrictFilterDropsUnknownColumns(t *testing.T) {
	t.Parallel()

	table := termTable(
		[]string{"notes", "id", "Comment", "name", "description", "extra"},
		[]string{"anything", "trm_1", "x", "Foo", "a term", "!!!"},
		[]string{"", "trm_2", "", "Bar", "", "duplicate"},
	)

	got, err := Validate(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "description"}, got.Columns)

	for i := range got.Rows {
		assert.Len(t, got.Rows[i], 3)
	}
	id, ok := got.Cell(1, "id")
	require.True(t, ok)
	assert.Equal(t, "trm_2", id)
	_, ok = got.Cell(1, "description")
	assert.False(t, ok)
}

func TestValidate_ColumnCaseInvariance(t *testing.T) {
	t.Parallel()

	upper := termTable([]string{"ID", "Name", "STATUS"}, []string{"trm_1", "Foo", "ok"})
	lower := termTable([]string{"id", "name", "status"}, []string{"trm_1", "Foo", "ok"})

	gotUpper, errUpper := Prepare(upper)
	gotLower, errLower := Prepare(lower)
	require.NoError(t, errUpper)
	require.NoError(t, errLower)
	assert.Equal(t, gotLower, gotUpper)

	badUpper := termTable([]string{"ID", "NAME"}, []string{"bad id", "Foo"})
	badLower := termTable([]string{"id", "name"}, []string{"bad id", "Foo"})
	_, errUpper = Prepare(badUpper)
	_, errLower = Prepare(badLower)
	require.Error(t, errUpper)
	assert.Equal(t, errLower.Error(), errUpper.Error())
}

func TestValidate_ColumnsCollidingAfterLowerCasing(t *testing.T) {
	t.Parallel()

	table := termTable([]string{"ID", "id", "name"}, []string{"trm_1", "trm_1", "Foo"})
	_, err := Prepare(table)
	schemaErr := requireSchemaError(t, err)
	assert.Equal(t, "unique_columns", schemaErr.Violations[0].Rule)
	assert.Equal(t, []string{`"id"`}, schemaErr.Violations[0].FailureCases)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	table := termTable([]string{"ID", "Name", "extra"}, []string{"trm_1", "Foo", "x"})
	before := table.Clone()

	_, err := Prepare(table)
	require.NoError(t, err)
	assert.Equal(t, before, table)
}

func TestSchema_Rules(t *testing.T) {
	t.Parallel()

	var names []string
	for _, r := range TermSchema.Rules() {
		names = append(names, r.Name+":"+r.Column)
	}
	assert.Equal(t, []string{
		"unique_columns:",
		"required_columns:",
		"not_null:id",
		"unique:id",
		"pattern:id",
		"not_null:name",
	}, names)
}

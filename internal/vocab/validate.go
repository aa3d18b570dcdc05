// nbcommunities - Neurobagel community configuration tooling
// Source: https://github.com/neurobagel/communities

package vocab

import (
	"fmt"
	"strings"
)

// Rule is a named check over a whole table. Checks are pure and report every
// violation they find rather than stopping at the first.
type Rule struct {
	Name   string
	Column string // Column the rule applies to, empty for table-level rules
	Check  func(Table) []Violation
}

// Violation describes one failed rule together with every offending value.
type Violation struct {
	Rule         string
	Column       string
	Message      string
	FailureCases []string
}

// String renders the violation on a single line.
func (v Violation) String() string {
	var sb strings.Builder
	if v.Column != "" {
		sb.WriteString(fmt.Sprintf("column %q ", v.Column))
	}
	sb.WriteString(fmt.Sprintf("(%s): %s", v.Rule, v.Message))
	if len(v.FailureCases) > 0 {
		sb.WriteString(" failure cases: ")
		sb.WriteString(strings.Join(v.FailureCases, ", "))
	}
	return sb.String()
}

// SchemaError is returned when a table breaks one or more schema rules.
type SchemaError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("vocabulary table failed validation with %d violation(s):", len(e.Violations)))
	for _, v := range e.Violations {
		sb.WriteString("\n  - ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Validate checks t against TermSchema. See Schema.Validate.
func Validate(t Table) (Table, error) {
	return TermSchema.Validate(t)
}

// Prepare normalizes column names and validates the result against TermSchema.
func Prepare(t Table) (Table, error) {
	return Validate(NormalizeColumns(t))
}

// Validate projects t onto the schema's columns and runs every rule against the
// projection. It returns the projected table, or a *SchemaError aggregating the
// violations of all rules.
func (s Schema) Validate(t Table) (Table, error) {
	projected := Project(t, s.ColumnNames())

	var violations []Violation
	for _, rule := range s.Rules() {
		for _, v := range rule.Check(projected) {
			if v.Rule == "" {
				v.Rule = rule.Name
			}
			if v.Column == "" {
				v.Column = rule.Column
			}
			violations = append(violations, v)
		}
	}

	if len(violations) > 0 {
		return Table{}, &SchemaError{Violations: violations}
	}
	return projected, nil
}

func checkUniqueColumns(t Table) []Violation {
	seen := make(map[string]int, len(t.Columns))
	var dups []string
	for _, c := range t.Columns {
		seen[c]++
		if seen[c] == 2 {
			dups = append(dups, quoteRaw(c))
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return []Violation{{
		Message:      "column headers must be unique after lower-casing",
		FailureCases: dups,
	}}
}

func (s Schema) checkRequiredColumns(t Table) []Violation {
	var violations []Violation
	for _, c := range s.Columns {
		if c.Required && !t.HasColumn(c.Name) {
			violations = append(violations, Violation{
				Column:  c.Name,
				Message: "required column is missing from the table",
			})
		}
	}
	return violations
}

// notNullCheck reports rows with a missing value. Row numbers count the header
// as row 1, matching spreadsheet numbering.
func notNullCheck(c Column) func(Table) []Violation {
	return func(t Table) []Violation {
		idx := t.ColumnIndex(c.Name)
		if idx < 0 {
			return nil
		}
		var rows []string
		for i, row := range t.Rows {
			if row.at(idx) == nil {
				rows = append(rows, fmt.Sprintf("row %d", i+2))
			}
		}
		if len(rows) == 0 {
			return nil
		}
		return []Violation{{Message: "values must not be missing", FailureCases: rows}}
	}
}

func uniqueCheck(c Column) func(Table) []Violation {
	return func(t Table) []Violation {
		idx := t.ColumnIndex(c.Name)
		if idx < 0 {
			return nil
		}
		counts := make(map[string]int, len(t.Rows))
		var dups []string
		for _, row := range t.Rows {
			v := row.at(idx)
			if v == nil {
				continue
			}
			counts[*v]++
			if counts[*v] == 2 {
				dups = append(dups, quoteRaw(*v))
			}
		}
		if len(dups) == 0 {
			return nil
		}
		return []Violation{{Message: "values must be unique", FailureCases: dups}}
	}
}

func patternCheck(c Column) func(Table) []Violation {
	return func(t Table) []Violation {
		idx := t.ColumnIndex(c.Name)
		if idx < 0 {
			return nil
		}
		var failed []string
		for _, row := range t.Rows {
			v := row.at(idx)
			if v == nil || c.Pattern.MatchString(*v) {
				continue
			}
			failed = append(failed, quoteRaw(*v))
		}
		if len(failed) == 0 {
			return nil
		}
		msg := c.PatternHint
		if msg == "" {
			msg = fmt.Sprintf("values must match %s", c.Pattern)
		}
		return []Violation{{Message: msg, FailureCases: failed}}
	}
}

// quoteRaw wraps v in double quotes without escaping, so failure cases show the
// cell exactly as entered, including tabs and non-breaking spaces.
func quoteRaw(v string) string {
	return `"` + v + `"`
}

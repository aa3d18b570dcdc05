package vocab

import "regexp"

// Column names recognized in a term table.
const (
	ColumnID            = "id"
	ColumnName          = "name"
	ColumnAbbreviation  = "abbreviation"
	ColumnDescription   = "description"
	ColumnSameAs        = "same_as"
	ColumnStatus        = "status"
	ColumnInvalidReason = "invalid_reason"
)

// Column defines the contract for one column of a term table.
type Column struct {
	Name        string         // Column header after normalization
	Required    bool           // Column must be present in the table
	Nullable    bool           // Cells may be missing
	Unique      bool           // Present values must not repeat
	Pattern     *regexp.Regexp // Present values must match (optional)
	PatternHint string         // Message reported for pattern failures
	Description string         // Human-readable description
}

// Schema is the ordered set of columns a table is validated against.
type Schema struct {
	Columns []Column
}

// TermSchema defines the columns of a community term table.
var TermSchema = Schema{
	Columns: []Column{
		{
			Name:        ColumnID,
			Required:    true,
			Nullable:    false,
			Unique:      true,
			Pattern:     regexp.MustCompile(`^[A-Za-z0-9_-]+$`),
			PatternHint: "Term IDs must only contain alphanumeric characters, underscores, and hyphens.",
			Description: "Stable term identifier",
		},
		{Name: ColumnName, Required: true, Nullable: false, Description: "Human-readable term label"},
		{Name: ColumnAbbreviation, Nullable: true, Description: "Short form of the term name"},
		{Name: ColumnDescription, Nullable: true, Description: "Free-text definition"},
		{Name: ColumnSameAs, Nullable: true, Description: "Cross-reference to an equivalent term"},
		{Name: ColumnStatus, Nullable: true, Description: "Curation status"},
		{Name: ColumnInvalidReason, Nullable: true, Description: "Curator note marking the term for exclusion"},
	},
}

// ColumnNames returns the recognized column names in schema order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Rules returns the ordered validation rules derived from the schema.
// Table-level rules come first, followed by per-column rules in schema order.
func (s Schema) Rules() []Rule {
	rules := []Rule{
		{Name: "unique_columns", Check: checkUniqueColumns},
		{Name: "required_columns", Check: s.checkRequiredColumns},
	}
	for _, c := range s.Columns {
		if !c.Nullable {
			rules = append(rules, Rule{Name: "not_null", Column: c.Name, Check: notNullCheck(c)})
		}
		if c.Unique {
			rules = append(rules, Rule{Name: "unique", Column: c.Name, Check: uniqueCheck(c)})
		}
		if c.Pattern != nil {
			rules = append(rules, Rule{Name: "pattern", Column: c.Name, Check: patternCheck(c)})
		}
	}
	return rules
}

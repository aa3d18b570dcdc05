package generate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/neurobagel/communities/internal/cli/shared"
	apperrors "github.com/neurobagel/communities/internal/errors"
	"github.com/neurobagel/communities/internal/vocab"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <table.csv>",
		Short: "Validate a local export of a term vocabulary table",
		Long: `Validate a CSV or TSV export of a term vocabulary spreadsheet.

The table goes through the same column normalization, validation and invalid-row
filtering as 'nbcommunities terms'. Nothing is written.`,
		Example: `  # Check a CSV export
  nbcommunities check assessment.csv

  # Tab-separated files are detected from the .tsv extension
  nbcommunities check assessment.tsv

  # Semicolon-separated export
  nbcommunities check assessment.csv --delimiter ';'`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	cmd.GroupID = shared.GroupGenerate
	cmd.Flags().String("delimiter", ",", `Field delimiter (use "tab" or "\t" for tab)`)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	rt, cliErr := shared.LoadRuntime(cmd)
	if cliErr != nil {
		return shared.Fail(cmd, cliErr)
	}
	path := args[0]

	delim, err := resolveDelimiter(cmd, path)
	if err != nil {
		return shared.Fail(cmd, apperrors.NewArgumentError(err.Error(),
			"Pass a single character, for example --delimiter ';'"))
	}

	table, err := readTable(path, delim)
	if err != nil {
		if os.IsNotExist(err) {
			return shared.Fail(cmd, apperrors.NewPrerequisiteError(
				fmt.Sprintf("Table file does not exist: %s", path)))
		}
		return shared.Fail(cmd, apperrors.WrapWithMessage(err, apperrors.Validation,
			fmt.Sprintf("Failed to parse %s", path),
			"Check the delimiter and quoting of the export"))
	}

	validated, err := vocab.Prepare(table)
	if err != nil {
		return shared.Fail(cmd, apperrors.InvalidVocabularyTable(path, err))
	}
	filtered, removed := vocab.RemoveInvalidRows(validated)
	vocab.LogRemoved(rt.Logger, removed)

	green := color.New(color.FgGreen).SprintFunc()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s: %d term(s), %d removed\n", green("Valid"), path, filtered.Len(), len(removed))
	for _, r := range removed {
		fmt.Fprintf(out, "  - %s (%s): %s\n", r.ID, r.Name, r.Reason)
	}
	return nil
}

// resolveDelimiter returns the --delimiter value, or a tab for .tsv files when
// the flag was not given.
func resolveDelimiter(cmd *cobra.Command, path string) (rune, error) {
	value, _ := cmd.Flags().GetString("delimiter")
	if !cmd.Flags().Changed("delimiter") && strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t', nil
	}
	switch value {
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", value)
	}
	return r, nil
}

func readTable(path string, delim rune) (vocab.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return vocab.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return vocab.Table{}, err
	}
	return vocab.FromRecords(stripBOM(records)), nil
}

// stripBOM removes a UTF-8 byte order mark from the first header cell, as
// written by spreadsheet exports.
func stripBOM(records [][]string) [][]string {
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records
}

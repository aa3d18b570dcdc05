package generate

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/neurobagel/communities/internal/cli/shared"
	apperrors "github.com/neurobagel/communities/internal/errors"
	"github.com/neurobagel/communities/internal/manifest"
	"github.com/neurobagel/communities/internal/progress"
	"github.com/neurobagel/communities/internal/sheets"
	"github.com/neurobagel/communities/internal/terms"
	"github.com/spf13/cobra"
)

func newTermsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terms <community_config_dir>",
		Short: "Generate standardized term vocabulary files from Google Sheets",
		Long: `Generate standardized term vocabulary files for a community configuration.

Every entry of community_terms_manifest.json names an output file, its vocabulary
metadata and the Google Sheet holding the terms. The first worksheet of each sheet
is validated and written to <community_config_dir>/<output file>. Rows with a
non-empty invalid_reason are left out of the output.

The Google API key is read from COMMUNITIES_GOOGLE_API_KEY or google_api_key in
the configuration file.`,
		Example: `  # Regenerate every vocabulary of a community
  nbcommunities terms configs/ENIGMA-PD

  # Regenerate a single vocabulary file
  nbcommunities terms configs/ENIGMA-PD --only assessment.json`,
		Args: cobra.ExactArgs(1),
		RunE: runTerms,
	}
	cmd.GroupID = shared.GroupGenerate
	cmd.Flags().String("only", "", "Only generate the manifest entry with this output file name")
	return cmd
}

func runTerms(cmd *cobra.Command, args []string) error {
	rt, cliErr := shared.LoadRuntime(cmd)
	if cliErr != nil {
		return shared.Fail(cmd, cliErr)
	}
	dir := args[0]

	m, err := manifest.Load(dir)
	switch {
	case errors.Is(err, manifest.ErrDirNotFound):
		return shared.Fail(cmd, apperrors.CommunityDirNotFound(dir))
	case errors.Is(err, manifest.ErrManifestNotFound):
		return shared.Fail(cmd, apperrors.TermsManifestNotFound(manifest.FileName, dir))
	case err != nil:
		return shared.Fail(cmd, apperrors.InvalidTermsManifest(err))
	}

	if rt.Config.GoogleAPIKey == "" {
		return shared.Fail(cmd, apperrors.MissingAPIKey())
	}
	client, err := sheets.NewClient(sheets.Config{
		APIKey:  rt.Config.GoogleAPIKey,
		BaseURL: rt.Config.SheetsBaseURL,
		Timeout: rt.Config.RequestTimeoutDuration(),
	})
	if err != nil {
		return shared.Fail(cmd, apperrors.Wrap(err, apperrors.Configuration))
	}

	gen := terms.NewGenerator(client, rt.Logger)
	if rt.Config.ShowProgress {
		gen.Progress = progress.NewProgressDisplay(progress.DetectTerminalCapabilities(), cmd.ErrOrStderr())
	}

	only, _ := cmd.Flags().GetString("only")
	results, err := gen.Run(cmd.Context(), m, only)
	if err != nil {
		return failTerms(cmd, err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s %s (%d terms, %d removed)\n", green("Wrote"), r.Path, r.Terms, len(r.Removed))
	}
	return nil
}

// failTerms reports a generator error with the exit code of the failing step.
func failTerms(cmd *cobra.Command, err error) error {
	if errors.Is(err, terms.ErrUnknownEntry) {
		return shared.Fail(cmd, apperrors.NewArgumentError(err.Error(),
			"Pass an output file name listed in "+manifest.FileName))
	}

	var entryErr *terms.EntryError
	if !errors.As(err, &entryErr) {
		return shared.Fail(cmd, apperrors.Wrap(err, apperrors.Runtime))
	}

	switch entryErr.Step {
	case terms.StepFetch:
		return shared.FailWithCode(cmd,
			apperrors.SheetAccessFailed(entryErr.SpreadsheetID, entryErr.Err),
			shared.ExitSourceUnavailable)
	case terms.StepValidate:
		source := fmt.Sprintf("Google Sheet ID %s", entryErr.SpreadsheetID)
		return shared.Fail(cmd, apperrors.InvalidVocabularyTable(source, entryErr.Err))
	default:
		return shared.Fail(cmd, apperrors.OutputWriteFailed(entryErr.OutputFile, entryErr.Err))
	}
}

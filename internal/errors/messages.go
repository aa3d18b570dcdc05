package errors

import "fmt"

// CommunityDirNotFound reports a missing community configuration directory.
func CommunityDirNotFound(dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("Community directory does not exist: %s", dir),
		"Check the path passed to 'nbcommunities terms'",
		"Community configurations live under configs/<community-name>",
	)
}

// TermsManifestNotFound reports a community directory without a terms manifest.
func TermsManifestNotFound(file, dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s not found in %s", file, dir),
		fmt.Sprintf("Create %s mapping each vocabulary file to its metadata and source spreadsheet", file),
	)
}

// InvalidTermsManifest reports a manifest that could not be parsed or validated.
func InvalidTermsManifest(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "The community terms manifest is invalid",
		"Each entry needs namespace_prefix, namespace_url, vocabulary_name, version and source_spreadsheet_id",
	)
}

// MissingAPIKey reports that no Google API key was configured.
func MissingAPIKey() *CLIError {
	return NewConfigError(
		"No Google API key configured",
		"Set COMMUNITIES_GOOGLE_API_KEY in the environment",
		"Or set google_api_key in the configuration file",
	)
}

// SheetAccessFailed reports a spreadsheet that could not be read.
func SheetAccessFailed(spreadsheetID string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("Failed to access Google Sheet %s", spreadsheetID),
		"Make sure the spreadsheet is shared as 'Anyone with the link can view'",
		"Check that the API key has the Google Sheets API enabled",
	)
}

// InvalidVocabularyTable reports a term table that failed schema validation.
func InvalidVocabularyTable(source string, err error) *CLIError {
	return WrapWithMessage(err, Validation,
		fmt.Sprintf("The provided vocabulary table is invalid (%s)", source),
		"Fix the listed rows in the source table and run the command again",
	)
}

// OutputWriteFailed reports a failure writing a generated file.
func OutputWriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime, fmt.Sprintf("Failed to write %s", path))
}

// ConfigParseError reports a configuration file that could not be loaded.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("Failed to load configuration from %s", path),
		"Check the file for syntax errors",
		"Supported formats are .json, .yml and .yaml",
	)
}

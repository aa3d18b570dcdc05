package cli

import (
	"github.com/neurobagel/communities/internal/cli/shared"
	apperrors "github.com/neurobagel/communities/internal/errors"
)

// Exit codes for the nbcommunities CLI (re-exported from shared)
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates a vocabulary table or other input failed validation
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates a required directory or file is missing
	ExitMissingDependencies = shared.ExitMissingDependency

	// ExitSourceUnavailable indicates a spreadsheet could not be read
	ExitSourceUnavailable = shared.ExitSourceUnavailable
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
// Errors that did not go through a command's error reporting, such as unknown
// flags or a wrong number of arguments, are printed here and reported as
// invalid arguments.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if shared.IsExitError(err) {
		return shared.ExitCode(err)
	}
	apperrors.PrintError(apperrors.Wrap(err, apperrors.Argument))
	return ExitInvalidArguments
}

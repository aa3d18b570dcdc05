// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	apperrors "github.com/neurobagel/communities/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupGenerate      = "generate"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess           = 0
	ExitValidationFailed  = 1
	ExitInvalidArguments  = 3
	ExitMissingDependency = 4
	ExitSourceUnavailable = 6
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitValidationFailed
}

// IsExitError reports whether err carries an exit code.
func IsExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCodeFor maps an error category to the exit code reported for it.
func ExitCodeFor(category apperrors.ErrorCategory) int {
	switch category {
	case apperrors.Argument, apperrors.Configuration:
		return ExitInvalidArguments
	case apperrors.Prerequisite:
		return ExitMissingDependency
	default:
		return ExitValidationFailed
	}
}

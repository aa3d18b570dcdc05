package shared

import (
	apperrors "github.com/neurobagel/communities/internal/errors"
	"github.com/spf13/cobra"
)

// Fail prints err to the command's error stream and returns an exit error
// whose code follows the error category.
func Fail(cmd *cobra.Command, err *apperrors.CLIError) error {
	return FailWithCode(cmd, err, ExitCodeFor(err.Category))
}

// FailWithCode prints err to the command's error stream and returns an exit
// error carrying code.
func FailWithCode(cmd *cobra.Command, err *apperrors.CLIError, code int) error {
	apperrors.FprintError(cmd.ErrOrStderr(), err)
	return NewExitError(code)
}
